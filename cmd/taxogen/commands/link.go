package commands

import (
	"context"
	"fmt"
)

// LinkCmd implements the 'link' command.
type LinkCmd struct {
	Refs []string `arg:"" help:"References such as link://tag/dogs or link://category_index/"`
	Lang string   `short:"l" help:"Language of the link (defaults to default_lang)"`
	Abs  bool     `help:"Prefix base_url"`
}

func (l *LinkCmd) Run(g *Global, root *CLI) error {
	s, err := loadSite(root)
	if err != nil {
		return err
	}
	plan, err := s.run(context.Background(), g)
	if err != nil {
		return err
	}
	lang := l.Lang
	if lang == "" {
		lang = s.cfg.DefaultLang
	}
	for _, ref := range l.Refs {
		link, err := plan.Links.Resolve(ref, lang)
		if err != nil {
			return err
		}
		if l.Abs {
			link = plan.Links.Absolute(link)
		}
		fmt.Fprintf(g.Out, "%s\t%s\n", ref, link)
	}
	return nil
}
