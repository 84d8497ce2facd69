package commands

import (
	"context"
	"fmt"
)

// PathsCmd implements the 'paths' command.
type PathsCmd struct {
	Lang     string `short:"l" help:"Only list this language"`
	Taxonomy string `short:"t" help:"Only list this taxonomy (tag, category, archive, author, section, page_index)"`
}

func (p *PathsCmd) Run(g *Global, root *CLI) error {
	s, err := loadSite(root)
	if err != nil {
		return err
	}
	plan, err := s.run(context.Background(), g)
	if err != nil {
		return err
	}
	for _, lang := range plan.Result.Languages() {
		if p.Lang != "" && lang != p.Lang {
			continue
		}
		for _, e := range plan.Table.Entries(lang) {
			if p.Taxonomy != "" && e.Taxonomy != p.Taxonomy {
				continue
			}
			fmt.Fprintf(g.Out, "%s\t%s\t%s\t%s\n", lang, e.Taxonomy, e.Classification, e.File)
		}
	}
	return nil
}
