package commands

import (
	"context"
	"fmt"
	"slices"

	"git.home.luguber.info/inful/taxogen/internal/tasks"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct{}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	s, err := loadSite(root)
	if err != nil {
		return err
	}
	plan, err := s.run(context.Background(), g)
	if err != nil {
		return err
	}

	for _, lang := range plan.Result.Languages() {
		for _, def := range plan.Registry.Definitions() {
			n := len(plan.Table.Classifications(def.Name(), lang))
			if n == 0 {
				continue
			}
			fmt.Fprintf(g.Out, "%-4s %-12s %d classifications\n", lang, def.Name(), n)
		}
	}
	counts := plan.KindCounts()
	kinds := make([]tasks.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		fmt.Fprintf(g.Out, "%-17s %d tasks\n", k, counts[k])
	}
	fmt.Fprintln(g.Out, "ok")
	return nil
}
