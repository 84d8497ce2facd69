package commands

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/incremental"
	"git.home.luguber.info/inful/taxogen/internal/logfields"
	"git.home.luguber.info/inful/taxogen/internal/pipeline"
	"git.home.luguber.info/inful/taxogen/internal/tasks"
)

// PlanCmd implements the 'plan' command.
type PlanCmd struct {
	Format    string `short:"f" help:"Output format" enum:"json,yaml" default:"json"`
	Output    string `short:"o" help:"Write the plan to this file instead of stdout"`
	State     string `help:"Fingerprint database (defaults to state_file from the configuration)"`
	Stateless bool   `help:"Do not compare against or update the fingerprint database"`
	DryRun    bool   `name:"dry-run" help:"Report stale tasks without recording the new fingerprints"`
}

// PlanDocument is what 'plan' prints.
type PlanDocument struct {
	PassID string        `json:"pass_id" yaml:"pass_id"`
	Tasks  []*tasks.Task `json:"tasks" yaml:"tasks"`
	// Stale lists the full names of tasks whose fingerprint changed. Nil
	// when no state database was consulted.
	Stale  []string `json:"stale,omitempty" yaml:"stale,omitempty"`
	Pruned int      `json:"pruned,omitempty" yaml:"pruned,omitempty"`
}

func (p *PlanCmd) Run(g *Global, root *CLI) error {
	ctx := context.Background()
	s, err := loadSite(root)
	if err != nil {
		return err
	}
	plan, err := s.run(ctx, g)
	if err != nil {
		return err
	}
	doc := PlanDocument{PassID: plan.PassID, Tasks: plan.Tasks}
	if !p.Stateless {
		if err := p.compare(ctx, s.statePath(root, p.State), plan, &doc); err != nil {
			return err
		}
	}

	out := g.Out
	if p.Output != "" {
		f, err := os.Create(p.Output)
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create plan file").
				WithContext(errors.KeyPath, p.Output).
				Build()
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	return writeDocument(out, p.Format, doc)
}

// compare marks stale tasks and, unless dry-running, records the plan so
// the next pass only reports what changed since.
func (p *PlanCmd) compare(ctx context.Context, dbPath string, plan *pipeline.Plan, doc *PlanDocument) error {
	store, err := incremental.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stale, err := store.Stale(ctx, plan.Tasks)
	if err != nil {
		return err
	}
	doc.Stale = make([]string, 0, len(stale))
	for _, t := range stale {
		doc.Stale = append(doc.Stale, t.FullName())
	}
	slog.Info("Compared with previous pass", logfields.Count(len(stale)), slog.Int("total", len(plan.Tasks)))
	if p.DryRun {
		return nil
	}
	if err := store.Record(ctx, stale); err != nil {
		return err
	}
	doc.Pruned, err = store.Prune(ctx, plan.Names())
	return err
}

func writeDocument(w io.Writer, format string, v any) error {
	var err error
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(v)
		if err == nil {
			err = enc.Close()
		}
	} else {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(v)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode output").Build()
	}
	return nil
}
