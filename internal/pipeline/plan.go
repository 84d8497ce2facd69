package pipeline

import (
	"slices"

	"git.home.luguber.info/inful/taxogen/internal/classify"
	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/links"
	"git.home.luguber.info/inful/taxogen/internal/pathalloc"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
	"git.home.luguber.info/inful/taxogen/internal/tasks"
	"git.home.luguber.info/inful/taxogen/internal/translations"
)

// Plan is the immutable outcome of one pass.
type Plan struct {
	PassID   string
	Config   *config.Config
	Registry *taxonomy.Registry
	Result   *classify.Result
	Table    *pathalloc.Table
	Variants *translations.Resolver
	Links    *links.Registry
	Tasks    []*tasks.Task
}

// ByKind returns the tasks of kind in emission order.
func (p *Plan) ByKind(kind tasks.Kind) []*tasks.Task {
	var out []*tasks.Task
	for _, t := range p.Tasks {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// KindCounts counts the tasks per kind.
func (p *Plan) KindCounts() map[tasks.Kind]int {
	out := make(map[tasks.Kind]int)
	for _, t := range p.Tasks {
		out[t.Kind]++
	}
	return out
}

// Targets returns every output file of the plan, sorted.
func (p *Plan) Targets() []string {
	var out []string
	for _, t := range p.Tasks {
		out = append(out, t.Targets...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Names returns the full name of every task.
func (p *Plan) Names() []string {
	out := make([]string, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		out = append(out, t.FullName())
	}
	return out
}
