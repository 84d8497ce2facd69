package tasks

import (
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
)

// Paginate splits items into consecutive pages of at most size items. An
// empty list still yields one empty page.
func Paginate[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	if len(items) == 0 {
		return [][]T{{}}
	}
	var pages [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}

// indexTasks renders a paginated index, one task per page. The first page
// is also written to its numbered path when indexes_pages_main is set.
func (g *Generator) indexTasks(p *page) ([]*Task, error) {
	name, cls, lang := p.def.Name(), p.cls(), p.lang()
	pages := Paginate(p.posts, g.cfg.IndexDisplayPostCount)
	link := func(t taxonomy.Target) (string, error) { return g.links.PageLink(name, cls, lang, t) }

	var out []*Task
	for i, posts := range pages {
		target := taxonomy.Target{Page: i}
		parts, err := g.reg.ClassificationPath(p.def, cls, lang, target)
		if err != nil {
			return nil, err
		}
		ctx := p.ctx.Clone()
		if _, ok := ctx["pagekind"]; !ok {
			ctx["pagekind"] = []string{"index", "tag_page"}
		}
		ctx["posts"] = g.postRefs(posts, lang)
		ctx["current_page"] = i
		ctx["num_pages"] = len(pages)
		ctx["prevlink"], ctx["nextlink"] = nil, nil
		if i > 0 {
			if ctx["prevlink"], err = link(taxonomy.Target{Page: i - 1}); err != nil {
				return nil, err
			}
		}
		if i+1 < len(pages) {
			if ctx["nextlink"], err = link(taxonomy.Target{Page: i + 1}); err != nil {
				return nil, err
			}
		}
		if ctx["permalink"], err = link(target); err != nil {
			return nil, err
		}
		if g.cfg.GenerateAtom {
			if ctx["feedlink"], err = g.links.AbsPageLink(name+"_atom", cls, lang, taxonomy.Target{Dest: taxonomy.DestAtom, Page: i}); err != nil {
				return nil, err
			}
		}

		actions := []Action{{
			Kind:     ActionRender,
			Template: p.def.Templates().List,
			Output:   g.output(parts),
			Context:  ctx,
			Posts:    posts,
		}}
		if i == 0 && g.cfg.IndexesPagesMain {
			alt := taxonomy.Target{Alternative: true}
			altParts, err := g.reg.ClassificationPath(p.def, cls, lang, alt)
			if err != nil {
				return nil, err
			}
			altCtx := ctx.Clone()
			if altCtx["permalink"], err = link(alt); err != nil {
				return nil, err
			}
			actions = append(actions, Action{
				Kind:     ActionRender,
				Template: p.def.Templates().List,
				Output:   g.output(altParts),
				Context:  altCtx,
				Posts:    posts,
			})
		}
		t, err := g.newTask(KindIndex, p.def, cls, lang, i, actions, posts, p.settings)
		if err != nil {
			return nil, err
		}
		out = append(out, t)

		if g.cfg.GenerateAtom {
			atom, err := g.atomTask(p, posts, i, len(pages))
			if err != nil {
				return nil, err
			}
			out = append(out, atom)
		}
	}
	return out, nil
}
