package tasks

import (
	"maps"

	"git.home.luguber.info/inful/taxogen/internal/hierarchy"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
)

// overviewContext lists every classification of def in lang that reaches
// the taxonomy's minimum post count. n is the number of listed entries.
func (g *Generator) overviewContext(def taxonomy.Definition, lang string) (ctx, settings taxonomy.Values, n int, err error) {
	ctx, settings = def.OverviewContext(lang)
	ctx, settings = ctx.Clone(), settings.Clone()
	settings["translations"] = g.cfg.Translations
	settings["output_folder"] = g.cfg.OutputFolder

	name := def.Name()
	flags := def.Flags()
	count := func(cls string) int { return len(g.visible(g.res.Posts(name, lang, cls), lang)) }
	listed := func(cls string) bool {
		return count(cls) >= flags.MinimumPostCountInOverview && !def.HiddenInOverview(cls, lang)
	}

	var names []string
	var clipped *hierarchy.Tree
	if full := g.res.Tree(name, lang); flags.HasHierarchy && full != nil {
		clipped = full.Clone(func(node *hierarchy.Node) bool { return listed(node.ClassificationName) })
		for _, id := range clipped.Flat() {
			names = append(names, clipped.Node(id).ClassificationName)
		}
	} else {
		for _, cls := range g.res.Classifications(name, lang) {
			if listed(cls) {
				names = append(names, cls)
			}
		}
	}
	if names == nil {
		names = []string{}
	}

	vars := def.OverviewVars()
	ctx[vars.Classifications] = names
	ctx["has_hierarchy"] = flags.HasHierarchy
	if vars.Items != "" {
		items := make([]ClassificationLink, 0, len(names))
		counted := make([]CountedLink, 0, len(names))
		for _, cls := range names {
			link, err := g.links.Link(name, cls, lang)
			if err != nil {
				return nil, nil, 0, err
			}
			items = append(items, ClassificationLink{Name: cls, Link: link})
			counted = append(counted, CountedLink{Name: cls, Link: link, Count: count(cls)})
		}
		ctx[vars.Items] = items
		ctx[vars.Items+"_with_postcount"] = counted
	}
	if clipped != nil && vars.Hierarchy != "" {
		entries := make([]HierarchyEntry, 0, len(names))
		counted := make([]HierarchyEntry, 0, len(names))
		for _, id := range clipped.Flat() {
			node := clipped.Node(id)
			link, err := g.links.Link(name, node.ClassificationName, lang)
			if err != nil {
				return nil, nil, 0, err
			}
			e := HierarchyEntry{
				Name:               node.Name,
				Classification:     node.ClassificationName,
				Path:               node.ClassificationPath,
				Link:               link,
				IndentLevels:       node.IndentLevels,
				IndentChangeBefore: node.IndentChangeBefore,
				IndentChangeAfter:  node.IndentChangeAfter,
			}
			entries = append(entries, e)
			e.Counts = &HierarchyEntryCounts{Children: len(node.Children), Posts: count(node.ClassificationName)}
			counted = append(counted, e)
		}
		ctx[vars.Hierarchy] = entries
		ctx[vars.Hierarchy+"_with_postcount"] = counted
	}
	return ctx, settings, len(names), nil
}

func (g *Generator) overviewTask(def taxonomy.Definition, lang string) (*Task, error) {
	ctx, settings, _, err := g.overviewContext(def, lang)
	if err != nil {
		return nil, err
	}
	return g.renderOverview(def, lang, ctx, settings)
}

func (g *Generator) renderOverview(def taxonomy.Definition, lang string, ctx, settings taxonomy.Values) (*Task, error) {
	parts, _ := g.reg.OverviewPath(def, lang)
	ctx["permalink"] = g.reg.Paths().Link(parts)
	if _, ok := ctx["pagekind"]; !ok {
		ctx["pagekind"] = []string{"list", "tags_page"}
	}
	ctx["lang"] = lang
	action := Action{
		Kind:     ActionRender,
		Template: def.Templates().Overview,
		Output:   g.output(parts),
		Context:  ctx,
	}
	return g.newTask(KindOverview, def, "", lang, 0, []Action{action}, nil, settings)
}

// sharedOverview reports whether tags and categories are both active in
// lang and their overview pages resolve to the same link.
func (g *Generator) sharedOverview(lang string) bool {
	tag, ok := g.reg.ByKind(taxonomy.KindTag)
	if !ok || !tag.Enabled(lang, g.res) {
		return false
	}
	cat, ok := g.reg.ByKind(taxonomy.KindCategory)
	if !ok || !cat.Enabled(lang, g.res) {
		return false
	}
	tagLink, err1 := g.links.Link(tag.Name()+"_index", "", lang)
	catLink, err2 := g.links.Link(cat.Name()+"_index", "", lang)
	return err1 == nil && err2 == nil && tagLink == catLink
}

// combinedOverviewTask renders one overview for tags and categories at
// the tag overview path. When only one of them has entries, its own
// overview is used unchanged.
func (g *Generator) combinedOverviewTask(lang string) (*Task, error) {
	tag, _ := g.reg.ByKind(taxonomy.KindTag)
	cat, _ := g.reg.ByKind(taxonomy.KindCategory)
	tagCtx, tagKW, tagN, err := g.overviewContext(tag, lang)
	if err != nil {
		return nil, err
	}
	catCtx, catKW, catN, err := g.overviewContext(cat, lang)
	if err != nil {
		return nil, err
	}

	ctx, settings := tagCtx, tagKW
	switch {
	case tagN > 0 && catN > 0:
		ctx, settings = catCtx, catKW
		maps.Copy(ctx, tagCtx)
		maps.Copy(settings, tagKW)
		title := g.reg.Messages().Get(lang, taxonomy.MsgTagsAndCategories)
		ctx["title"], ctx["description"] = title, title
		settings["title"], settings["description"] = title, title
	case catN > 0:
		ctx, settings = catCtx, catKW
	}
	return g.renderOverview(tag, lang, ctx, settings)
}
