package tasks

import (
	"maps"

	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/pathalloc"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
)

// page carries the shared state of one classification while its tasks are
// emitted.
type page struct {
	def      taxonomy.Definition
	entry    *pathalloc.Entry
	posts    []*content.Item
	ctx      taxonomy.Values
	settings taxonomy.Values
}

func (p *page) cls() string  { return p.entry.Classification }
func (p *page) lang() string { return p.entry.Lang }

// classificationTasks emits the pages and feeds of one allocated
// classification.
func (g *Generator) classificationTasks(def taxonomy.Definition, e *pathalloc.Entry) ([]*Task, error) {
	if !e.Generated(def) {
		return nil, nil
	}
	flags := def.Flags()
	posts := e.Posts
	generateList := def.ShouldGenerateList(e.Classification, posts, e.Lang)
	generateRSS := def.ShouldGenerateRSS(e.Classification, posts, e.Lang)

	node, treeLang := g.node(def, e)
	var subcats []taxonomy.Subcategory
	if flags.HasHierarchy {
		for _, child := range g.children(def, e.Classification, treeLang) {
			link, err := g.links.Link(def.Name(), child.ClassificationName, e.Lang)
			if err != nil {
				return nil, err
			}
			subcats = append(subcats, taxonomy.Subcategory{
				Name:           def.FriendlyName(child.ClassificationName, e.Lang, true),
				Classification: child.ClassificationName,
				Link:           link,
				Count:          len(g.visible(g.res.Posts(def.Name(), treeLang, child.ClassificationName), e.Lang)),
			})
		}
	}

	ctx, settings := def.Context(taxonomy.Page{
		Classification: e.Classification,
		Lang:           e.Lang,
		Node:           node,
		Subcategories:  subcats,
	})
	ctx, settings = ctx.Clone(), settings.Clone()
	settings["translations"] = g.cfg.Translations
	settings["output_folder"] = g.cfg.OutputFolder

	permalink, err := g.links.Link(def.Name(), e.Classification, e.Lang)
	if err != nil {
		return nil, err
	}
	ctx["permalink"] = permalink
	ctx["lang"] = e.Lang
	if ctx["other_languages"], err = g.otherLanguages(def, e); err != nil {
		return nil, err
	}
	nav, err := g.navigationLinks(def, e.Classification, e.Lang, generateList, generateRSS)
	if err != nil {
		return nil, err
	}
	maps.Copy(ctx, nav)
	maps.Copy(settings, nav)

	p := &page{def: def, entry: e, posts: posts, ctx: ctx, settings: settings}

	if flags.HasHierarchy && flags.ShowListAsSubcategoriesList && len(subcats) > 0 {
		if !generateList {
			return nil, nil
		}
		t, err := g.subcategoriesTask(p, subcats)
		if err != nil {
			return nil, err
		}
		return []*Task{t}, nil
	}

	var out []*Task
	if generateRSS && g.cfg.GenerateRSS && !flags.AlwaysDisableRSS {
		t, err := g.rssTask(p)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	switch {
	case generateList && flags.ShowAsIndex:
		tasks, err := g.indexTasks(p)
		if err != nil {
			return nil, err
		}
		out = append(out, tasks...)
	case generateList:
		tasks, err := g.listTasks(p)
		if err != nil {
			return nil, err
		}
		out = append(out, tasks...)
	}
	return out, nil
}

func (g *Generator) otherLanguages(def taxonomy.Definition, e *pathalloc.Entry) ([]Variant, error) {
	out := []Variant{}
	if g.variants == nil {
		return out, nil
	}
	for _, v := range g.variants.Variants(def.Name(), e.Classification, e.Lang) {
		link, err := g.links.Link(def.Name(), v.Classification, v.Lang)
		if err != nil {
			return nil, err
		}
		out = append(out, Variant{
			Lang:           v.Lang,
			Classification: v.Classification,
			Name:           def.FriendlyName(v.Classification, v.Lang, false),
			Link:           link,
		})
	}
	return out, nil
}

func (g *Generator) subcategoriesTask(p *page, subcats []taxonomy.Subcategory) (*Task, error) {
	ctx := p.ctx.Clone()
	if _, ok := ctx["pagekind"]; !ok {
		ctx["pagekind"] = []string{"list", "archive_page"}
	}
	ctx["items"] = subcats
	ctx["posts"] = []PostRef{}
	settings := p.settings.Clone()
	settings["items"] = subcats

	parts, err := g.reg.ClassificationPath(p.def, p.cls(), p.lang(), taxonomy.Target{})
	if err != nil {
		return nil, err
	}
	action := Action{
		Kind:     ActionRender,
		Template: p.def.Templates().Subcategories,
		Output:   g.output(parts),
		Context:  ctx,
	}
	return g.newTask(KindSubcategories, p.def, p.cls(), p.lang(), 0, []Action{action}, nil, settings)
}

// feedPosts applies the feed filter and length cutoff.
func (g *Generator) feedPosts(posts []*content.Item) []*content.Item {
	var out []*content.Item
	for _, it := range posts {
		if len(out) >= g.cfg.FeedLength {
			break
		}
		if it.UseInFeeds {
			out = append(out, it)
		}
	}
	return out
}

func (g *Generator) rssTask(p *page) (*Task, error) {
	parts, err := g.reg.ClassificationPath(p.def, p.cls(), p.lang(), taxonomy.Target{Dest: taxonomy.DestRSS})
	if err != nil {
		return nil, err
	}
	feedURL, err := g.links.AbsLink(p.def.Name()+"_rss", p.cls(), p.lang())
	if err != nil {
		return nil, err
	}
	title, _ := p.ctx["title"].(string)
	description, _ := p.ctx["description"].(string)
	blogTitle := g.cfg.BlogTitle.Get(p.lang())
	if blogTitle != title {
		title = blogTitle + " (" + title + ")"
	}
	posts := g.feedPosts(p.posts)
	feed := &Feed{
		Format:      KindRSS,
		Lang:        p.lang(),
		Title:       title,
		Link:        g.cfg.BaseURL,
		Description: description,
		FeedURL:     feedURL,
		Posts:       g.postRefs(posts, p.lang()),
	}
	action := Action{Kind: ActionFeed, Output: g.output(parts), Feed: feed, Posts: posts}
	return g.newTask(KindRSS, p.def, p.cls(), p.lang(), 0, []Action{action}, posts, p.settings)
}

// listTasks renders a flat link list and, when enabled, its Atom feed.
func (g *Generator) listTasks(p *page) ([]*Task, error) {
	parts, err := g.reg.ClassificationPath(p.def, p.cls(), p.lang(), taxonomy.Target{})
	if err != nil {
		return nil, err
	}
	ctx := p.ctx.Clone()
	if _, ok := ctx["pagekind"]; !ok {
		ctx["pagekind"] = []string{"list", "tag_page"}
	}
	ctx["posts"] = g.postRefs(p.posts, p.lang())
	ctx["kind"] = p.def.Name()
	ctx["prevlink"], ctx["nextlink"] = nil, nil
	action := Action{
		Kind:     ActionRender,
		Template: p.def.Templates().List,
		Output:   g.output(parts),
		Context:  ctx,
		Posts:    p.posts,
	}
	list, err := g.newTask(KindList, p.def, p.cls(), p.lang(), 0, []Action{action}, p.posts, p.settings)
	if err != nil {
		return nil, err
	}
	out := []*Task{list}

	if p.def.Flags().GenerateAtomForLists && g.cfg.GenerateAtom {
		atom, err := g.atomTask(p, g.feedPosts(p.posts), 0, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, atom)
	}
	return out, nil
}

func (g *Generator) atomTask(p *page, posts []*content.Item, pageNum, pageCount int) (*Task, error) {
	target := func(i int) taxonomy.Target { return taxonomy.Target{Dest: taxonomy.DestAtom, Page: i} }
	parts, err := g.reg.ClassificationPath(p.def, p.cls(), p.lang(), target(pageNum))
	if err != nil {
		return nil, err
	}
	kind := p.def.Name() + "_atom"
	feedURL, err := g.links.AbsPageLink(kind, p.cls(), p.lang(), target(pageNum))
	if err != nil {
		return nil, err
	}
	link, err := g.links.PageLink(p.def.Name(), p.cls(), p.lang(), taxonomy.Target{Page: pageNum})
	if err != nil {
		return nil, err
	}
	title, _ := p.ctx["title"].(string)
	description, _ := p.ctx["description"].(string)
	feed := &Feed{
		Format:      KindAtom,
		Lang:        p.lang(),
		Title:       title,
		Link:        link,
		Description: description,
		FeedURL:     feedURL,
		Posts:       g.postRefs(posts, p.lang()),
	}
	if pageNum > 0 {
		if feed.PrevLink, err = g.links.PageLink(kind, p.cls(), p.lang(), target(pageNum-1)); err != nil {
			return nil, err
		}
	}
	if pageNum+1 < pageCount {
		if feed.NextLink, err = g.links.PageLink(kind, p.cls(), p.lang(), target(pageNum+1)); err != nil {
			return nil, err
		}
	}
	action := Action{Kind: ActionFeed, Output: g.output(parts), Feed: feed, Posts: posts}
	return g.newTask(KindAtom, p.def, p.cls(), p.lang(), pageNum, []Action{action}, posts, p.settings)
}
