package tasks

import (
	"log/slog"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/taxogen/internal/classify"
	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/hierarchy"
	"git.home.luguber.info/inful/taxogen/internal/links"
	"git.home.luguber.info/inful/taxogen/internal/logfields"
	"git.home.luguber.info/inful/taxogen/internal/pathalloc"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
	"git.home.luguber.info/inful/taxogen/internal/translations"
	"git.home.luguber.info/inful/taxogen/internal/util/sets"
)

// Generator emits the tasks of one pass. It only reads its inputs.
type Generator struct {
	cfg      *config.Config
	reg      *taxonomy.Registry
	res      *classify.Result
	table    *pathalloc.Table
	variants *translations.Resolver
	links    *links.Registry
	compiler content.Compiler

	nav map[navKey]*navData
}

type navKey struct{ taxonomy, lang string }

// New prepares a generator. compiler may be nil, in which case each
// post's own source file is its only dependency.
func New(cfg *config.Config, reg *taxonomy.Registry, res *classify.Result, table *pathalloc.Table, variants *translations.Resolver, compiler content.Compiler) *Generator {
	if compiler == nil {
		compiler = content.SourceCompiler{}
	}
	return &Generator{
		cfg:      cfg,
		reg:      reg,
		res:      res,
		table:    table,
		variants: variants,
		links:    links.New(reg, cfg.BaseURL),
		compiler: compiler,
		nav:      make(map[navKey]*navData),
	}
}

// Links returns the link registry the generator resolves paths with.
func (g *Generator) Links() *links.Registry { return g.links }

// Generate emits every task for every configured language: overview pages
// first, then the pages and feeds of each classification.
func (g *Generator) Generate() ([]*Task, error) {
	var out []*Task
	for _, lang := range g.cfg.Languages() {
		start := len(out)
		shared := g.sharedOverview(lang)
		for _, def := range g.reg.Definitions() {
			if !def.Enabled(lang, g.res) {
				continue
			}
			g.buildNavigation(def, lang)

			if def.Templates().Overview != "" && !(shared && isTagOrCategory(def)) {
				t, err := g.overviewTask(def, lang)
				if err != nil {
					return nil, err
				}
				out = append(out, t)
			}
			for _, e := range g.table.Entries(lang) {
				if e.Taxonomy != def.Name() {
					continue
				}
				tasks, err := g.classificationTasks(def, e)
				if err != nil {
					return nil, err
				}
				out = append(out, tasks...)
			}
		}
		if shared {
			t, err := g.combinedOverviewTask(lang)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		slog.Debug("Tasks generated", logfields.Language(lang), logfields.Count(len(out)-start))
	}
	return out, nil
}

func isTagOrCategory(def taxonomy.Definition) bool {
	return def.Kind() == taxonomy.KindTag || def.Kind() == taxonomy.KindCategory
}

// visible filters items by the untranslated-posts policy.
func (g *Generator) visible(items []*content.Item, lang string) []*content.Item {
	return pathalloc.Visible(items, lang, g.cfg.ShowUntranslatedPosts)
}

// output places a postprocessed path below the output folder.
func (g *Generator) output(parts []string) string {
	return path.Join(g.cfg.OutputFolder, g.reg.Paths().File(parts))
}

// postLink is the URL path of an item in lang.
func (g *Generator) postLink(item *content.Item, lang string) string {
	var parts []string
	if prefix := g.cfg.TranslationPrefix(lang); prefix != "" {
		parts = strings.Split(prefix, "/")
	}
	parts = append(parts, strings.Split(item.Meta(lang).Destination, "/")...)
	return g.reg.Paths().Link(parts)
}

func (g *Generator) postRefs(items []*content.Item, lang string) []PostRef {
	out := make([]PostRef, 0, len(items))
	for _, it := range items {
		m := it.Meta(lang)
		out = append(out, PostRef{
			ID:     it.ID,
			Title:  m.Title,
			Link:   g.postLink(it, lang),
			Date:   it.Date,
			Source: m.SourcePath,
		})
	}
	return out
}

// fileDeps collects the sorted, de-duplicated dependencies of items.
func (g *Generator) fileDeps(items []*content.Item, lang string) []string {
	seen := sets.New[string]()
	var out []string
	for _, it := range items {
		for _, d := range g.compiler.Deps(it, lang) {
			if seen.Add(d) {
				out = append(out, d)
			}
		}
	}
	slices.Sort(out)
	return out
}

// node finds the hierarchy node of a classification, looking in the
// contributing source languages when lang has none. It also returns the
// language whose tree the node belongs to.
func (g *Generator) node(def taxonomy.Definition, e *pathalloc.Entry) (*hierarchy.Node, string) {
	if n, ok := g.res.Node(def.Name(), e.Lang, e.Classification); ok {
		return n, e.Lang
	}
	for _, src := range e.SourceLangs {
		if n, ok := g.res.Node(def.Name(), src, e.Classification); ok {
			return n, src
		}
	}
	return nil, e.Lang
}

// children returns the full-tree children of a classification, with the
// root classification yielding the top level.
func (g *Generator) children(def taxonomy.Definition, cls, treeLang string) []*hierarchy.Node {
	tree := g.res.Tree(def.Name(), treeLang)
	if tree == nil {
		return nil
	}
	ids := tree.ChildrenOf(cls)
	out := make([]*hierarchy.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, tree.Node(id))
	}
	return out
}

// newTask assembles a task around its actions and fingerprints it.
func (g *Generator) newTask(kind Kind, def taxonomy.Definition, cls, lang string, page int, actions []Action, deps []*content.Item, settings taxonomy.Values) (*Task, error) {
	t := &Task{
		Basename:       Basename,
		Kind:           kind,
		Taxonomy:       def.Name(),
		Classification: cls,
		Lang:           lang,
		Page:           page,
		FileDep:        g.fileDeps(deps, lang),
		Actions:        actions,
		Clean:          true,
	}
	for _, a := range actions {
		t.Targets = append(t.Targets, a.Output)
	}
	t.Name = t.Targets[0]
	if kind == KindRSS || kind == KindAtom {
		t.TaskDep = []string{renderPosts}
	}
	fp, err := fingerprint(t, settings)
	if err != nil {
		return nil, err
	}
	t.Uptodate = fp
	return t, nil
}
