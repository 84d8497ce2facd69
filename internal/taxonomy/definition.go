package taxonomy

import (
	"maps"

	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/hierarchy"
)

// Kind identifies one of the supported taxonomy variants.
type Kind int

const (
	KindTag Kind = iota
	KindCategory
	KindArchive
	KindAuthor
	KindSection
	KindPageIndex
)

// Kinds lists every variant in registry order.
var Kinds = []Kind{KindTag, KindCategory, KindArchive, KindAuthor, KindSection, KindPageIndex}

func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindCategory:
		return "category"
	case KindArchive:
		return "archive"
	case KindAuthor:
		return "author"
	case KindSection:
		return "section"
	case KindPageIndex:
		return "page_index"
	default:
		return "unknown"
	}
}

// IndexMode controls whether the index file name is appended to a path.
type IndexMode int

const (
	// IndexAuto appends the index file for pretty URLs and ".html" otherwise.
	IndexAuto IndexMode = iota
	// IndexAlways appends the index file unconditionally.
	IndexAlways
	// IndexNever uses the last segment as the file name.
	IndexNever
)

// DestType selects the kind of file a path is built for.
type DestType int

const (
	DestPage DestType = iota
	DestRSS
	DestAtom
)

// Flags are the static capabilities of a taxonomy.
type Flags struct {
	HasHierarchy                   bool
	MoreThanOnePerPost             bool
	ApplyToPosts                   bool
	ApplyToPages                   bool
	OmitEmpty                      bool
	ShowAsIndex                    bool
	IncludePostsFromSubhierarchies bool
	IncludePostsIntoHierarchyRoot  bool
	ShowListAsSubcategoriesList    bool
	AlsoCreateFromOtherLanguages   bool
	GenerateAtomForLists           bool
	AlwaysDisableRSS               bool
	MinimumPostCountInOverview     int
}

// Templates names the templates used for each page a taxonomy produces.
// An empty Overview means the taxonomy has no overview page.
type Templates struct {
	List          string
	Overview      string
	Subcategories string
}

// OverviewVars are the context keys an overview page publishes its data under.
type OverviewVars struct {
	Classifications string
	Items           string
	Hierarchy       string
}

// Values is a render context or the set of settings a render depends on.
type Values map[string]any

// Clone returns a shallow copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	maps.Copy(out, v)
	return out
}

// Subcategory is a child classification shown on a category-like page.
type Subcategory struct {
	Name           string `json:"name"`
	Classification string `json:"classification"`
	Link           string `json:"link"`
	Count          int    `json:"count"`
}

// Page is the input for building a classification page context.
type Page struct {
	Classification string
	Lang           string
	// Node is the hierarchy node, nil for flat taxonomies and the root.
	Node *hierarchy.Node
	// Subcategories are the visible children of Node.
	Subcategories []Subcategory
}

// Stats exposes classification results to definitions whose availability
// depends on them.
type Stats interface {
	Classifications(taxonomy, lang string) []string
}

// Definition is implemented by every taxonomy variant.
type Definition interface {
	Kind() Kind
	// Name is the classification name used in link kinds and error context.
	Name() string
	Flags() Flags
	Templates() Templates
	OverviewVars() OverviewVars

	// Enabled reports whether pages are generated for lang. stats is the
	// completed classification of the current pass.
	Enabled(lang string, stats Stats) bool

	Classify(item *content.Item, lang string) []string
	ImplicitClassifications(lang string) []string

	// Path returns the raw output segments for a classification.
	Path(classification, lang string) ([]string, IndexMode, error)
	// OverviewPath returns the raw segments of the overview page. ok is
	// false when the taxonomy has none.
	OverviewPath(lang string) (segments []string, mode IndexMode, ok bool)

	// SortClassifications reorders one sibling group (level 0 for roots)
	// after the natural sort.
	SortClassifications(names []string, lang string, level int)
	SortPosts(items []*content.Item, classification, lang string)

	FriendlyName(classification, lang string, lastOnly bool) string
	HiddenInOverview(classification, lang string) bool

	ShouldGenerateList(classification string, posts []*content.Item, lang string) bool
	ShouldGenerateRSS(classification string, posts []*content.Item, lang string) bool

	// Context returns the render context and the settings that influence it.
	Context(page Page) (ctx Values, settings Values)
	OverviewContext(lang string) (ctx Values, settings Values)
}
