package content

// Compiler reports the files a rendered item depends on in one language.
// Markup compilation itself happens outside this module.
type Compiler interface {
	Deps(item *Item, lang string) []string
}

// SourceCompiler treats an item's own source file as its only dependency.
type SourceCompiler struct{}

func (SourceCompiler) Deps(item *Item, lang string) []string {
	if p := item.Meta(lang).SourcePath; p != "" {
		return []string{p}
	}
	return nil
}
