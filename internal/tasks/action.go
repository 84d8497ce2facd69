package tasks

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
)

// ActionKind selects the collaborator an action is executed with.
type ActionKind string

const (
	ActionRender ActionKind = "render"
	ActionFeed   ActionKind = "feed"
)

// Feed is the input of one RSS or Atom document.
type Feed struct {
	Format      Kind      `json:"format" yaml:"format"`
	Lang        string    `json:"lang" yaml:"lang"`
	Title       string    `json:"title" yaml:"title"`
	Link        string    `json:"link" yaml:"link"`
	Description string    `json:"description" yaml:"description"`
	FeedURL     string    `json:"feed_url" yaml:"feed_url"`
	PrevLink    string    `json:"prev_link,omitempty" yaml:"prev_link,omitempty"`
	NextLink    string    `json:"next_link,omitempty" yaml:"next_link,omitempty"`
	Posts       []PostRef `json:"posts" yaml:"posts"`
}

// Action is a self-contained render step. Its context is a snapshot taken
// when the task was emitted and is never shared with other actions.
type Action struct {
	Kind     ActionKind      `json:"kind" yaml:"kind"`
	Template string          `json:"template,omitempty" yaml:"template,omitempty"`
	Output   string          `json:"output" yaml:"output"`
	Context  taxonomy.Values `json:"context,omitempty" yaml:"context,omitempty"`
	Feed     *Feed           `json:"feed,omitempty" yaml:"feed,omitempty"`
	// Posts are the items behind the PostRefs in Context or Feed.
	Posts []*content.Item `json:"-" yaml:"-"`
}

// Renderer renders a template with a page context.
type Renderer interface {
	Render(ctx context.Context, template string, data taxonomy.Values, w io.Writer) error
}

// FeedRenderer serializes a feed document.
type FeedRenderer interface {
	RenderFeed(ctx context.Context, feed *Feed, w io.Writer) error
}

// Writer opens output files.
type Writer interface {
	Create(output string) (io.WriteCloser, error)
}

// Run renders the action into its output.
func (a Action) Run(ctx context.Context, r Renderer, fr FeedRenderer, w Writer) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	out, err := w.Create(a.Output)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output file").
			WithContext(errors.KeyPath, a.Output).
			Build()
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.WrapError(cerr, errors.CategoryFileSystem, "failed to close output file").
				WithContext(errors.KeyPath, a.Output).
				Build()
		}
	}()

	switch a.Kind {
	case ActionFeed:
		err = fr.RenderFeed(ctx, a.Feed, out)
	default:
		err = r.Render(ctx, a.Template, a.Context.Clone(), out)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to render output").
			WithContext(errors.KeyPath, a.Output).
			WithContext("template", a.Template).
			Build()
	}
	return nil
}

// Run executes every action of the task in order.
func (t *Task) Run(ctx context.Context, r Renderer, fr FeedRenderer, w Writer) error {
	for _, a := range t.Actions {
		if err := a.Run(ctx, r, fr, w); err != nil {
			return err
		}
	}
	return nil
}

// FileWriter creates outputs on the local filesystem, creating parent
// directories as needed.
type FileWriter struct{}

func (FileWriter) Create(output string) (io.WriteCloser, error) {
	p := filepath.FromSlash(output)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return nil, err
	}
	return os.Create(p) // #nosec G304 -- output paths come from the allocation table
}
