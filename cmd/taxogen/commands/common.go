package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/logfields"
	"git.home.luguber.info/inful/taxogen/internal/metrics"
	"git.home.luguber.info/inful/taxogen/internal/pipeline"
)

// Global carries state shared by all subcommands.
type Global struct {
	Out      io.Writer
	Registry *prom.Registry
	Recorder *metrics.PrometheusRecorder
}

// NewGlobal returns the shared state writing command output to out.
func NewGlobal(out io.Writer) *Global {
	reg := prom.NewRegistry()
	return &Global{Out: out, Registry: reg, Recorder: metrics.NewPrometheusRecorder(reg)}
}

// Flush writes the metrics textfile if one was requested.
func (g *Global) Flush(c *CLI) error {
	if c.MetricsFile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(g.Registry, c.MetricsFile); err != nil {
		slog.Warn("Failed to write metrics file", logfields.Path(c.MetricsFile), logfields.Error(err))
		return err
	}
	return nil
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"taxogen.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this file when the command finishes"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Plan  PlanCmd  `cmd:"" help:"Run a full pass and print the render tasks"`
	Check CheckCmd `cmd:"" help:"Validate classifications and output paths without emitting tasks"`
	Paths PathsCmd `cmd:"" help:"List the output path allocated to every classification"`
	Link  LinkCmd  `cmd:"" help:"Resolve a link:// reference to a URL path"`
	Watch WatchCmd `cmd:"" help:"Re-run the pass whenever content or configuration changes"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// site is a loaded configuration with its resolved content directory.
type site struct {
	cfg        *config.Config
	contentDir string
}

// loadSite reads the configuration and switches logging to its settings.
// A relative content_dir is resolved against the configuration file.
func loadSite(root *CLI) (*site, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(cfg.Logging.NewHandler(os.Stderr, root.Verbose)))

	dir := cfg.ContentDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(root.Config), dir)
	}
	return &site{cfg: cfg, contentDir: dir}, nil
}

// statePath resolves the fingerprint database location like content_dir.
func (s *site) statePath(root *CLI, override string) string {
	p := override
	if p == "" {
		p = s.cfg.StateFile
	}
	if p == "" || p == ":memory:" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(root.Config), p)
}

// run loads the corpus and performs one pass.
func (s *site) run(ctx context.Context, g *Global, opts ...pipeline.Option) (*pipeline.Plan, error) {
	corpus, err := content.Load(ctx, s.contentDir, content.LoadOptions{
		DefaultLang: s.cfg.DefaultLang,
		Languages:   s.cfg.Languages(),
		PrettyURLs:  s.cfg.PrettyURLs,
		IndexFile:   s.cfg.IndexFile,
	})
	if err != nil {
		return nil, err
	}
	opts = append([]pipeline.Option{pipeline.WithRecorder(g.Recorder)}, opts...)
	return pipeline.Run(ctx, corpus, s.cfg, opts...)
}
