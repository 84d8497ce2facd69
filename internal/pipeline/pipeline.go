// Package pipeline runs one full classification pass over a corpus.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/taxogen/internal/classify"
	"git.home.luguber.info/inful/taxogen/internal/config"
	"git.home.luguber.info/inful/taxogen/internal/content"
	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/logfields"
	"git.home.luguber.info/inful/taxogen/internal/metrics"
	"git.home.luguber.info/inful/taxogen/internal/pathalloc"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
	"git.home.luguber.info/inful/taxogen/internal/tasks"
	"git.home.luguber.info/inful/taxogen/internal/translations"
)

// Pipeline rebuilds every structure from scratch on each Run. Phases are
// strictly ordered; allocation finishes for all taxonomies and languages
// before anything reads the table.
type Pipeline struct {
	cfg      *config.Config
	recorder metrics.Recorder
	bus      *Bus
	compiler content.Compiler
	newID    func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithBus publishes pass events on b.
func WithBus(b *Bus) Option {
	return func(p *Pipeline) { p.bus = b }
}

// WithCompiler sets the dependency provider used for task file deps.
func WithCompiler(c content.Compiler) Option {
	return func(p *Pipeline) { p.compiler = c }
}

// WithPassID fixes the pass ID generator.
func WithPassID(fn func() string) Option {
	return func(p *Pipeline) { p.newID = fn }
}

// New returns a pipeline for cfg.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run is shorthand for New(cfg, opts...).Run(ctx, corpus).
func Run(ctx context.Context, corpus *content.Corpus, cfg *config.Config, opts ...Option) (*Plan, error) {
	return New(cfg, opts...).Run(ctx, corpus)
}

// pass carries the state of one Run.
type pass struct {
	*Pipeline
	ctx    context.Context
	log    *slog.Logger
	plan   *Plan
	phase  string
	failed error
}

// Run classifies corpus, allocates paths, resolves translations and
// generates tasks. The first fatal problem aborts the pass; a pass with
// several problems of the same phase reports them joined.
func (p *Pipeline) Run(ctx context.Context, corpus *content.Corpus) (*Plan, error) {
	start := time.Now()
	id := p.newID()
	ps := &pass{
		Pipeline: p,
		ctx:      ctx,
		log:      slog.Default().With(logfields.PassID(id)),
		plan:     &Plan{PassID: id, Config: p.cfg},
	}
	ps.log.Info("Pass started", logfields.Count(corpus.Len()))
	if err := p.bus.Publish(PassStarted{PassID: id, Items: corpus.Len()}); err != nil {
		return nil, ps.fail(err)
	}

	steps := []struct {
		name string
		run  func(*content.Corpus) (int, error)
	}{
		{PhaseRegistry, ps.buildRegistry},
		{PhaseClassify, ps.classify},
		{PhaseAllocate, ps.allocate},
		{PhaseResolve, ps.resolve},
		{PhaseGenerate, ps.generate},
	}
	for _, step := range steps {
		ps.phase = step.name
		if err := ctx.Err(); err != nil {
			return nil, ps.fail(err)
		}
		phaseStart := time.Now()
		n, err := step.run(corpus)
		if err == nil {
			err = ps.failed
		}
		if err != nil {
			return nil, ps.fail(err)
		}
		d := time.Since(phaseStart)
		p.recorder.ObservePhaseDuration(step.name, d)
		ps.log.Debug("Phase completed", logfields.Phase(step.name), logfields.Count(n), logfields.DurationMS(ms(d)))
		if err := p.bus.Publish(PhaseCompleted{PassID: id, Phase: step.name, Duration: d, Count: n}); err != nil {
			return nil, ps.fail(err)
		}
	}

	d := time.Since(start)
	if err := p.bus.Publish(PassCompleted{PassID: id, Tasks: len(ps.plan.Tasks), Duration: d}); err != nil {
		return nil, ps.fail(err)
	}
	p.recorder.ObservePassDuration(d)
	p.recorder.IncPassOutcome(metrics.OutcomeSuccess)
	ps.log.Info("Pass completed", logfields.Count(len(ps.plan.Tasks)), logfields.DurationMS(ms(d)))
	return ps.plan, nil
}

func (ps *pass) buildRegistry(*content.Corpus) (int, error) {
	reg, err := taxonomy.NewRegistry(ps.cfg)
	if err != nil {
		return 0, err
	}
	ps.plan.Registry = reg
	return len(reg.Definitions()), nil
}

func (ps *pass) classify(corpus *content.Corpus) (int, error) {
	c := classify.New(ps.plan.Registry, ps.cfg.Languages())
	c.OnScanned(func(corpus *content.Corpus) {
		if err := ps.bus.Publish(CorpusScanned{PassID: ps.plan.PassID, Items: corpus.Len()}); err != nil && ps.failed == nil {
			ps.failed = err
		}
	})
	c.OnClassified(func(res *classify.Result) {
		for _, name := range res.Taxonomies() {
			for _, lang := range res.Languages() {
				ps.recorder.SetClassifications(name, lang, len(res.Classifications(name, lang)))
			}
		}
	})
	res, err := c.Classify(corpus)
	if err != nil {
		return 0, err
	}
	ps.plan.Result = res
	n := 0
	for _, name := range res.Taxonomies() {
		for _, lang := range res.Languages() {
			n += len(res.Classifications(name, lang))
		}
	}
	return n, nil
}

func (ps *pass) allocate(*content.Corpus) (int, error) {
	table, err := pathalloc.Allocate(ps.plan.Result, ps.plan.Registry, ps.cfg)
	if err != nil {
		return 0, err
	}
	ps.plan.Table = table
	return table.Len(), nil
}

func (ps *pass) resolve(*content.Corpus) (int, error) {
	ps.plan.Variants = translations.New(ps.cfg, ps.plan.Registry, ps.plan.Table)
	return 0, nil
}

func (ps *pass) generate(*content.Corpus) (int, error) {
	gen := tasks.New(ps.cfg, ps.plan.Registry, ps.plan.Result, ps.plan.Table, ps.plan.Variants, ps.compiler)
	out, err := gen.Generate()
	if err != nil {
		return 0, err
	}
	ps.plan.Tasks = out
	ps.plan.Links = gen.Links()
	counts := make(map[tasks.Kind]int)
	for _, t := range out {
		counts[t.Kind]++
	}
	for kind, n := range counts {
		ps.recorder.AddTasks(string(kind), n)
	}
	return len(out), nil
}

// fail records the failure of the current phase and returns err unchanged
// unless it is unclassified.
func (ps *pass) fail(err error) error {
	outcome := metrics.OutcomeFailed
	if ps.ctx.Err() != nil {
		outcome = metrics.OutcomeCanceled
	} else if !errors.IsClassified(err) {
		err = errors.WrapError(err, errors.CategoryInternal, "pass failed").
			WithContext(logfields.KeyPhase, ps.phase).
			Build()
	}
	for _, cat := range []errors.ErrorCategory{
		errors.CategoryConfig,
		errors.CategoryClassification,
		errors.CategoryPathCollision,
		errors.CategoryEscapeSyntax,
		errors.CategoryInternal,
	} {
		if n := len(errors.Collect(err, cat)); n > 0 {
			ps.recorder.AddErrors(string(cat), n)
		}
	}
	ps.recorder.IncPassOutcome(outcome)
	ps.log.Error("Pass failed", logfields.Phase(ps.phase), logfields.Error(err))
	if perr := ps.bus.Publish(PassFailed{PassID: ps.plan.PassID, Phase: ps.phase, Err: err}); perr != nil {
		ps.log.Warn("Failure observer returned an error", logfields.Error(perr))
	}
	return err
}

func ms(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }
