package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/taxogen/internal/logfields"
	"git.home.luguber.info/inful/taxogen/internal/metrics"
	"git.home.luguber.info/inful/taxogen/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce    time.Duration `help:"Quiet period before a change triggers a pass" default:"500ms"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9090)"`
	State       string        `help:"Fingerprint database (defaults to state_file from the configuration)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := loadSite(root)
	if err != nil {
		return err
	}
	if w.MetricsAddr != "" {
		srv := &http.Server{Addr: w.MetricsAddr, Handler: metrics.HTTPHandler(g.Registry), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer stopCancel()
			_ = srv.Shutdown(stopCtx)
		}()
	}

	plan := &PlanCmd{State: w.State}
	pass := func(ctx context.Context) error {
		// The configuration may have changed too.
		fresh, err := loadSite(root)
		if err != nil {
			return err
		}
		s = fresh
		p, err := s.run(ctx, g)
		if err != nil {
			return err
		}
		doc := PlanDocument{PassID: p.PassID, Tasks: p.Tasks}
		if err := plan.compare(ctx, s.statePath(root, w.State), p, &doc); err != nil {
			return err
		}
		fmt.Fprintf(g.Out, "%s: %d tasks, %d stale\n", p.PassID, len(p.Tasks), len(doc.Stale))
		return g.Flush(root)
	}
	if err := pass(ctx); err != nil {
		slog.Error("Initial pass failed", logfields.Error(err))
	}

	watcher, err := watch.New([]string{root.Config, s.contentDir},
		watch.WithDebounce(w.Debounce),
		watch.WithExtensions(".md"),
	)
	if err != nil {
		return err
	}
	slog.Info("Watching for changes", logfields.Path(s.contentDir))
	return watcher.Run(ctx, pass)
}

