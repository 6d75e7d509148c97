package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/p-n-ai/dsa-sheet/internal/catalog"
	"github.com/p-n-ai/dsa-sheet/internal/platform/metrics"
	"github.com/p-n-ai/dsa-sheet/internal/progress"
	"github.com/p-n-ai/dsa-sheet/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and change feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Graceful shutdown on SIGTERM/SIGINT.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	m := metrics.New()
	hub := server.NewHub(m)

	a, err := openApp(ctx,
		progress.WithObserver(hub.Publish),
		progress.WithObserver(func(c progress.Change) {
			m.ObserveMutation(string(c.Kind), c.Persisted)
		}),
	)
	if err != nil {
		return err
	}
	defer a.Close()

	quotes := catalog.NewRotator(a.catalog.Header.Quotes)
	srv := server.New(server.Deps{
		Catalog:  a.catalog,
		Progress: a.progress,
		Session:  a.session,
		Theme:    a.theme,
		Quotes:   quotes,
		Options:  a.filterOptions(),
		Storage:  a.backend,
		Metrics:  m,
		Hub:      hub,
	})

	sched, err := startQuoteRotation(quotes, a.cfg.QuoteInterval)
	if err != nil {
		return err
	}
	defer sched.Stop()

	httpSrv := &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting",
			"addr", httpSrv.Addr,
			"backend", a.backend.Name(),
			"topics", len(a.catalog.Topics),
			"questions", a.catalog.QuestionCount(),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// startQuoteRotation advances the current quote every interval.
func startQuoteRotation(quotes *catalog.Rotator, interval time.Duration) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	if interval > 0 {
		_, err := s.Every(interval).WaitForSchedule().Do(func() {
			if q, ok := quotes.Next(); ok {
				slog.Debug("quote advanced", "author", q.Author)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("schedule quote rotation: %w", err)
		}
	}
	s.StartAsync()
	return s, nil
}
