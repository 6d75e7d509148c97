package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/p-n-ai/dsa-sheet/internal/catalog"
	"github.com/p-n-ai/dsa-sheet/internal/platform/config"
	"github.com/p-n-ai/dsa-sheet/internal/platform/logging"
	"github.com/p-n-ai/dsa-sheet/internal/progress"
	"github.com/p-n-ai/dsa-sheet/internal/search"
	"github.com/p-n-ai/dsa-sheet/internal/session"
	"github.com/p-n-ai/dsa-sheet/internal/storage"
)

// app is the wiring shared by every command.
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog

	backend  storage.Backend
	progress *progress.Store
	session  *session.Store
	theme    *session.ThemeStore
}

// loadConfig reads and validates configuration and installs the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logging.Setup(cfg.Log)
	return cfg, nil
}

// loadCatalog reads DSA_CATALOG_PATH, or the bundled catalog when unset.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Sample()
	}
	return catalog.Load(cfg.CatalogPath)
}

// openApp loads the catalog and opens the stores on the configured backend.
func openApp(ctx context.Context, opts ...progress.Option) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	c, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}

	// Postgres deployments also keep an event log of progress changes.
	if pg, ok := backend.(*storage.Postgres); ok {
		opts = append(opts, progress.WithEventLogger(progress.NewPostgresEventLogger(pg.Pool())))
	}
	opts = append(opts, progress.WithTimeout(cfg.Storage.Timeout))

	a := &app{
		cfg:      cfg,
		catalog:  c,
		backend:  backend,
		progress: progress.Open(ctx, backend, opts...),
		session:  session.Open(ctx, backend, session.WithTimeout(cfg.Storage.Timeout)),
		theme:    session.OpenTheme(ctx, backend, session.WithTimeout(cfg.Storage.Timeout)),
	}
	slog.Debug("stores opened",
		"backend", backend.Name(),
		"progress", a.progress.Outcome().String(),
		"identity", a.session.Outcome().String(),
		"theme", a.theme.Outcome().String(),
	)
	return a, nil
}

func (a *app) filterOptions() search.FilterOptions {
	return search.FilterOptions{
		BookmarkFilterEnabled: a.cfg.BookmarkFilterEnabled(a.catalog.Header.BookmarkFilterEnabled),
	}
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		slog.Warn("close storage", "error", err)
	}
}
