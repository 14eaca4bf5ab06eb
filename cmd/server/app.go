package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nabink/lang-portal/internal/config"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/platform/postgres"
	"github.com/nabink/lang-portal/internal/service/dashboard"
	"github.com/nabink/lang-portal/internal/service/studysession"
	"github.com/nabink/lang-portal/internal/store"
)

// application holds the wired dependency graph: configuration, the
// database handle, every store, and the services built on top of them.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	wordStore     store.WordStore
	groupStore    store.GroupStore
	activityStore store.ActivityStore
	sessionStore  store.SessionStore
	reviewStore   store.ReviewStore
	statsStore    store.StatsStore
	resetStore    store.ResetStore

	sessionService   studysession.Service
	dashboardService dashboard.Service
}

// newApplication wires stores and services onto an open database handle.
// The caller owns the handle's lifecycle; cleanup only logs.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database handle cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.groupStore = postgres.NewPostgresGroupStore(db, logger)
	app.activityStore = postgres.NewPostgresActivityStore(db, logger)
	app.sessionStore = postgres.NewPostgresSessionStore(db, logger)
	app.reviewStore = postgres.NewPostgresReviewStore(db, logger)
	app.statsStore = postgres.NewPostgresStatsStore(db, logger)
	app.resetStore = postgres.NewPostgresResetStore(db, logger)

	sessionService, err := studysession.NewService(
		app.sessionStore,
		app.groupStore,
		app.activityStore,
		app.wordStore,
		app.reviewStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create study session service: %w", err)
	}
	app.sessionService = sessionService

	dashboardService, err := dashboard.NewService(
		app.statsStore,
		app.sessionStore,
		app.groupStore,
		app.reviewStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard service: %w", err)
	}
	app.dashboardService = dashboardService

	return app, nil
}

// paginationLimits derives the list-endpoint bounds from configuration.
func (app *application) paginationLimits() pagination.Limits {
	return pagination.Limits{
		Default: app.config.Server.DefaultPageSize,
		Max:     app.config.Server.MaxPageSize,
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}
}
