package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/nabink/lang-portal/internal/api"
	apiMiddleware "github.com/nabink/lang-portal/internal/api/middleware"
)

// setupRouter builds the chi router with all middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)

	limits := app.paginationLimits()

	wordHandler := api.NewWordHandler(app.wordStore, limits, app.logger)
	groupHandler := api.NewGroupHandler(
		app.groupStore,
		app.wordStore,
		app.sessionService,
		app.dashboardService,
		limits,
		app.logger,
	)
	activityHandler := api.NewActivityHandler(app.activityStore, app.sessionService, limits, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionService, app.wordStore, limits, app.logger)
	dashboardHandler := api.NewDashboardHandler(app.dashboardService, app.logger)
	resetHandler := api.NewResetHandler(app.resetStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/words", func(r chi.Router) {
			r.Get("/", wordHandler.List)
			r.Post("/", wordHandler.Create)
			r.Get("/{id}", wordHandler.Get)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groupHandler.List)
			r.Post("/", groupHandler.Create)
			r.Get("/{id}", groupHandler.Get)
			r.Get("/{id}/words", groupHandler.ListWords)
			r.Post("/{id}/words", groupHandler.AddWord)
			r.Get("/{id}/study-sessions", groupHandler.ListSessions)
		})

		r.Route("/study-activities", func(r chi.Router) {
			r.Get("/", activityHandler.List)
			r.Post("/", activityHandler.Create)
			r.Get("/{id}", activityHandler.Get)
			r.Get("/{id}/study-sessions", activityHandler.ListSessions)
		})

		r.Route("/study-sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.List)
			r.Post("/", sessionHandler.Start)
			r.Get("/{id}", sessionHandler.Get)
			r.Post("/{id}/end", sessionHandler.End)
			r.Get("/{id}/words", sessionHandler.ListWords)
			r.Post("/{id}/words/{word_id}/review", sessionHandler.RecordReview)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", dashboardHandler.Overview)
			r.Get("/statistics", dashboardHandler.Statistics)
			r.Get("/study-progress", dashboardHandler.StudyProgress)
			r.Get("/last-session", dashboardHandler.LastSession)
		})

		r.Post("/reset-history", resetHandler.ResetHistory)
		r.Post("/full-reset", resetHandler.FullReset)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
