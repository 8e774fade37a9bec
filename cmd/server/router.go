package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mathquiz/mathquiz/internal/api"
	apiMiddleware "github.com/mathquiz/mathquiz/internal/api/middleware"
	"github.com/mathquiz/mathquiz/internal/api/shared"
	"github.com/rs/cors"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(newCORS(app.config.Server.CORSAllowedOrigins).Handler)

	api.RegisterRoutes(r,
		api.NewQuestionHandler(app.quiz, app.logger),
		api.NewStatsHandler(app.stats, app.logger),
	)

	r.Get("/health", app.health)

	return r
}

// healthResponse reports storage reachability and the open question backlog.
type healthResponse struct {
	Status        string `json:"status"`
	OpenQuestions int64  `json:"open_questions"`
}

// health answers 503 when the question store cannot be queried.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	open, err := app.questions.CountOpen(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, healthResponse{Status: "ok", OpenQuestions: open})
}

// newCORS allows the configured front-end origins. With no origins
// configured, cross-origin requests are not permitted.
func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", shared.TraceIDHeader},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         300,
	})
}
