package api

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the question and statistics endpoints under /api.
func RegisterRoutes(r chi.Router, questions *QuestionHandler, stats *StatsHandler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/new-question", questions.NewQuestion)
		r.Post("/submit-answer", questions.SubmitAnswer)
		r.Get("/statistics", questions.Statistics)
		r.Get("/mistake-collection", questions.MistakeCollection)

		r.Get("/today", stats.Today)
		r.Get("/last/{n}", stats.LastN)
		r.Get("/daily", stats.History)
		r.Get("/daily/{year}/{month}/{day}", stats.Daily)
	})
}
