package analysis

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/quiz-ai-analysis", h.GenerateAnalysis)
	r.Get("/fetch-quiz-analysis", h.FetchAnalysis)
}
