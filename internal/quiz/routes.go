package quiz

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the catalog and traversal endpoints on the /quiz router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.ListQuizzes)
	r.Get("/questions/{quizID}", h.GetQuestion)
	r.Get("/{quizID}", h.GetQuiz)
}
