package user

import (
	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizlens/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/new-user-signup", h.Signup)
	r.Post("/complete-user-profile", h.CompleteProfile)
	r.Get("/create-user", h.CreateFromToken)
	r.Get("/create-user-2", h.ActivateProfile)
	r.Post("/create-user-profile", h.CreateProfile)
	r.Post("/login", h.Login)
	r.Post("/password-reset", h.RequestPasswordReset)
	r.Post("/update-password", h.ResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Get("/me", h.GetUser)
		r.Put("/me", h.UpdateUser)
	})
	return r
}
