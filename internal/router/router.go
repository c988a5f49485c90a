package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/saulo-duarte/quizlens/docs"
	"github.com/saulo-duarte/quizlens/internal/analysis"
	"github.com/saulo-duarte/quizlens/internal/answer"
	"github.com/saulo-duarte/quizlens/internal/company"
	"github.com/saulo-duarte/quizlens/internal/config"
	"github.com/saulo-duarte/quizlens/internal/middlewares"
	"github.com/saulo-duarte/quizlens/internal/quiz"
	"github.com/saulo-duarte/quizlens/internal/user"
)

const APIPrefix = "/api/v1"

type RouterConfig struct {
	UserHandler     *user.Handler
	QuizHandler     *quiz.Handler
	AnswerHandler   *answer.Handler
	AnalysisHandler *analysis.Handler
	CompanyHandler  *company.Handler

	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type healthResponse struct {
	Status string `json:"status"`
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(middlewares.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

		r.Route("/quiz", func(r chi.Router) {
			answer.RegisterRoutes(r, cfg.AnswerHandler)
			analysis.RegisterRoutes(r, cfg.AnalysisHandler)
			quiz.RegisterRoutes(r, cfg.QuizHandler)
		})

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/company", company.Routes(cfg.CompanyHandler))
	})
	return r
}
