package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizlens/internal/analysis"
	"github.com/saulo-duarte/quizlens/internal/answer"
	"github.com/saulo-duarte/quizlens/internal/auth"
	"github.com/saulo-duarte/quizlens/internal/company"
	"github.com/saulo-duarte/quizlens/internal/config"
	"github.com/saulo-duarte/quizlens/internal/mailer"
	"github.com/saulo-duarte/quizlens/internal/quiz"
	"github.com/saulo-duarte/quizlens/internal/router"
	"github.com/saulo-duarte/quizlens/internal/user"
)

const defaultIndexTTL = 10 * time.Minute

type Container struct {
	Settings *config.Settings
	DB       *gorm.DB
	Redis    *redis.Client

	UserContainer     *user.UserContainer
	QuizContainer     *quiz.QuizContainer
	AnswerContainer   *answer.AnswerContainer
	AnalysisContainer *analysis.AnalysisContainer
	CompanyContainer  *company.CompanyContainer

	Router http.Handler
}

// Bootstrap initializes logging, secrets and the database connection shared by every command.
func Bootstrap(ctx context.Context, s *config.Settings) (*gorm.DB, error) {
	config.InitLogger(s.Log.Level, s.Log.Format)

	if s.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if len(s.Auth.CryptoKey) != 32 {
		return nil, errors.New("CRYPTO_KEY must be exactly 32 bytes")
	}
	auth.Init(s.Auth.JWTSecret)
	config.InitCrypto(s.Auth.CryptoKey)

	if err := config.Connect(ctx, s.Database.DSN); err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	return config.DB, nil
}

func New(ctx context.Context, s *config.Settings) (*Container, error) {
	db, err := Bootstrap(ctx, s)
	if err != nil {
		return nil, err
	}
	log := config.WithContext(ctx)

	var rdb *redis.Client
	if s.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("Redis indisponível; índice de perguntas seguirá pelo banco quando necessário")
		}
	}

	provider, err := analysis.NewGeminiProvider(ctx, s.Gemini.APIKey, s.Gemini.Model)
	if err != nil {
		log.WithError(err).Warn("Provedor de análise desativado")
	}

	m := mailer.New(s.Mail.ResendAPIKey, s.Mail.From, s.Mail.ReplyTo)

	userContainer := user.NewUserContainer(db, m, user.Options{
		BackendURL:  s.Server.BackendURL,
		FrontendURL: s.Server.FrontendURL,
	})
	quizContainer := quiz.NewQuizContainer(db, rdb, config.TTLDuration(s.Redis.TTL, defaultIndexTTL))
	answerContainer := answer.NewAnswerContainer(db, userContainer.Service, quizContainer.Service)
	analysisContainer := analysis.NewAnalysisContainer(
		db,
		provider,
		userContainer.Service,
		quizContainer.Service,
		answerContainer.Service,
	)
	companyContainer := company.NewCompanyContainer(m, s.Mail.ContactRecipients)

	r := router.New(router.RouterConfig{
		UserHandler:     userContainer.Handler,
		QuizHandler:     quizContainer.Handler,
		AnswerHandler:   answerContainer.Handler,
		AnalysisHandler: analysisContainer.Handler,
		CompanyHandler:  companyContainer.Handler,
		AllowedOrigins:  s.Server.AllowedOrigins,
		RateLimitRPS:    s.RateLimit.RPS,
		RateLimitBurst:  s.RateLimit.Burst,
	})

	return &Container{
		Settings:          s,
		DB:                db,
		Redis:             rdb,
		UserContainer:     userContainer,
		QuizContainer:     quizContainer,
		AnswerContainer:   answerContainer,
		AnalysisContainer: analysisContainer,
		CompanyContainer:  companyContainer,
		Router:            r,
	}, nil
}

func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
