package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizlens/internal/answer"
	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/config"
	"github.com/saulo-duarte/quizlens/internal/quiz"
	"github.com/saulo-duarte/quizlens/internal/user"
)

type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

type QuestionCatalog interface {
	ListQuestions(ctx context.Context, quizID uuid.UUID) ([]*quiz.Question, error)
}

type AnswerLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) ([]*answer.Answer, error)
}

type AnalysisService interface {
	Generate(ctx context.Context, username string, quizID uuid.UUID) (*AnalysisResult, error)
	Fetch(ctx context.Context, username string, quizID uuid.UUID) (*AnalysisResult, error)
}

type analysisService struct {
	repo      AnalysisRepository
	provider  Provider
	users     UserLookup
	questions QuestionCatalog
	answers   AnswerLister
	now       func() time.Time
}

// NewService builds the analysis service. A nil provider makes Generate fail with an upstream error.
func NewService(repo AnalysisRepository, provider Provider, users UserLookup, questions QuestionCatalog, answers AnswerLister) AnalysisService {
	return &analysisService{
		repo:      repo,
		provider:  provider,
		users:     users,
		questions: questions,
		answers:   answers,
		now:       time.Now,
	}
}

func (s *analysisService) Generate(ctx context.Context, username string, quizID uuid.UUID) (*AnalysisResult, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"username": username,
		"quiz_id":  quizID.String(),
	})

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	answers, err := s.answers.ListForUser(ctx, u.ID, ids)
	if err != nil {
		return nil, err
	}

	if s.provider == nil {
		log.Warn("Análise solicitada sem provedor configurado")
		return nil, apperror.Upstream("analysis provider is not configured", ErrNoAPIKey)
	}

	transcript, answered := BuildTranscript(questions, answers)
	prompt, err := BuildUserPrompt(UserProfile{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
	}, transcript)
	if err != nil {
		log.WithError(err).Error("Erro ao montar prompt da análise")
		return nil, err
	}

	raw, err := s.provider.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		log.WithError(err).Error("Falha na chamada ao provedor de análise")
		return nil, apperror.Upstream("analysis generation failed", err)
	}

	_, doc, err := Parse(raw)
	if err != nil {
		log.WithError(err).Errorf("Resposta do provedor em formato inesperado:\n%s", raw)
		return nil, apperror.Upstream("analysis response could not be parsed", err)
	}

	meta, err := json.Marshal(Metadata{
		Model:         s.provider.Model(),
		QuestionCount: len(questions),
		AnsweredCount: answered,
		GeneratedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	res := &AnalysisResult{
		UserID:   u.ID,
		QuizID:   quizID,
		Analysis: doc,
		Metadata: meta,
	}
	if err := s.repo.Replace(ctx, res); err != nil {
		if errors.Is(err, ErrDuplicateAnalysis) {
			log.WithError(err).Warn("Geração concorrente para o mesmo quiz")
			return nil, apperror.Conflict("another analysis for this quiz was generated at the same time", err)
		}
		log.WithError(err).Error("Erro ao gravar análise")
		return nil, err
	}

	log.WithField("answered", answered).Info("Análise gerada e armazenada")
	return res, nil
}

func (s *analysisService) Fetch(ctx context.Context, username string, quizID uuid.UUID) (*AnalysisResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.Latest(ctx, u.ID, quizID)
	if errors.Is(err, ErrAnalysisNotFound) {
		return nil, apperror.NotFound("analysis not found")
	}
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao buscar análise")
		return nil, err
	}
	return res, nil
}
