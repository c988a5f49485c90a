package answer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/config"
	"github.com/saulo-duarte/quizlens/internal/quiz"
	"github.com/saulo-duarte/quizlens/internal/user"
)

type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

type QuestionLookup interface {
	GetQuestionByID(ctx context.Context, id uuid.UUID) (*quiz.Question, error)
}

type SubmitInput struct {
	Username   string
	QuestionID uuid.UUID
	Payload    Payload
}

type AnswerService interface {
	Submit(ctx context.Context, in SubmitInput) (*Answer, error)
	ListForUser(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) ([]*Answer, error)
}

type answerService struct {
	repo      AnswerRepository
	users     UserLookup
	questions QuestionLookup
}

func NewService(repo AnswerRepository, users UserLookup, questions QuestionLookup) AnswerService {
	return &answerService{repo: repo, users: users, questions: questions}
}

func (s *answerService) Submit(ctx context.Context, in SubmitInput) (*Answer, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"username":    in.Username,
		"question_id": in.QuestionID.String(),
	})

	u, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	q, err := s.questions.GetQuestionByID(ctx, in.QuestionID)
	if err != nil {
		return nil, err
	}

	a, err := Build(q, u.ID, in.Payload)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Replace(ctx, a); err != nil {
		if errors.Is(err, ErrDuplicateAnswer) {
			log.WithError(err).Warn("Submissão concorrente para a mesma pergunta")
			return nil, apperror.Conflict("another answer for this question was submitted at the same time", err)
		}
		log.WithError(err).Error("Erro ao gravar resposta")
		return nil, err
	}

	log.WithField("kind", a.Kind).Info("Resposta registrada")
	return a, nil
}

func (s *answerService) ListForUser(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) ([]*Answer, error) {
	answers, err := s.repo.ListByUserAndQuestions(ctx, userID, questionIDs)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Erro ao listar respostas do usuário")
		return nil, err
	}
	return answers, nil
}
