package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/config"
	util "github.com/saulo-duarte/quizlens/internal/utils"
)

const msgNoMoreQuestions = "No more questions"

type QuizService interface {
	ListActiveQuizzes(ctx context.Context) ([]*QuizResponse, error)
	GetQuiz(ctx context.Context, quizID uuid.UUID) (*QuizResponse, error)
	GetQuestion(ctx context.Context, quizID uuid.UUID, index int) (*QuestionResponse, error)
	GetQuestionByID(ctx context.Context, id uuid.UUID) (*Question, error)
	ListQuestions(ctx context.Context, quizID uuid.UUID) ([]*Question, error)
	CreateQuizWithQuestions(ctx context.Context, quiz *Quiz, questions []*Question) error
}

type quizService struct {
	repo  QuizRepository
	index QuestionIndex
}

func NewService(repo QuizRepository, index QuestionIndex) QuizService {
	if index == nil {
		index = NewDBQuestionIndex(repo)
	}
	return &quizService{repo: repo, index: index}
}

func (s *quizService) activeQuiz(ctx context.Context, log logrus.FieldLogger, quizID uuid.UUID) (*Quiz, error) {
	q, err := s.repo.GetActiveByID(ctx, quizID)
	if errors.Is(err, ErrNotFound) {
		return nil, apperror.NotFound("quiz not found")
	}
	if err != nil {
		log.WithError(err).Error("Erro ao buscar quiz")
		return nil, err
	}
	return q, nil
}

func (s *quizService) ListActiveQuizzes(ctx context.Context) ([]*QuizResponse, error) {
	log := config.WithContext(ctx)

	quizzes, err := s.repo.ListActive(ctx)
	if err != nil {
		log.WithError(err).Error("Erro ao listar quizzes ativos")
		return nil, err
	}

	out := make([]*QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		total, err := s.repo.CountQuestions(ctx, q.ID)
		if err != nil {
			log.WithError(err).Error("Erro ao contar perguntas do quiz")
			return nil, err
		}
		out = append(out, toQuizResponse(q, int(total)))
	}
	return out, nil
}

func (s *quizService) GetQuiz(ctx context.Context, quizID uuid.UUID) (*QuizResponse, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID.String())

	q, err := s.activeQuiz(ctx, log, quizID)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountQuestions(ctx, q.ID)
	if err != nil {
		log.WithError(err).Error("Erro ao contar perguntas do quiz")
		return nil, err
	}
	return toQuizResponse(q, int(total)), nil
}

func (s *quizService) GetQuestion(ctx context.Context, quizID uuid.UUID, index int) (*QuestionResponse, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"quiz_id":        quizID.String(),
		"question_index": index,
	})

	if _, err := s.activeQuiz(ctx, log, quizID); err != nil {
		return nil, err
	}

	ids, err := s.index.QuestionIDs(ctx, quizID)
	if err != nil {
		log.WithError(err).Error("Erro ao carregar índice de perguntas")
		return nil, err
	}
	if index < 0 || index >= len(ids) {
		return nil, apperror.NotFound(msgNoMoreQuestions)
	}

	q, err := s.repo.GetQuestion(ctx, ids[index])
	if errors.Is(err, ErrNotFound) {
		log.Warn("Índice de perguntas desatualizado; invalidando")
		if ierr := s.index.Invalidate(ctx, quizID); ierr != nil {
			log.WithError(ierr).Warn("Falha ao invalidar índice de perguntas")
		}
		return nil, apperror.NotFound(msgNoMoreQuestions)
	}
	if err != nil {
		log.WithError(err).Error("Erro ao buscar pergunta")
		return nil, err
	}

	return toQuestionResponse(q, index, len(ids)), nil
}

func (s *quizService) GetQuestionByID(ctx context.Context, id uuid.UUID) (*Question, error) {
	q, err := s.repo.GetQuestion(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperror.NotFound("question not found")
	}
	return q, err
}

func (s *quizService) ListQuestions(ctx context.Context, quizID uuid.UUID) ([]*Question, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID.String())

	if _, err := s.activeQuiz(ctx, log, quizID); err != nil {
		return nil, err
	}
	questions, err := s.repo.ListQuestions(ctx, quizID)
	if err != nil {
		log.WithError(err).Error("Erro ao listar perguntas do quiz")
		return nil, err
	}
	return questions, nil
}

// CreateQuizWithQuestions stores a quiz and its questions in one transaction.
// Ids are assigned here in slice order so traversal follows the given order.
func (s *quizService) CreateQuizWithQuestions(ctx context.Context, quiz *Quiz, questions []*Question) error {
	log := config.WithContext(ctx).WithField("title", quiz.Title)
	log.Info("Criando novo quiz...")

	if len(questions) == 0 {
		return apperror.Validation("quiz must contain at least one question")
	}
	for n, q := range questions {
		if err := q.Validate(); err != nil {
			return apperror.Validation(fmt.Sprintf("question %d: %v", n+1, err))
		}
	}

	if quiz.Category != nil && quiz.CategoryID == nil {
		c, err := s.repo.FindOrCreateCategory(ctx, quiz.Category.Name, quiz.Category.Description)
		if err != nil {
			log.WithError(err).Error("Erro ao garantir categoria")
			return err
		}
		quiz.CategoryID = &c.ID
		quiz.Category = c
	}

	util.EnsureID(&quiz.ID)
	for _, q := range questions {
		util.EnsureID(&q.ID)
		q.QuizID = quiz.ID
		for i := range q.Options {
			util.EnsureID(&q.Options[i].ID)
			q.Options[i].QuestionID = q.ID
		}
	}

	if err := s.repo.CreateWithQuestions(ctx, quiz, questions); err != nil {
		log.WithError(err).Error("Erro ao criar quiz com perguntas")
		return err
	}

	if err := s.index.Invalidate(ctx, quiz.ID); err != nil {
		log.WithError(err).Warn("Falha ao invalidar índice de perguntas")
	}

	log.WithField("quiz_id", quiz.ID.String()).Infof("Quiz criado com %d perguntas", len(questions))
	return nil
}
