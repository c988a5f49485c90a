package answer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAnswerNotFound  = errors.New("answer not found")
	ErrDuplicateAnswer = errors.New("answer already exists for this question and user")
)

type AnswerRepository interface {
	// Replace deletes any prior answer for (question, user) and stores a, atomically.
	Replace(ctx context.Context, a *Answer) error
	GetByQuestionAndUser(ctx context.Context, questionID, userID uuid.UUID) (*Answer, error)
	ListByUserAndQuestions(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) ([]*Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func withSatellites(db *gorm.DB) *gorm.DB {
	return db.
		Preload("MultipleChoice.Selections").
		Preload("SingleChoice").
		Preload("RatingScale").
		Preload("OpenEnded").
		Preload("YesNo")
}

func (r *answerRepository) Replace(ctx context.Context, a *Answer) error {
	if err := a.CheckVariant(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("question_id = ? AND user_id = ?", a.QuestionID, a.UserID).
			Delete(&Answer{}).Error; err != nil {
			return err
		}

		if err := tx.Omit("Question", "User").Create(a).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateAnswer
			}
			return err
		}
		return nil
	})
}

func (r *answerRepository) GetByQuestionAndUser(ctx context.Context, questionID, userID uuid.UUID) (*Answer, error) {
	var a Answer
	err := withSatellites(r.db.WithContext(ctx)).
		Where("question_id = ? AND user_id = ?", questionID, userID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAnswerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *answerRepository) ListByUserAndQuestions(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) ([]*Answer, error) {
	if len(questionIDs) == 0 {
		return []*Answer{}, nil
	}
	var answers []*Answer
	if err := withSatellites(r.db.WithContext(ctx)).
		Where("user_id = ? AND question_id IN ?", userID, questionIDs).
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}
