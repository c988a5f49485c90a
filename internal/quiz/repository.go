package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound = errors.New("record not found")
)

type QuizRepository interface {
	CreateWithQuestions(ctx context.Context, q *Quiz, questions []*Question) error
	FindOrCreateCategory(ctx context.Context, name, description string) (*Category, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*Quiz, error)
	ListActive(ctx context.Context) ([]*Quiz, error)
	CountQuestions(ctx context.Context, quizID uuid.UUID) (int64, error)
	ListQuestionIDs(ctx context.Context, quizID uuid.UUID) ([]uuid.UUID, error)
	ListQuestions(ctx context.Context, quizID uuid.UUID) ([]*Question, error)
	GetQuestion(ctx context.Context, id uuid.UUID) (*Question, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order("options.id ASC")
}

func (r *quizRepository) CreateWithQuestions(ctx context.Context, q *Quiz, questions []*Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions", "Category").Create(q).Error; err != nil {
			return err
		}

		for _, question := range questions {
			question.QuizID = q.ID
			if err := tx.Create(question).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *quizRepository) FindOrCreateCategory(ctx context.Context, name, description string) (*Category, error) {
	c := Category{Name: name, Description: description}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&c).Error
	if err != nil {
		return nil, err
	}

	var stored Category
	if err := r.db.WithContext(ctx).First(&stored, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *quizRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	var q Quiz
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND is_active = ?", id, true).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) ListActive(ctx context.Context) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) CountQuestions(ctx context.Context, quizID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (r *quizRepository) ListQuestionIDs(ctx context.Context, quizID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&Question{}).
		Where("quiz_id = ?", quizID).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *quizRepository) ListQuestions(ctx context.Context, quizID uuid.UUID) ([]*Question, error) {
	var questions []*Question
	if err := r.db.WithContext(ctx).
		Preload("Options", orderedOptions).
		Where("quiz_id = ?", quizID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) GetQuestion(ctx context.Context, id uuid.UUID) (*Question, error) {
	var q Question
	err := r.db.WithContext(ctx).Preload("Options", orderedOptions).First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}
