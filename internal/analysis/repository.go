package analysis

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAnalysisNotFound  = errors.New("analysis not found")
	ErrDuplicateAnalysis = errors.New("analysis already exists for this user and quiz")
)

type AnalysisRepository interface {
	// Replace removes every stored analysis for the pair and inserts r in the same transaction.
	Replace(ctx context.Context, r *AnalysisResult) error
	Latest(ctx context.Context, userID, quizID uuid.UUID) (*AnalysisResult, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Replace(ctx context.Context, res *AnalysisResult) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND quiz_id = ?", res.UserID, res.QuizID).
			Delete(&AnalysisResult{}).Error; err != nil {
			return err
		}
		if err := tx.Omit("User", "Quiz").Create(res).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateAnalysis
			}
			return err
		}
		return nil
	})
}

func (r *analysisRepository) Latest(ctx context.Context, userID, quizID uuid.UUID) (*AnalysisResult, error) {
	var res AnalysisResult
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC").
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}
