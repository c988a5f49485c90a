package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/saulo-duarte/quizlens/internal/analysis"
	"github.com/saulo-duarte/quizlens/internal/answer"
	"github.com/saulo-duarte/quizlens/internal/config"
	"github.com/saulo-duarte/quizlens/internal/quiz"
	"github.com/saulo-duarte/quizlens/internal/user"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&quiz.Category{},
		&quiz.Quiz{},
		&quiz.Question{},
		&quiz.Option{},
		&answer.Answer{},
		&answer.MultipleChoiceAnswer{},
		&answer.MultipleChoiceSelection{},
		&answer.SingleChoiceAnswer{},
		&answer.RatingScaleAnswer{},
		&answer.OpenEndedAnswer{},
		&answer.YesNoAnswer{},
		&analysis.AnalysisResult{},
	}
}

func Run(ctx context.Context, db *gorm.DB) error {
	log := config.WithContext(ctx)
	for _, m := range Models() {
		if err := db.WithContext(ctx).AutoMigrate(m); err != nil {
			return fmt.Errorf("auto migrate %T: %w", m, err)
		}
	}
	log.Infof("Migrações aplicadas (%d tabelas)", len(Models()))
	return nil
}
