package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	util "github.com/saulo-duarte/quizlens/internal/utils"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Quiz struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool       `gorm:"not null;index" json:"is_active"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Category  *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Text      string       `gorm:"type:text;not null" json:"text"`
	Type      QuestionType `gorm:"column:question_type;type:varchar(20);not null" json:"question_type"`
	RatingMin *int         `json:"rating_min,omitempty"`
	RatingMax *int         `json:"rating_max,omitempty"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`

	Options []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&c.ID)
	return nil
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&q.ID)
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&q.ID)
	return q.Validate()
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&o.ID)
	return nil
}

var ErrInvalidQuestion = errors.New("invalid question")

// Validate checks the catalog rules a question must satisfy before it is stored.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidQuestion)
	}
	if !q.Type.IsValid() {
		return fmt.Errorf("%w: unknown question type %q", ErrInvalidQuestion, q.Type)
	}

	if q.Type == RatingScale {
		if q.RatingMin == nil || q.RatingMax == nil {
			return fmt.Errorf("%w: rating_scale requires rating_min and rating_max", ErrInvalidQuestion)
		}
		if *q.RatingMin > *q.RatingMax {
			return fmt.Errorf("%w: rating_min must not exceed rating_max", ErrInvalidQuestion)
		}
	} else if q.RatingMin != nil || q.RatingMax != nil {
		return fmt.Errorf("%w: rating bounds are only allowed on rating_scale", ErrInvalidQuestion)
	}

	if q.Type.HasOptions() && len(q.Options) == 0 {
		return fmt.Errorf("%w: %s requires at least one option", ErrInvalidQuestion, q.Type)
	}
	if !q.Type.HasOptions() && len(q.Options) > 0 {
		return fmt.Errorf("%w: %s does not take options", ErrInvalidQuestion, q.Type)
	}
	return nil
}

func (q *Question) OptionByID(id uuid.UUID) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i], true
		}
	}
	return nil, false
}

// InRange reports whether rating lies within the question's declared bounds.
func (q *Question) InRange(rating int) bool {
	if q.RatingMin == nil || q.RatingMax == nil {
		return false
	}
	return rating >= *q.RatingMin && rating <= *q.RatingMax
}
