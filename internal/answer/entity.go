package answer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizlens/internal/quiz"
	"github.com/saulo-duarte/quizlens/internal/user"
	util "github.com/saulo-duarte/quizlens/internal/utils"
)

// Answer is one user's response to one question. Exactly one satellite is set
// and it matches Kind.
type Answer struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:unique_user_answer,priority:1" json:"question_id"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:unique_user_answer,priority:2;index" json:"user_id"`
	Kind       quiz.QuestionType `gorm:"type:varchar(20);not null" json:"kind"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`

	Question *quiz.Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	User     *user.User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	MultipleChoice *MultipleChoiceAnswer `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"multiple_choice,omitempty"`
	SingleChoice   *SingleChoiceAnswer   `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"single_choice,omitempty"`
	RatingScale    *RatingScaleAnswer    `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"rating_scale,omitempty"`
	OpenEnded      *OpenEndedAnswer      `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"open_ended,omitempty"`
	YesNo          *YesNoAnswer          `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"yes_no,omitempty"`
}

type MultipleChoiceAnswer struct {
	ID         uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
	AnswerID   uuid.UUID                 `gorm:"type:uuid;not null;uniqueIndex" json:"answer_id"`
	Selections []MultipleChoiceSelection `gorm:"foreignKey:MultipleChoiceAnswerID;constraint:OnDelete:CASCADE" json:"selections"`
}

type MultipleChoiceSelection struct {
	ID                     uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	MultipleChoiceAnswerID uuid.UUID    `gorm:"type:uuid;not null;index" json:"-"`
	OptionID               uuid.UUID    `gorm:"type:uuid;not null;index" json:"option_id"`
	Option                 *quiz.Option `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE" json:"-"`
}

type SingleChoiceAnswer struct {
	ID       uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	AnswerID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex" json:"answer_id"`
	OptionID uuid.UUID    `gorm:"type:uuid;not null;index" json:"option_id"`
	Option   *quiz.Option `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE" json:"-"`
}

type RatingScaleAnswer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AnswerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"answer_id"`
	Rating   int       `gorm:"not null" json:"rating"`
}

type OpenEndedAnswer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AnswerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"answer_id"`
	Response string    `gorm:"type:text;not null" json:"response"`
}

type YesNoAnswer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AnswerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"answer_id"`
	Response bool      `gorm:"not null" json:"response"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&a.ID)
	return a.CheckVariant()
}

func (m *MultipleChoiceAnswer) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&m.ID)
	return nil
}

func (s *MultipleChoiceSelection) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&s.ID)
	return nil
}

func (s *SingleChoiceAnswer) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&s.ID)
	return nil
}

func (r *RatingScaleAnswer) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&r.ID)
	return nil
}

func (o *OpenEndedAnswer) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&o.ID)
	return nil
}

func (y *YesNoAnswer) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&y.ID)
	return nil
}

var ErrVariantMismatch = errors.New("answer satellite does not match its kind")

// Variant reports which satellite is populated. ok is false unless exactly one is set.
func (a *Answer) Variant() (kind quiz.QuestionType, ok bool) {
	set := 0
	if a.MultipleChoice != nil {
		kind, set = quiz.MultipleChoice, set+1
	}
	if a.SingleChoice != nil {
		kind, set = quiz.SingleChoice, set+1
	}
	if a.RatingScale != nil {
		kind, set = quiz.RatingScale, set+1
	}
	if a.OpenEnded != nil {
		kind, set = quiz.OpenEnded, set+1
	}
	if a.YesNo != nil {
		kind, set = quiz.YesNo, set+1
	}
	return kind, set == 1
}

func (a *Answer) CheckVariant() error {
	kind, ok := a.Variant()
	if !ok || kind != a.Kind {
		return fmt.Errorf("%w: kind=%s", ErrVariantMismatch, a.Kind)
	}
	return nil
}

// SelectedOptionIDs lists the options referenced by a choice answer.
func (a *Answer) SelectedOptionIDs() []uuid.UUID {
	switch {
	case a.MultipleChoice != nil:
		ids := make([]uuid.UUID, 0, len(a.MultipleChoice.Selections))
		for _, s := range a.MultipleChoice.Selections {
			ids = append(ids, s.OptionID)
		}
		return ids
	case a.SingleChoice != nil:
		return []uuid.UUID{a.SingleChoice.OptionID}
	default:
		return nil
	}
}
