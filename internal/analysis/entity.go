package analysis

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizlens/internal/quiz"
	"github.com/saulo-duarte/quizlens/internal/user"
	util "github.com/saulo-duarte/quizlens/internal/utils"
)

// AnalysisResult caches the generated analysis for one (user, quiz) pair.
type AnalysisResult struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_user;uniqueIndex:unique_user_quiz_analysis,priority:1" json:"user_id"`
	QuizID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:unique_user_quiz_analysis,priority:2" json:"quiz_id"`
	Analysis  datatypes.JSON `gorm:"type:jsonb;not null" json:"analysis"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Quiz *quiz.Quiz `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
}

func (a *AnalysisResult) BeforeCreate(tx *gorm.DB) error {
	util.EnsureID(&a.ID)
	return nil
}

type UserProfile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	URL         string `json:"url"`
}

type Resources struct {
	Books            []Resource `json:"books"`
	BlogsAndArticles []Resource `json:"blogs_and_articles"`
}

type NextSteps struct {
	Resources *Resources `json:"resources"`
}

// Analysis is the structured document returned by the provider.
type Analysis struct {
	UserProfile          *UserProfile `json:"user_profile"`
	ChallengeSummary     string       `json:"challenge_summary"`
	ProfessionalFeedback string       `json:"professional_feedback"`
	NextSteps            *NextSteps   `json:"next_steps"`
}

type Metadata struct {
	Model         string    `json:"model"`
	QuestionCount int       `json:"question_count"`
	AnsweredCount int       `json:"answered_count"`
	GeneratedAt   time.Time `json:"generated_at"`
}
