package quiz

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type QuizContainer struct {
	Repo    QuizRepository
	Index   QuestionIndex
	Service QuizService
	Handler *Handler
}

// NewQuizContainer wires the catalog. A nil redis client serves the question index from the database.
func NewQuizContainer(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *QuizContainer {
	repo := NewRepository(db)

	var index QuestionIndex = NewDBQuestionIndex(repo)
	if rdb != nil {
		index = NewRedisQuestionIndex(rdb, repo, ttl)
	}

	service := NewService(repo, index)
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:    repo,
		Index:   index,
		Service: service,
		Handler: handler,
	}
}
