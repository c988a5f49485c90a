package answer

import "gorm.io/gorm"

type AnswerContainer struct {
	Repo    AnswerRepository
	Service AnswerService
	Handler *Handler
}

func NewAnswerContainer(db *gorm.DB, users UserLookup, questions QuestionLookup) *AnswerContainer {
	repo := NewRepository(db)
	service := NewService(repo, users, questions)
	handler := NewHandler(service)

	return &AnswerContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
