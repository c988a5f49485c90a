package user

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizlens/internal/mailer"
)

type UserContainer struct {
	Repo    UserRepository
	Service UserService
	Handler *Handler
}

func NewUserContainer(db *gorm.DB, m mailer.Mailer, opts Options) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, m, opts)
	handler := NewHandler(service)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
