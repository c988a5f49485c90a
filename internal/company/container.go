package company

import "github.com/saulo-duarte/quizlens/internal/mailer"

type CompanyContainer struct {
	Service CompanyService
	Handler *Handler
}

func NewCompanyContainer(m mailer.Mailer, recipients []string) *CompanyContainer {
	service := NewService(m, recipients)
	handler := NewHandler(service)

	return &CompanyContainer{
		Service: service,
		Handler: handler,
	}
}
