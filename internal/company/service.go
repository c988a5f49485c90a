package company

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/quizlens/internal/config"
	"github.com/saulo-duarte/quizlens/internal/mailer"
)

const contactSubject = "Contact From Client"

type CompanyService interface {
	ContactUs(ctx context.Context, in ContactInput) error
}

type companyService struct {
	mail       mailer.Mailer
	recipients []string
}

func NewService(m mailer.Mailer, recipients []string) CompanyService {
	return &companyService{mail: m, recipients: recipients}
}

// ContactUs forwards the form to the contact recipients. Delivery failures
// are logged and do not fail the request.
func (s *companyService) ContactUs(ctx context.Context, in ContactInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	log := config.WithContext(ctx).WithField("email", in.Email)
	if len(s.recipients) == 0 {
		log.Warn("Nenhum destinatário de contato configurado; mensagem descartada")
		return nil
	}

	mailer.SendQuietly(ctx, s.mail, mailer.Message{
		To:      s.recipients,
		Subject: contactSubject,
		Text: fmt.Sprintf(
			"A client has made contact.\n\nName: %s %s\nEmail: %s\n\nMessage:\n%s\n\nMake sure the client is responded to.",
			in.FirstName, in.LastName, in.Email, in.Message,
		),
	})
	log.Info("Mensagem de contato encaminhada")
	return nil
}
