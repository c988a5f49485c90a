package mailer

import (
	"context"
	"fmt"
	"sync"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizlens/internal/config"
)

type Message struct {
	To      []string
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns a Resend-backed mailer, or a log-only mailer when apiKey is empty.
func New(apiKey, from, replyTo string) Mailer {
	if apiKey == "" {
		config.Logger.Warn("RESEND_API_KEY não configurada; e-mails serão apenas registrados em log")
		return logMailer{}
	}
	return &resendMailer{
		client:  resend.NewClient(apiKey),
		from:    from,
		replyTo: replyTo,
	}
}

type resendMailer struct {
	client  *resend.Client
	from    string
	replyTo string
}

func (m *resendMailer) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
	}
	if m.replyTo != "" {
		params.ReplyTo = m.replyTo
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"email_id": sent.Id,
		"to":       msg.To,
	}).Info("E-mail enviado via Resend")
	return nil
}

type logMailer struct{}

func (logMailer) Send(ctx context.Context, msg Message) error {
	config.WithContext(ctx).WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("E-mail (somente log)")
	return nil
}

// SendQuietly sends msg and only logs a failure; callers never see mail errors.
func SendQuietly(ctx context.Context, m Mailer, msg Message) {
	if err := m.Send(ctx, msg); err != nil {
		config.WithContext(ctx).WithError(err).WithField("to", msg.To).Warn("Falha ao enviar e-mail")
	}
}

// Recorder keeps messages in memory. Used by tests.
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
	Err      error
}

func (r *Recorder) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Messages = append(r.Messages, msg)
	return nil
}

func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Messages) == 0 {
		return Message{}, false
	}
	return r.Messages[len(r.Messages)-1], true
}
