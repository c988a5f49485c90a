package company

import (
	"net/mail"
	"strings"

	"github.com/saulo-duarte/quizlens/internal/apperror"
)

type ContactInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (in *ContactInput) validate() error {
	fields := map[string]string{}
	for name, value := range map[string]string{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
		"message":    in.Message,
	} {
		if strings.TrimSpace(value) == "" {
			fields[name] = "this field is required"
		}
	}
	if _, ok := fields["email"]; !ok {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			fields["email"] = "enter a valid email address"
		}
	}
	if len(fields) > 0 {
		return apperror.ValidationFields(fields)
	}
	return nil
}
