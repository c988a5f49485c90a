package user

import (
	"net/mail"
	"strings"

	"github.com/saulo-duarte/quizlens/internal/apperror"
)

const MinPasswordLength = 8

type SignupInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type CompleteProfileInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ProfileInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type ResetPasswordInput struct {
	Token           string `json:"reset_token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// fieldErrors collects per-field validation messages.
type fieldErrors map[string]string

func (f fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "this field is required"
	}
}

func (f fieldErrors) email(field, value string) {
	if _, ok := f[field]; ok {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		f[field] = "enter a valid email address"
	}
}

func (f fieldErrors) password(password, confirm string) {
	if len(password) < MinPasswordLength {
		f["password"] = "Password is too short. Must have minimum of 8 characters!"
		return
	}
	if password != confirm {
		f["confirm_password"] = "Passwords provided did not match!"
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperror.ValidationFields(f)
}

func (in *SignupInput) validate() error {
	f := fieldErrors{}
	f.required("first_name", in.FirstName)
	f.required("last_name", in.LastName)
	f.required("username", in.Username)
	f.required("email", in.Email)
	f.email("email", in.Email)
	f.password(in.Password, in.ConfirmPassword)
	return f.err()
}

func (in *CompleteProfileInput) validate() error {
	f := fieldErrors{}
	f.required("email", in.Email)
	f.email("email", in.Email)
	f.password(in.Password, in.ConfirmPassword)
	return f.err()
}

func (in *ProfileInput) validate() error {
	f := fieldErrors{}
	f.required("first_name", in.FirstName)
	f.required("last_name", in.LastName)
	f.required("username", in.Username)
	f.required("email", in.Email)
	f.email("email", in.Email)
	return f.err()
}

func (in *UpdateInput) validate() error {
	f := fieldErrors{}
	if in.Email != "" {
		f.email("email", in.Email)
	}
	return f.err()
}

func (in *ResetPasswordInput) validate() error {
	f := fieldErrors{}
	f.required("reset_token", in.Token)
	f.password(in.Password, in.ConfirmPassword)
	return f.err()
}
