package user

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido")
		return apperror.Validation("invalid request body")
	}
	return nil
}

// Signup godoc
// @Summary  Begin account creation for a new user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      SignupInput  true  "signup data"
// @Success  200   {object}  MessageResponse
// @Failure  400   {object}  apperror.Body
// @Router   /users/new-user-signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var in SignupInput
	if err := decode(r, &in); err != nil {
		apperror.Write(w, r, err)
		return
	}

	resp, err := h.service.Signup(r.Context(), in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

// CompleteProfile godoc
// @Summary  Set a password on a profile created at quiz start
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      CompleteProfileInput  true  "profile email and password"
// @Success  200   {object}  MessageResponse
// @Failure  400   {object}  apperror.Body
// @Router   /users/complete-user-profile [post]
func (h *Handler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	var in CompleteProfileInput
	if err := decode(r, &in); err != nil {
		apperror.Write(w, r, err)
		return
	}

	resp, err := h.service.CompleteProfile(r.Context(), in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

// CreateFromToken godoc
// @Summary  Create a user after email verification
// @Tags     users
// @Param    verification_token  query  string  true  "token from the verification email"
// @Success  302
// @Failure  401  {object}  apperror.Body
// @Failure  403  {object}  apperror.Body
// @Router   /users/create-user [get]
func (h *Handler) CreateFromToken(w http.ResponseWriter, r *http.Request) {
	target, err := h.service.CreateFromToken(r.Context(), r.URL.Query().Get("verification_token"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// ActivateProfile godoc
// @Summary  Activate an existing profile after email verification
// @Tags     users
// @Param    verification_token  query  string  true  "token from the verification email"
// @Success  302
// @Failure  401  {object}  apperror.Body
// @Failure  404  {object}  apperror.Body
// @Router   /users/create-user-2 [get]
func (h *Handler) ActivateProfile(w http.ResponseWriter, r *http.Request) {
	target, err := h.service.ActivateProfile(r.Context(), r.URL.Query().Get("verification_token"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// CreateProfile godoc
// @Summary  Create a passwordless profile at the beginning of a quiz
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      ProfileInput  true  "profile"
// @Success  200   {object}  User
// @Failure  409   {object}  apperror.Body
// @Router   /users/create-user-profile [post]
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var in ProfileInput
	if err := decode(r, &in); err != nil {
		apperror.Write(w, r, err)
		return
	}

	u, err := h.service.CreateProfile(r.Context(), in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, u)
}

// Login godoc
// @Summary  Authenticate a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      LoginInput  true  "credentials"
// @Success  200   {object}  LoginResponse
// @Failure  401   {object}  apperror.Body
// @Router   /users/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if err := decode(r, &in); err != nil {
		apperror.Write(w, r, err)
		return
	}

	resp, err := h.service.Login(r.Context(), in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

// GetUser godoc
// @Summary   Retrieve the authenticated user
// @Tags      users
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  User
// @Failure   401  {object}  apperror.Body
// @Router    /users/me [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Me(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, u)
}

// UpdateUser godoc
// @Summary   Update the authenticated user
// @Tags      users
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      UpdateInput  true  "fields to change"
// @Success   200   {object}  User
// @Failure   409   {object}  apperror.Body
// @Router    /users/me [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := decode(r, &in); err != nil {
		apperror.Write(w, r, err)
		return
	}

	u, err := h.service.UpdateMe(r.Context(), in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, u)
}

// RequestPasswordReset godoc
// @Summary  Email a password reset link
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      PasswordResetRequest  true  "account email"
// @Success  200   {object}  MessageResponse
// @Failure  400   {object}  apperror.Body
// @Router   /users/password-reset [post]
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var in PasswordResetRequest
	if err := decode(r, &in); err != nil {
		apperror.Write(w, r, err)
		return
	}

	resp, err := h.service.RequestPasswordReset(r.Context(), in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

// ResetPassword godoc
// @Summary  Set a new password using a reset token
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      ResetPasswordInput  true  "reset token and new password"
// @Success  200   {object}  MessageResponse
// @Failure  403   {object}  apperror.Body
// @Router   /users/update-password [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in ResetPasswordInput
	if err := decode(r, &in); err != nil {
		apperror.Write(w, r, err)
		return
	}

	resp, err := h.service.ResetPassword(r.Context(), in)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}
