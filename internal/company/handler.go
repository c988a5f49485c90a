package company

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/config"
)

type Handler struct {
	service CompanyService
}

func NewHandler(s CompanyService) *Handler {
	return &Handler{service: s}
}

// ContactUs godoc
// @Summary  Send a message to the company
// @Tags     company
// @Accept   json
// @Produce  json
// @Param    body  body      ContactInput  true  "contact form"
// @Success  200   {object}  MessageResponse
// @Failure  400   {object}  apperror.Body
// @Router   /company/contact-us [post]
func (h *Handler) ContactUs(w http.ResponseWriter, r *http.Request) {
	var in ContactInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido para contato")
		apperror.Write(w, r, apperror.Validation("invalid request body"))
		return
	}

	if err := h.service.ContactUs(r.Context(), in); err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, MessageResponse{Message: "Message submitted successfully"})
}
