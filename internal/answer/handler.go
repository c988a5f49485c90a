package answer

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/config"
)

type Handler struct {
	service AnswerService
}

func NewHandler(s AnswerService) *Handler {
	return &Handler{service: s}
}

type SubmitRequest struct {
	Username   string `json:"username"`
	QuestionID string `json:"question_id"`
	Payload
}

type SubmitResponse struct {
	Message string `json:"message"`
}

// SubmitAnswer godoc
// @Summary  Submit or replace the answer to a question
// @Tags     quiz
// @Accept   json
// @Produce  json
// @Param    body  body      SubmitRequest  true  "answer"
// @Success  200   {object}  SubmitResponse
// @Failure  400   {object}  apperror.Body
// @Failure  404   {object}  apperror.Body
// @Failure  409   {object}  apperror.Body
// @Router   /quiz/submit-answer [post]
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Corpo da requisição inválido para submeter resposta")
		apperror.Write(w, r, apperror.Validation("invalid request body"))
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Username) == "" {
		fields["username"] = "this field is required"
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		fields["question_id"] = "must be a valid id"
	}
	if len(fields) > 0 {
		apperror.Write(w, r, apperror.ValidationFields(fields))
		return
	}

	if _, err := h.service.Submit(r.Context(), SubmitInput{
		Username:   req.Username,
		QuestionID: questionID,
		Payload:    req.Payload,
	}); err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, SubmitResponse{Message: "Answer submitted successfully"})
}
