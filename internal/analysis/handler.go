package analysis

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/config"
)

type Handler struct {
	service AnalysisService
}

func NewHandler(s AnalysisService) *Handler {
	return &Handler{service: s}
}

type AnalysisRequest struct {
	Username string `json:"username"`
	QuizID   string `json:"quiz_id"`
}

func parseTarget(username, rawQuizID string) (uuid.UUID, error) {
	fields := map[string]string{}
	if strings.TrimSpace(username) == "" {
		fields["username"] = "this field is required"
	}
	quizID, err := uuid.Parse(rawQuizID)
	if err != nil {
		fields["quiz_id"] = "must be a valid id"
	}
	if len(fields) > 0 {
		return uuid.Nil, apperror.ValidationFields(fields)
	}
	return quizID, nil
}

// GenerateAnalysis godoc
// @Summary  Generate and store the analysis of a user's answers
// @Tags     quiz
// @Accept   json
// @Produce  json
// @Param    body  body      AnalysisRequest  true  "target"
// @Success  200   {object}  AnalysisResult
// @Failure  400   {object}  apperror.Body
// @Failure  404   {object}  apperror.Body
// @Failure  409   {object}  apperror.Body
// @Failure  500   {object}  apperror.Body
// @Router   /quiz/quiz-ai-analysis [post]
func (h *Handler) GenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido para análise")
		apperror.Write(w, r, apperror.Validation("invalid request body"))
		return
	}

	quizID, err := parseTarget(req.Username, req.QuizID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	res, err := h.service.Generate(r.Context(), req.Username, quizID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

// FetchAnalysis godoc
// @Summary  Fetch the stored analysis
// @Tags     quiz
// @Produce  json
// @Param    username  query     string  true  "username"
// @Param    quiz_id   query     string  true  "quiz id"
// @Success  200       {object}  AnalysisResult
// @Failure  400       {object}  apperror.Body
// @Failure  404       {object}  apperror.Body
// @Router   /quiz/fetch-quiz-analysis [get]
func (h *Handler) FetchAnalysis(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	quizID, err := parseTarget(username, r.URL.Query().Get("quiz_id"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	res, err := h.service.Fetch(r.Context(), username, quizID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}
