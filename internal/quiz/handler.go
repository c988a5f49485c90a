package quiz

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func parseQuizID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "quizID"))
	if err != nil {
		return uuid.Nil, apperror.ValidationFields(map[string]string{"quiz_id": "must be a valid id"})
	}
	return id, nil
}

// ListQuizzes godoc
// @Summary  List active quizzes
// @Tags     quiz
// @Produce  json
// @Success  200  {array}  QuizResponse
// @Router   /quiz [get]
func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListActiveQuizzes(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary  Get an active quiz
// @Tags     quiz
// @Produce  json
// @Param    quiz_id  path      string  true  "quiz id"
// @Success  200      {object}  QuizResponse
// @Failure  404      {object}  apperror.Body
// @Router   /quiz/{quiz_id} [get]
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := parseQuizID(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	q, err := h.service.GetQuiz(r.Context(), quizID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, q)
}

// GetQuestion godoc
// @Summary  Get the question at a zero-based position in a quiz
// @Tags     quiz
// @Produce  json
// @Param    quiz_id         path      string  true   "quiz id"
// @Param    question_index  query     int     false  "zero-based index"  default(0)
// @Success  200             {object}  QuestionResponse
// @Failure  404             {object}  apperror.Body
// @Router   /quiz/questions/{quiz_id} [get]
func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, err := parseQuizID(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	index := 0
	if raw := r.URL.Query().Get("question_index"); raw != "" {
		index, err = strconv.Atoi(raw)
		if err != nil {
			apperror.Write(w, r, apperror.ValidationFields(map[string]string{
				"question_index": "must be an integer",
			}))
			return
		}
	}

	q, err := h.service.GetQuestion(r.Context(), quizID, index)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, q)
}
