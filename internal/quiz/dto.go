package quiz

import (
	"time"

	"github.com/google/uuid"
)

type OptionResponse struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

// QuestionResponse is one step of a quiz traversal.
type QuestionResponse struct {
	ID             uuid.UUID        `json:"id"`
	Text           string           `json:"text"`
	QuestionType   QuestionType     `json:"question_type"`
	Options        []OptionResponse `json:"options"`
	RatingMin      *int             `json:"rating_min"`
	RatingMax      *int             `json:"rating_max"`
	QuestionIndex  int              `json:"question_index"`
	TotalQuestions int              `json:"total_questions"`
	HasNext        bool             `json:"has_next"`
	HasPrevious    bool             `json:"has_previous"`
	NextIndex      *int             `json:"next_index"`
	PreviousIndex  *int             `json:"previous_index"`
}

type QuizResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category,omitempty"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

func toQuizResponse(q *Quiz, total int) *QuizResponse {
	resp := &QuizResponse{
		ID:             q.ID,
		Title:          q.Title,
		Description:    q.Description,
		TotalQuestions: total,
		CreatedAt:      q.CreatedAt,
	}
	if q.Category != nil {
		resp.Category = q.Category.Name
	}
	return resp
}

func toQuestionResponse(q *Question, index, total int) *QuestionResponse {
	resp := &QuestionResponse{
		ID:             q.ID,
		Text:           q.Text,
		QuestionType:   q.Type,
		QuestionIndex:  index,
		TotalQuestions: total,
		HasNext:        index < total-1,
		HasPrevious:    index > 0,
	}

	if q.Type.HasOptions() {
		resp.Options = make([]OptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			resp.Options = append(resp.Options, OptionResponse{ID: o.ID, Text: o.Text})
		}
	}
	if q.Type == RatingScale {
		resp.RatingMin = q.RatingMin
		resp.RatingMax = q.RatingMax
	}
	if resp.HasNext {
		next := index + 1
		resp.NextIndex = &next
	}
	if resp.HasPrevious {
		prev := index - 1
		resp.PreviousIndex = &prev
	}
	return resp
}
