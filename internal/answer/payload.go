package answer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/quiz"
)

// OptionSelection accepts either a single option id or an array of ids.
type OptionSelection []uuid.UUID

func (s *OptionSelection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var ids []uuid.UUID
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		*s = ids
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*s = OptionSelection{id}
	return nil
}

// Payload holds the type-specific part of a submission. A nil field is absent.
type Payload struct {
	SelectedOption *OptionSelection `json:"selected_option,omitempty"`
	Rating         *int             `json:"rating,omitempty"`
	Text           *string          `json:"text,omitempty"`
	Choice         *bool            `json:"choice,omitempty"`
}

// fieldFor names the payload field each question type consumes.
var fieldFor = map[quiz.QuestionType]string{
	quiz.MultipleChoice: "selected_option",
	quiz.SingleChoice:   "selected_option",
	quiz.RatingScale:    "rating",
	quiz.OpenEnded:      "text",
	quiz.YesNo:          "choice",
}

var payloadFields = []string{"selected_option", "rating", "text", "choice"}

func (p Payload) present() map[string]bool {
	return map[string]bool{
		"selected_option": p.SelectedOption != nil,
		"rating":          p.Rating != nil,
		"text":            p.Text != nil,
		"choice":          p.Choice != nil,
	}
}

func mismatch(field, detail string) error {
	return apperror.ValidationFields(map[string]string{field: detail})
}

// Build validates p against q and returns the Answer to store for userID.
func Build(q *quiz.Question, userID uuid.UUID, p Payload) (*Answer, error) {
	want, ok := fieldFor[q.Type]
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("unsupported question type %q", q.Type))
	}

	present := p.present()
	for _, field := range payloadFields {
		if present[field] && field != want {
			return nil, mismatch(field, fmt.Sprintf("not accepted for %s questions", q.Type))
		}
	}
	if !present[want] {
		return nil, mismatch(want, fmt.Sprintf("required for %s questions", q.Type))
	}

	a := &Answer{QuestionID: q.ID, UserID: userID, Kind: q.Type}

	switch q.Type {
	case quiz.MultipleChoice:
		ids, err := ownedOptions(q, *p.SelectedOption)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, mismatch("selected_option", "select at least one option")
		}
		mc := &MultipleChoiceAnswer{Selections: make([]MultipleChoiceSelection, 0, len(ids))}
		for _, id := range ids {
			mc.Selections = append(mc.Selections, MultipleChoiceSelection{OptionID: id})
		}
		a.MultipleChoice = mc

	case quiz.SingleChoice:
		ids, err := ownedOptions(q, *p.SelectedOption)
		if err != nil {
			return nil, err
		}
		if len(ids) != 1 {
			return nil, mismatch("selected_option", "single choice questions take exactly one option")
		}
		a.SingleChoice = &SingleChoiceAnswer{OptionID: ids[0]}

	case quiz.RatingScale:
		if !q.InRange(*p.Rating) {
			return nil, mismatch("rating", fmt.Sprintf("must be between %d and %d", deref(q.RatingMin), deref(q.RatingMax)))
		}
		a.RatingScale = &RatingScaleAnswer{Rating: *p.Rating}

	case quiz.OpenEnded:
		text := strings.TrimSpace(*p.Text)
		if text == "" {
			return nil, mismatch("text", "must not be empty")
		}
		a.OpenEnded = &OpenEndedAnswer{Response: text}

	case quiz.YesNo:
		a.YesNo = &YesNoAnswer{Response: *p.Choice}
	}

	return a, nil
}

// ownedOptions collapses duplicates and rejects options of other questions.
func ownedOptions(q *quiz.Question, selected OptionSelection) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool, len(selected))
	ids := make([]uuid.UUID, 0, len(selected))
	for _, id := range selected {
		if seen[id] {
			continue
		}
		if _, ok := q.OptionByID(id); !ok {
			return nil, mismatch("selected_option", fmt.Sprintf("option %s does not belong to this question", id))
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
