package analysis

import (
	"github.com/google/uuid"

	"github.com/saulo-duarte/quizlens/internal/answer"
	"github.com/saulo-duarte/quizlens/internal/quiz"
)

type TranscriptEntry struct {
	Question     string            `json:"question"`
	QuestionType quiz.QuestionType `json:"question_type"`
	Answer       any               `json:"answer"`
}

// BuildTranscript pairs every question with the user's answer, keeping the
// question order. Unanswered questions carry a nil answer.
func BuildTranscript(questions []*quiz.Question, answers []*answer.Answer) (entries []TranscriptEntry, answered int) {
	byQuestion := make(map[uuid.UUID]*answer.Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	entries = make([]TranscriptEntry, 0, len(questions))
	for _, q := range questions {
		entry := TranscriptEntry{Question: q.Text, QuestionType: q.Type}
		if a, ok := byQuestion[q.ID]; ok {
			entry.Answer = render(q, a)
			if entry.Answer != nil {
				answered++
			}
		}
		entries = append(entries, entry)
	}
	return entries, answered
}

func render(q *quiz.Question, a *answer.Answer) any {
	switch {
	case a.MultipleChoice != nil:
		labels := make([]string, 0, len(a.MultipleChoice.Selections))
		for _, s := range a.MultipleChoice.Selections {
			labels = append(labels, label(q, s.OptionID))
		}
		return labels
	case a.SingleChoice != nil:
		return label(q, a.SingleChoice.OptionID)
	case a.RatingScale != nil:
		return a.RatingScale.Rating
	case a.OpenEnded != nil:
		return a.OpenEnded.Response
	case a.YesNo != nil:
		return a.YesNo.Response
	}
	return nil
}

func label(q *quiz.Question, id uuid.UUID) string {
	if o, ok := q.OptionByID(id); ok {
		return o.Text
	}
	return id.String()
}
