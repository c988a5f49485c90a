package quiz

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	SingleChoice   QuestionType = "single_choice"
	RatingScale    QuestionType = "rating_scale"
	OpenEnded      QuestionType = "open_ended"
	YesNo          QuestionType = "yes_no"
)

var AllQuestionTypes = []QuestionType{
	MultipleChoice,
	SingleChoice,
	RatingScale,
	OpenEnded,
	YesNo,
}

func (t QuestionType) IsValid() bool {
	for _, v := range AllQuestionTypes {
		if t == v {
			return true
		}
	}
	return false
}

// HasOptions reports whether answers to this type reference Options.
func (t QuestionType) HasOptions() bool {
	return t == MultipleChoice || t == SingleChoice
}
