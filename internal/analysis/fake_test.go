package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quizlens/internal/answer"
	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/quiz"
	"github.com/saulo-duarte/quizlens/internal/user"
	util "github.com/saulo-duarte/quizlens/internal/utils"
)

type fakeRepo struct {
	mu      sync.Mutex
	rows    []*AnalysisResult
	failErr error
}

func (f *fakeRepo) Replace(ctx context.Context, r *AnalysisResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.UserID != r.UserID || row.QuizID != r.QuizID {
			kept = append(kept, row)
		}
	}
	util.EnsureID(&r.ID)
	r.CreatedAt = time.Now()
	f.rows = append(kept, r)
	return nil
}

func (f *fakeRepo) Latest(ctx context.Context, userID, quizID uuid.UUID) (*AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserID == userID && f.rows[i].QuizID == quizID {
			return f.rows[i], nil
		}
	}
	return nil, ErrAnalysisNotFound
}

type fakeProvider struct {
	responses []string
	err       error
	prompts   []string
}

func (p *fakeProvider) Model() string { return "fake-model" }

func (p *fakeProvider) Generate(ctx context.Context, system, user string) (string, error) {
	p.prompts = append(p.prompts, user)
	if p.err != nil {
		return "", p.err
	}
	out := p.responses[0]
	if len(p.responses) > 1 {
		p.responses = p.responses[1:]
	}
	return out, nil
}

type fakeUsers map[string]*user.User

func (f fakeUsers) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if u, ok := f[username]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("user not found")
}

type fakeCatalog map[uuid.UUID][]*quiz.Question

func (f fakeCatalog) ListQuestions(ctx context.Context, quizID uuid.UUID) ([]*quiz.Question, error) {
	if qs, ok := f[quizID]; ok {
		return qs, nil
	}
	return nil, apperror.NotFound("quiz not found")
}

type fakeAnswers []*answer.Answer

func (f fakeAnswers) ListForUser(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) ([]*answer.Answer, error) {
	var out []*answer.Answer
	for _, a := range f {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func intPtr(v int) *int { return &v }

// sampleQuiz returns a quiz with one question of each type and a user who
// answered all but the open ended one.
func sampleQuiz() (quizID uuid.UUID, questions []*quiz.Question, u *user.User, answers fakeAnswers) {
	quizID = uuid.New()
	u = &user.User{ID: uuid.New(), Username: "ana", FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"}

	mc := &quiz.Question{ID: util.NewID(), Text: "O que mais pesa?", Type: quiz.MultipleChoice}
	mc.Options = []quiz.Option{{ID: uuid.New(), Text: "Comunicação"}, {ID: uuid.New(), Text: "Confiança"}}
	sc := &quiz.Question{ID: util.NewID(), Text: "Há quanto tempo?", Type: quiz.SingleChoice}
	sc.Options = []quiz.Option{{ID: uuid.New(), Text: "Menos de 5 anos"}, {ID: uuid.New(), Text: "Mais de 5 anos"}}
	rs := &quiz.Question{ID: util.NewID(), Text: "Satisfação", Type: quiz.RatingScale, RatingMin: intPtr(1), RatingMax: intPtr(5)}
	oe := &quiz.Question{ID: util.NewID(), Text: "Conte mais", Type: quiz.OpenEnded}
	yn := &quiz.Question{ID: util.NewID(), Text: "Já fizeram terapia?", Type: quiz.YesNo}
	questions = []*quiz.Question{mc, sc, rs, oe, yn}

	answers = fakeAnswers{
		{QuestionID: mc.ID, UserID: u.ID, Kind: quiz.MultipleChoice, MultipleChoice: &answer.MultipleChoiceAnswer{
			Selections: []answer.MultipleChoiceSelection{{OptionID: mc.Options[0].ID}, {OptionID: mc.Options[1].ID}},
		}},
		{QuestionID: sc.ID, UserID: u.ID, Kind: quiz.SingleChoice, SingleChoice: &answer.SingleChoiceAnswer{OptionID: sc.Options[1].ID}},
		{QuestionID: rs.ID, UserID: u.ID, Kind: quiz.RatingScale, RatingScale: &answer.RatingScaleAnswer{Rating: 2}},
		{QuestionID: yn.ID, UserID: u.ID, Kind: quiz.YesNo, YesNo: &answer.YesNoAnswer{Response: false}},
	}
	return quizID, questions, u, answers
}

const validAnalysis = `{
  "user_profile": {"first_name": "Ana", "last_name": "Silva", "email": "ana@example.com", "username": "ana"},
  "challenge_summary": "%s",
  "professional_feedback": "Feedback",
  "next_steps": {"resources": {
    "books": [{"title": "Livro", "description": "d", "author": "a", "url": "https://example.com/livro"}],
    "blogs_and_articles": []
  }}
}`
