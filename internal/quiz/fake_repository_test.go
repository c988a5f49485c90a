package quiz_test

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quizlens/internal/quiz"
	util "github.com/saulo-duarte/quizlens/internal/utils"
)

type fakeRepo struct {
	mu         sync.Mutex
	quizzes    map[uuid.UUID]*quiz.Quiz
	questions  map[uuid.UUID]*quiz.Question
	categories map[string]*quiz.Category
	idCalls    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		quizzes:    map[uuid.UUID]*quiz.Quiz{},
		questions:  map[uuid.UUID]*quiz.Question{},
		categories: map[string]*quiz.Category{},
	}
}

func (f *fakeRepo) CreateWithQuestions(_ context.Context, q *quiz.Quiz, questions []*quiz.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quizzes[q.ID] = q
	for _, question := range questions {
		f.questions[question.ID] = question
	}
	return nil
}

func (f *fakeRepo) FindOrCreateCategory(_ context.Context, name, description string) (*quiz.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.categories[name]; ok {
		return c, nil
	}
	c := &quiz.Category{ID: util.NewID(), Name: name, Description: description}
	f.categories[name] = c
	return c, nil
}

func (f *fakeRepo) GetActiveByID(_ context.Context, id uuid.UUID) (*quiz.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quizzes[id]
	if !ok || !q.IsActive {
		return nil, quiz.ErrNotFound
	}
	return q, nil
}

func (f *fakeRepo) ListActive(context.Context) ([]*quiz.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*quiz.Quiz
	for _, q := range f.quizzes {
		if q.IsActive {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakeRepo) sortedQuestions(quizID uuid.UUID) []*quiz.Question {
	var out []*quiz.Question
	for _, q := range f.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (f *fakeRepo) CountQuestions(_ context.Context, quizID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.sortedQuestions(quizID))), nil
}

func (f *fakeRepo) ListQuestionIDs(_ context.Context, quizID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idCalls++
	var ids []uuid.UUID
	for _, q := range f.sortedQuestions(quizID) {
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (f *fakeRepo) ListQuestions(_ context.Context, quizID uuid.UUID) ([]*quiz.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedQuestions(quizID), nil
}

func (f *fakeRepo) GetQuestion(_ context.Context, id uuid.UUID) (*quiz.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.questions[id]
	if !ok {
		return nil, quiz.ErrNotFound
	}
	return q, nil
}

func (f *fakeRepo) deleteQuestion(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.questions, id)
}

func intPtr(v int) *int { return &v }

// seedQuiz creates an active three-question quiz: single choice, rating 1..5, yes/no.
func seedQuiz(svc quiz.QuizService) (*quiz.Quiz, []*quiz.Question, error) {
	q := &quiz.Quiz{Title: "Comunicação no casal", IsActive: true, Category: &quiz.Category{Name: "Relacionamento"}}
	questions := []*quiz.Question{
		{
			Text: "Com que frequência vocês conversam?",
			Type: quiz.SingleChoice,
			Options: []quiz.Option{
				{Text: "Todo dia"},
				{Text: "Às vezes"},
				{Text: "Raramente"},
			},
		},
		{Text: "Nota para a comunicação", Type: quiz.RatingScale, RatingMin: intPtr(1), RatingMax: intPtr(5)},
		{Text: "Vocês brigam com frequência?", Type: quiz.YesNo},
	}
	err := svc.CreateQuizWithQuestions(context.Background(), q, questions)
	return q, questions, err
}
