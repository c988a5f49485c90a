package answer

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/quiz"
	"github.com/saulo-duarte/quizlens/internal/user"
	util "github.com/saulo-duarte/quizlens/internal/utils"
)

type answerKey struct {
	question uuid.UUID
	user     uuid.UUID
}

// fakeRepo keeps one answer per (question, user), like the unique index.
type fakeRepo struct {
	mu      sync.Mutex
	answers map[answerKey]*Answer
	failErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{answers: map[answerKey]*Answer{}}
}

func (f *fakeRepo) Replace(ctx context.Context, a *Answer) error {
	if err := a.CheckVariant(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	util.EnsureID(&a.ID)
	f.answers[answerKey{a.QuestionID, a.UserID}] = a
	return nil
}

func (f *fakeRepo) GetByQuestionAndUser(ctx context.Context, questionID, userID uuid.UUID) (*Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.answers[answerKey{questionID, userID}]
	if !ok {
		return nil, ErrAnswerNotFound
	}
	return a, nil
}

func (f *fakeRepo) ListByUserAndQuestions(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) ([]*Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*Answer{}
	for _, qid := range questionIDs {
		if a, ok := f.answers[answerKey{qid, userID}]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.answers)
}

type fakeUsers map[string]*user.User

func (f fakeUsers) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	u, ok := f[username]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	return u, nil
}

type fakeQuestions map[uuid.UUID]*quiz.Question

func (f fakeQuestions) GetQuestionByID(ctx context.Context, id uuid.UUID) (*quiz.Question, error) {
	q, ok := f[id]
	if !ok {
		return nil, apperror.NotFound("question not found")
	}
	return q, nil
}

type fixture struct {
	repo      *fakeRepo
	svc       AnswerService
	user      *user.User
	single    *quiz.Question
	multiple  *quiz.Question
	rating    *quiz.Question
	openEnded *quiz.Question
}

func newFixture() *fixture {
	u := &user.User{ID: uuid.New(), Username: "ana"}
	single := choiceQuestion(quiz.SingleChoice)
	multiple := choiceQuestion(quiz.MultipleChoice)
	rating := &quiz.Question{ID: uuid.New(), Type: quiz.RatingScale, RatingMin: intPtr(1), RatingMax: intPtr(5)}
	open := &quiz.Question{ID: uuid.New(), Type: quiz.OpenEnded}

	repo := newFakeRepo()
	questions := fakeQuestions{single.ID: single, multiple.ID: multiple, rating.ID: rating, open.ID: open}
	return &fixture{
		repo:      repo,
		svc:       NewService(repo, fakeUsers{u.Username: u}, questions),
		user:      u,
		single:    single,
		multiple:  multiple,
		rating:    rating,
		openEnded: open,
	}
}

var errBoom = errors.New("boom")
