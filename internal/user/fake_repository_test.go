package user_test

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quizlens/internal/user"
	util "github.com/saulo-duarte/quizlens/internal/utils"
)

type fakeRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeRepo) conflicts(u *user.User) bool {
	for id, other := range f.users {
		if id == u.ID {
			continue
		}
		if other.Username == u.Username || strings.EqualFold(other.Email, u.Email) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) Create(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	util.EnsureID(&u.ID)
	if f.conflicts(u) {
		return user.ErrDuplicateUser
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) find(match func(*user.User) bool) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return f.find(func(u *user.User) bool { return u.ID == id })
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	return f.find(func(u *user.User) bool { return u.Username == username })
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return f.find(func(u *user.User) bool { return strings.EqualFold(u.Email, email) })
}

func (f *fakeRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	_, err := f.find(func(u *user.User) bool {
		return u.Username == username || strings.EqualFold(u.Email, email)
	})
	return err == nil, nil
}

func (f *fakeRepo) Update(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	if f.conflicts(u) {
		return user.ErrDuplicateUser
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) SetPassword(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = &hash
	return nil
}
