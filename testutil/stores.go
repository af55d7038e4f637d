// Package testutil provides in-memory store fakes and request helpers
// so the test suite runs without MongoDB or Redis.
package testutil

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-mongo-todo/internal/models"
	"go-mongo-todo/internal/repositories"
)

// MemoryUserStore implements services.UserStore over a mutex-guarded
// map, mirroring the repository's atomic push/pull semantics.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.Tokens = append([]models.TokenEntry(nil), u.Tokens...)
	return &cp
}

func (s *MemoryUserStore) Create(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return nil, repositories.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	if u.Tokens == nil {
		u.Tokens = []models.TokenEntry{}
	}
	s.users[u.ID] = copyUser(u)
	return u, nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (s *MemoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryUserStore) AppendToken(_ context.Context, id primitive.ObjectID, entry models.TokenEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Tokens = append(u.Tokens, entry)
	return nil
}

func (s *MemoryUserStore) RemoveToken(_ context.Context, id primitive.ObjectID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	kept := u.Tokens[:0]
	for _, e := range u.Tokens {
		if e.Access == models.AccessAuth && e.Token == token {
			continue
		}
		kept = append(kept, e)
	}
	u.Tokens = kept
	return nil
}

// MemoryTodoStore implements services.TodoStore. Like the Mongo
// repository, every lookup filters on the creator id.
type MemoryTodoStore struct {
	mu    sync.Mutex
	todos map[primitive.ObjectID]*models.Todo
}

func NewMemoryTodoStore() *MemoryTodoStore {
	return &MemoryTodoStore{todos: map[primitive.ObjectID]*models.Todo{}}
}

func copyTodo(t *models.Todo) *models.Todo {
	cp := *t
	if t.CompletedAt != nil {
		ms := *t.CompletedAt
		cp.CompletedAt = &ms
	}
	return &cp
}

func (s *MemoryTodoStore) Create(_ context.Context, t *models.Todo) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = time.Now().UTC()
	s.todos[t.ID] = copyTodo(t)
	return t, nil
}

func (s *MemoryTodoStore) FindByCreator(_ context.Context, creator primitive.ObjectID) ([]*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Todo{}
	for _, t := range s.todos {
		if t.Creator == creator {
			out = append(out, copyTodo(t))
		}
	}
	return out, nil
}

func (s *MemoryTodoStore) FindOne(_ context.Context, id, creator primitive.ObjectID) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok || t.Creator != creator {
		return nil, repositories.ErrTodoNotFound
	}
	return copyTodo(t), nil
}

func (s *MemoryTodoStore) Update(_ context.Context, id, creator primitive.ObjectID, patch models.TodoPatch) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok || t.Creator != creator {
		return nil, repositories.ErrTodoNotFound
	}
	if patch.Text != nil {
		t.Text = *patch.Text
	}
	t.Completed = patch.Completed
	t.CompletedAt = patch.CompletedAt
	return copyTodo(t), nil
}

func (s *MemoryTodoStore) Delete(_ context.Context, id, creator primitive.ObjectID) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok || t.Creator != creator {
		return nil, repositories.ErrTodoNotFound
	}
	delete(s.todos, id)
	return copyTodo(t), nil
}
