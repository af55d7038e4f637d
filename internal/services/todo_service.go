package services

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-mongo-todo/internal/cache"
	"go-mongo-todo/internal/models"
)

// TodoService runs owner-scoped todo operations. The creator id comes
// from the authenticated request, never from the request body.
type TodoService struct {
	todos TodoStore
	cache *cache.TodoCache // nil when Redis is not configured
	log   *slog.Logger
}

// NewTodoService creates a new TodoService. cache may be nil.
func NewTodoService(todos TodoStore, c *cache.TodoCache, log *slog.Logger) *TodoService {
	return &TodoService{todos: todos, cache: c, log: log}
}

// Create stores a new todo owned by creator.
func (s *TodoService) Create(ctx context.Context, creator primitive.ObjectID, text string) (*models.Todo, error) {
	t := &models.Todo{Text: text, Creator: creator}
	created, err := s.todos.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, creator)
	return created, nil
}

// List returns every todo owned by creator, from cache when possible.
// Cache failures only cost the shortcut, never the request.
func (s *TodoService) List(ctx context.Context, creator primitive.ObjectID) ([]*models.Todo, error) {
	if s.cache != nil {
		cached, err := s.cache.GetList(ctx, creator)
		if err != nil {
			s.log.Warn("todo cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	todos, err := s.todos.FindByCreator(ctx, creator)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetList(ctx, creator, todos); err != nil {
			s.log.Warn("todo cache write failed", "error", err)
		}
	}
	return todos, nil
}

// Get returns the todo with the given id if creator owns it.
func (s *TodoService) Get(ctx context.Context, creator, id primitive.ObjectID) (*models.Todo, error) {
	return s.todos.FindOne(ctx, id, creator)
}

// Update applies a PATCH to an owned todo. completed:true stamps a
// fresh completedAt on every call; false or absent forces the todo back
// to not-completed and clears the timestamp.
func (s *TodoService) Update(ctx context.Context, creator, id primitive.ObjectID, req models.TodoUpdateRequest) (*models.Todo, error) {
	patch := models.TodoPatch{Text: req.Text}
	if req.Completed != nil && *req.Completed {
		ms := nowFunc().UnixMilli()
		patch.Completed = true
		patch.CompletedAt = &ms
	}

	updated, err := s.todos.Update(ctx, id, creator, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, creator)
	return updated, nil
}

// Delete removes an owned todo and returns the deleted document.
func (s *TodoService) Delete(ctx context.Context, creator, id primitive.ObjectID) (*models.Todo, error) {
	deleted, err := s.todos.Delete(ctx, id, creator)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, creator)
	return deleted, nil
}

func (s *TodoService) invalidate(ctx context.Context, creator primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, creator); err != nil {
		s.log.Warn("todo cache invalidation failed", "error", err)
	}
}
