// Package services holds the business logic: token lifecycle,
// credential checks and owner-scoped todo operations.
package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-mongo-todo/internal/models"
)

// nowFunc is swapped out in tests that pin timestamps.
var nowFunc = time.Now

// UserStore is the credential store the services depend on. The Mongo
// repository implements it; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	AppendToken(ctx context.Context, id primitive.ObjectID, entry models.TokenEntry) error
	RemoveToken(ctx context.Context, id primitive.ObjectID, token string) error
}

// TodoStore is the todo persistence surface. Every operation beyond
// Create takes the creator id and must scope by it.
type TodoStore interface {
	Create(ctx context.Context, t *models.Todo) (*models.Todo, error)
	FindByCreator(ctx context.Context, creator primitive.ObjectID) ([]*models.Todo, error)
	FindOne(ctx context.Context, id, creator primitive.ObjectID) (*models.Todo, error)
	Update(ctx context.Context, id, creator primitive.ObjectID, patch models.TodoPatch) (*models.Todo, error)
	Delete(ctx context.Context, id, creator primitive.ObjectID) (*models.Todo, error)
}
