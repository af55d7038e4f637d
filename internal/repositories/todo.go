package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-mongo-todo/internal/models"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository persists todo documents in the "todos" collection.
// Every filter includes the creator, so callers can never reach a todo
// they do not own.
type TodoRepository struct {
	coll *mongo.Collection
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{coll: db.Collection("todos")}
}

// Create inserts a new todo owned by creator.
func (r *TodoRepository) Create(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	t.CreatedAt = time.Now().UTC()
	res, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return t, nil
}

// FindByCreator returns every todo owned by creator.
func (r *TodoRepository) FindByCreator(ctx context.Context, creator primitive.ObjectID) ([]*models.Todo, error) {
	cur, err := r.coll.Find(ctx, bson.M{"creator": creator})
	if err != nil {
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer cur.Close(ctx)

	todos := []*models.Todo{}
	if err := cur.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("could not decode todos: %w", err)
	}
	return todos, nil
}

// FindOne returns the todo with the given id if creator owns it.
func (r *TodoRepository) FindOne(ctx context.Context, id, creator primitive.ObjectID) (*models.Todo, error) {
	var t models.Todo
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "creator": creator}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("could not query todo: %w", err)
	}
	return &t, nil
}

// Update applies the patch to the owned todo in a single filter-update
// and returns the updated document.
func (r *TodoRepository) Update(ctx context.Context, id, creator primitive.ObjectID, patch models.TodoPatch) (*models.Todo, error) {
	set := bson.M{"completed": patch.Completed, "completed_at": patch.CompletedAt}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Todo
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "creator": creator}, bson.M{"$set": set}, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("could not update todo: %w", err)
	}
	return &t, nil
}

// Delete removes the owned todo and returns the deleted document.
func (r *TodoRepository) Delete(ctx context.Context, id, creator primitive.ObjectID) (*models.Todo, error) {
	var t models.Todo
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id, "creator": creator}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("could not delete todo: %w", err)
	}
	return &t, nil
}
