package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Todo is the todo document. Creator is set once at creation and every
// query filters on it, so a foreign todo is indistinguishable from a
// missing one.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text        string             `bson:"text" json:"text"`
	Completed   bool               `bson:"completed" json:"completed"`
	CompletedAt *int64             `bson:"completed_at" json:"completedAt"`
	Creator     primitive.ObjectID `bson:"creator" json:"creator"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// TodoCreateRequest is the body of POST /todos.
type TodoCreateRequest struct {
	Text string `json:"text" binding:"required"`
}

// TodoUpdateRequest is the body of PATCH /todos/:id. Only these two
// fields are accepted; anything else in the payload is dropped.
// A nil Text leaves the text untouched. Completed follows the original
// rule: true stamps a fresh completedAt, false or absent clears both.
type TodoUpdateRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// TodoPatch is the resolved mutation applied to a todo document.
// Completed and CompletedAt are always written; Text only when set.
type TodoPatch struct {
	Text        *string
	Completed   bool
	CompletedAt *int64
}
