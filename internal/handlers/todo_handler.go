package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-mongo-todo/internal/models"
	"go-mongo-todo/internal/repositories"
	"go-mongo-todo/internal/services"
)

// TodoHandler manages the owner-scoped todo routes.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// todoID parses the :id parameter. An unparseable id is a 400, not a
// 404: it can never name an existing document.
func todoID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errormessage": "Invalid ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func notFoundMessage(c *gin.Context) string {
	return fmt.Sprintf("Unable to find TODO with id: %s", c.Param("id"))
}

// CreateTodoHandler handles POST /todos.
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	user, _, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errormessage": "Invalid token"})
		return
	}

	var req models.TodoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	todo, err := h.todoService.Create(c.Request.Context(), user.ID, req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save todo"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

// GetTodosHandler handles GET /todos and only ever lists the
// authenticated user's todos.
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	user, _, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errormessage": "Invalid token"})
		return
	}

	todos, err := h.todoService.List(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// GetTodoByIDHandler handles GET /todos/:id.
func (h *TodoHandler) GetTodoByIDHandler(c *gin.Context) {
	user, _, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errormessage": "Invalid token"})
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"errormessage": notFoundMessage(c)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// UpdateTodoHandler handles PATCH /todos/:id.
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	user, _, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errormessage": "Invalid token"})
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	var req models.TodoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	todo, err := h.todoService.Update(c.Request.Context(), user.ID, id, req)
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"errormessage": notFoundMessage(c)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// DeleteTodoHandler handles DELETE /todos/:id and echoes the removed
// todo back to the caller.
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	user, _, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errormessage": "Invalid token"})
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.Delete(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"errormessage": notFoundMessage(c)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully deleted TODO with id: %s", c.Param("id")),
		"todo":    todo,
	})
}
