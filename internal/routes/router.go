// Package routes wires the HTTP surface together.
package routes

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-mongo-todo/internal/cache"
	"go-mongo-todo/internal/handlers"
	"go-mongo-todo/internal/services"
)

// Deps carries everything the router needs; main builds it once. Tests
// substitute in-memory stores and a nil health check.
type Deps struct {
	Users     services.UserStore
	Todos     services.TodoStore
	JWTSecret []byte
	Cache     *cache.TodoCache // nil disables the list cache
	Log       *slog.Logger
	Health    func(ctx context.Context) error // nil reports healthy
}

// SetupRouter builds the Gin engine with all endpoints registered.
func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "x-auth"}
	config.ExposeHeaders = []string{"x-auth"}
	r.Use(cors.New(config))
	r.Use(RequestID())

	authService := services.NewAuthService(deps.JWTSecret, deps.Users)
	userService := services.NewUserService(deps.Users)
	todoService := services.NewTodoService(deps.Todos, deps.Cache, deps.Log)

	userHandler := handlers.NewUserHandler(userService, authService)
	todoHandler := handlers.NewTodoHandler(todoService)

	r.GET("/healthz", func(c *gin.Context) {
		if deps.Health != nil {
			if err := deps.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/users", userHandler.RegisterHandler)
	r.POST("/users/login", userHandler.LoginHandler)

	authorized := r.Group("/")
	authorized.Use(AuthMiddleware(authService))
	{
		authorized.GET("/users/me", userHandler.MeHandler)
		authorized.DELETE("/users/me/token", userHandler.LogoutHandler)

		authorized.POST("/todos", todoHandler.CreateTodoHandler)
		authorized.GET("/todos", todoHandler.GetTodosHandler)
		authorized.GET("/todos/:id", todoHandler.GetTodoByIDHandler)
		authorized.PATCH("/todos/:id", todoHandler.UpdateTodoHandler)
		authorized.DELETE("/todos/:id", todoHandler.DeleteTodoHandler)
	}

	return r
}
