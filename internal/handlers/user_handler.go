// Package handlers maps HTTP requests onto the services and status
// codes onto their errors.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"go-mongo-todo/internal/models"
	"go-mongo-todo/internal/repositories"
	"go-mongo-todo/internal/services"
)

// UserHandler manages registration, login and session routes.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// fieldErrors turns binding failures into a field-keyed error map.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = "Invalid request payload"
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "is required"
		case "email":
			out[field] = "is not a valid email address"
		case "min":
			out[field] = fmt.Sprintf("must be at least %s characters", fe.Param())
		default:
			out[field] = "is invalid"
		}
	}
	return out
}

// RegisterHandler handles POST /users. On success the fresh session
// token travels in the x-auth header, the user in the body.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req models.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "is already registered"}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.Header("x-auth", token)
	c.JSON(http.StatusOK, user)
}

// LoginHandler handles POST /users/login. Every failure is a bare 400
// so the response never tells an unknown email from a wrong password.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.userService.FindByCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), user)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	c.Header("x-auth", token)
	c.JSON(http.StatusOK, user)
}

// MeHandler handles GET /users/me for an authenticated request.
func (h *UserHandler) MeHandler(c *gin.Context) {
	user, _, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errormessage": "Invalid token"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// LogoutHandler handles DELETE /users/me/token: it revokes exactly the
// session token the request was authenticated with.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	user, token, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errormessage": "Invalid token"})
		return
	}

	if err := h.authService.RevokeToken(c.Request.Context(), user, token); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "You are now logged out!"})
}

// currentSession reads the user and token the auth middleware attached.
func currentSession(c *gin.Context) (*models.User, string, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		return nil, "", false
	}
	user, ok := userVal.(*models.User)
	if !ok {
		return nil, "", false
	}
	tokenVal, exists := c.Get("token")
	if !exists {
		return nil, "", false
	}
	token, ok := tokenVal.(string)
	if !ok {
		return nil, "", false
	}
	return user, token, true
}
