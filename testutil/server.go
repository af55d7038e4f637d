package testutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"go-mongo-todo/internal/models"
	"go-mongo-todo/internal/routes"
)

// TestJWTSecret signs every token issued by a test server.
const TestJWTSecret = "test-secret"

// NewTestServer builds a router over fresh in-memory stores.
func NewTestServer(t *testing.T) (*gin.Engine, *MemoryUserStore, *MemoryTodoStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := NewMemoryUserStore()
	todos := NewMemoryTodoStore()
	r := routes.SetupRouter(routes.Deps{
		Users:     users,
		Todos:     todos,
		JWTSecret: []byte(TestJWTSecret),
		Log:       slog.Default(),
	})
	return r, users, todos
}

// RegisterAndGetToken registers a user through the API and returns the
// x-auth token together with the response body user.
func RegisterAndGetToken(t *testing.T, r *gin.Engine, email, password string) (string, *models.User) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})

	req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "registration failed: %s", w.Body.String())
	token := w.Header().Get("x-auth")
	require.NotEmpty(t, token)

	var u models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	return token, &u
}

// LoginAndGetToken logs an existing user in and returns the new token.
func LoginAndGetToken(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})

	req, _ := http.NewRequest(http.MethodPost, "/users/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	token := w.Header().Get("x-auth")
	require.NotEmpty(t, token)
	return token
}

// CreateTestTodo creates a todo through the API as the token's owner.
func CreateTestTodo(t *testing.T, r *gin.Engine, token, text string) *models.Todo {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"text": text})

	req, _ := http.NewRequest(http.MethodPost, "/todos", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-auth", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "todo creation failed: %s", w.Body.String())

	var created models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return &created
}

// DoJSON performs an authenticated JSON request and returns the
// recorder.
func DoJSON(r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&buf).Encode(payload)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
