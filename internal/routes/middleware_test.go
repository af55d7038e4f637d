package routes_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-mongo-todo/internal/models"
	"go-mongo-todo/testutil"
)

func TestAuthMiddleware_RejectsUniformly(t *testing.T) {
	r, _, _ := testutil.NewTestServer(t)
	token, _ := testutil.RegisterAndGetToken(t, r, "gate@x.com", "secret1")

	// Tamper with the signature of an otherwise valid token.
	tampered := []byte(token)
	if tampered[len(tampered)-1] == 'A' {
		tampered[len(tampered)-1] = 'B'
	} else {
		tampered[len(tampered)-1] = 'A'
	}

	cases := map[string]string{
		"missing header": "",
		"garbage":        "not-a-token",
		"tampered":       string(tampered),
	}
	for name, tok := range cases {
		w := testutil.DoJSON(r, http.MethodGet, "/users/me", tok, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.JSONEq(t, `{"errormessage":"Invalid token"}`, w.Body.String(), name)
	}
}

func TestAuthMiddleware_GatesEveryProtectedRoute(t *testing.T) {
	r, _, _ := testutil.NewTestServer(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users/me"},
		{http.MethodDelete, "/users/me/token"},
		{http.MethodPost, "/todos"},
		{http.MethodGet, "/todos"},
		{http.MethodGet, "/todos/5f1f0b0b0b0b0b0b0b0b0b0b"},
		{http.MethodPatch, "/todos/5f1f0b0b0b0b0b0b0b0b0b0b"},
		{http.MethodDelete, "/todos/5f1f0b0b0b0b0b0b0b0b0b0b"},
	}
	for _, route := range protected {
		w := testutil.DoJSON(r, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestHealthz(t *testing.T) {
	r, _, _ := testutil.NewTestServer(t)

	w := testutil.DoJSON(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// End-to-end walk through the core flow: register, create a todo with
// the issued token, then confirm another user's token cannot see it.
func TestEndToEnd_RegisterCreateIsolate(t *testing.T) {
	r, _, _ := testutil.NewTestServer(t)

	w := testutil.DoJSON(r, http.MethodPost, "/users", "", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := w.Header().Get("x-auth")
	require.NotEmpty(t, token)

	var registered models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	require.Equal(t, "a@x.com", registered.Email)

	w = testutil.DoJSON(r, http.MethodPost, "/todos", token, map[string]string{"text": "buy milk"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "buy milk", created.Text)

	otherToken, _ := testutil.RegisterAndGetToken(t, r, "b@x.com", "secret2")
	w = testutil.DoJSON(r, http.MethodGet, "/todos/"+created.ID.Hex(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
