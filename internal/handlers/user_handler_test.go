package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-mongo-todo/testutil"
)

func TestRegister_Success(t *testing.T) {
	r, _, _ := testutil.NewTestServer(t)

	w := testutil.DoJSON(r, http.MethodPost, "/users", "", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("x-auth"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "a@x.com", body["email"])
	assert.NotEmpty(t, body["id"])

	// Neither the hash nor the token list may leak.
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "tokens")
}

func TestRegister_ValidationErrors(t *testing.T) {
	r, _, _ := testutil.NewTestServer(t)

	w := testutil.DoJSON(r, http.MethodPost, "/users", "", map[string]string{
		"email":    "not-an-email",
		"password": "abc",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "email")
	assert.Contains(t, body.Errors, "password")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r, _, _ := testutil.NewTestServer(t)
	testutil.RegisterAndGetToken(t, r, "dup@x.com", "secret1")

	w := testutil.DoJSON(r, http.MethodPost, "/users", "", map[string]string{
		"email":    "dup@x.com",
		"password": "another1",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "email")
}

func TestLogin_Success(t *testing.T) {
	r, _, _ := testutil.NewTestServer(t)
	testutil.RegisterAndGetToken(t, r, "login@x.com", "secret1")

	w := testutil.DoJSON(r, http.MethodPost, "/users/login", "", map[string]string{
		"email":    "login@x.com",
		"password": "secret1",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("x-auth"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "login@x.com", body["email"])
}

func TestLogin_FailureIsOpaque(t *testing.T) {
	r, _, _ := testutil.NewTestServer(t)
	testutil.RegisterAndGetToken(t, r, "known@x.com", "secret1")

	wrongPw := testutil.DoJSON(r, http.MethodPost, "/users/login", "", map[string]string{
		"email":    "known@x.com",
		"password": "wrong-password",
	})
	unknown := testutil.DoJSON(r, http.MethodPost, "/users/login", "", map[string]string{
		"email":    "unknown@x.com",
		"password": "secret1",
	})

	// Same status, same (empty) body for both failure modes.
	assert.Equal(t, http.StatusBadRequest, wrongPw.Code)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Empty(t, wrongPw.Body.String())
	assert.Empty(t, unknown.Body.String())
	assert.Empty(t, wrongPw.Header().Get("x-auth"))
}

func TestMe(t *testing.T) {
	r, _, _ := testutil.NewTestServer(t)
	token, user := testutil.RegisterAndGetToken(t, r, "me@x.com", "secret1")

	w := testutil.DoJSON(r, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "me@x.com", body["email"])
	assert.Equal(t, user.ID.Hex(), body["id"])

	// No header at all.
	w = testutil.DoJSON(r, http.MethodGet, "/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"errormessage":"Invalid token"}`, w.Body.String())
}

func TestLogout_RemovesOnlyPresentedToken(t *testing.T) {
	r, users, _ := testutil.NewTestServer(t)
	token1, user := testutil.RegisterAndGetToken(t, r, "multi@x.com", "secret1")
	token2 := testutil.LoginAndGetToken(t, r, "multi@x.com", "secret1")
	require.NotEqual(t, token1, token2)

	w := testutil.DoJSON(r, http.MethodDelete, "/users/me/token", token1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"You are now logged out!"}`, w.Body.String())

	// The revoked session is gone, the other one still works.
	w = testutil.DoJSON(r, http.MethodGet, "/users/me", token1, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.DoJSON(r, http.MethodGet, "/users/me", token2, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Tokens, 1)
}
