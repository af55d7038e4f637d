package services_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-mongo-todo/internal/models"
	"go-mongo-todo/internal/services"
	"go-mongo-todo/testutil"
)

func newAuthFixture(t *testing.T) (*services.AuthService, *testutil.MemoryUserStore, *models.User) {
	t.Helper()
	store := testutil.NewMemoryUserStore()
	user, err := store.Create(context.Background(), &models.User{
		Email:        "auth@example.com",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
	})
	require.NoError(t, err)
	return services.NewAuthService([]byte("test-secret"), store), store, user
}

func TestIssueToken_ValidatesUntilRevoked(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)

	require.NoError(t, svc.RevokeToken(ctx, user, token))

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestValidateToken_TamperedToken(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, user)
	require.NoError(t, err)

	// Flip the last byte of the signature.
	tampered := []byte(token)
	if tampered[len(tampered)-1] == 'A' {
		tampered[len(tampered)-1] = 'B'
	} else {
		tampered[len(tampered)-1] = 'A'
	}

	_, err = svc.ValidateToken(ctx, string(tampered))
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	_, store, user := newAuthFixture(t)
	ctx := context.Background()

	// Token signed (and stored) under a different secret: the
	// revocation list contains it, but the signature check must fail.
	other := services.NewAuthService([]byte("other-secret"), store)
	token, err := other.IssueToken(ctx, user)
	require.NoError(t, err)

	svc := services.NewAuthService([]byte("test-secret"), store)
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestValidateToken_WrongPurposeTag(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	ctx := context.Background()

	claims := jwt.MapClaims{"sub": user.ID.Hex(), "access": "password_reset"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestValidateToken_UnknownUser(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, user)
	require.NoError(t, err)

	// Same secret, empty store: the signature verifies but the
	// identity no longer resolves.
	fresh := services.NewAuthService([]byte("test-secret"), testutil.NewMemoryUserStore())
	_, err = fresh.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestValidateToken_GarbageInput(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	for _, input := range []string{"", "garbage", "a.b.c", "Bearer something"} {
		_, err := svc.ValidateToken(ctx, input)
		assert.ErrorIs(t, err, services.ErrInvalidToken, "input %q", input)
	}
}

func TestRevokeToken_LeavesOtherSessionsIntact(t *testing.T) {
	svc, store, user := newAuthFixture(t)
	ctx := context.Background()

	token1, err := svc.IssueToken(ctx, user)
	require.NoError(t, err)
	token2, err := svc.IssueToken(ctx, user)
	require.NoError(t, err)
	require.NotEqual(t, token1, token2)

	require.NoError(t, svc.RevokeToken(ctx, user, token1))

	_, err = svc.ValidateToken(ctx, token1)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	got, err := svc.ValidateToken(ctx, token2)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	stored, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Tokens, 1)
}

func TestRevokeToken_AlreadyRevokedIsNoop(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, user)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(ctx, user, token))
	require.NoError(t, svc.RevokeToken(ctx, user, token))
}
