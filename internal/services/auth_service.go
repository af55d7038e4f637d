package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-mongo-todo/internal/models"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// authClaims binds a token to one user and the "auth" purpose. There is
// no expiry claim: a token stays valid until it is revoked.
type authClaims struct {
	Access string `json:"access"`
	jwt.RegisteredClaims
}

// AuthService issues, validates and revokes session tokens. The secret
// and the store are injected once at construction; the service itself
// is stateless and safe for concurrent use.
type AuthService struct {
	secret []byte
	users  UserStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(secret []byte, users UserStore) *AuthService {
	return &AuthService{secret: secret, users: users}
}

// IssueToken signs a token for the user and appends it to the stored
// session list in one atomic push.
func (s *AuthService) IssueToken(ctx context.Context, user *models.User) (string, error) {
	claims := &authClaims{
		Access: models.AccessAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.ID.Hex(),
			IssuedAt: jwt.NewNumericDate(nowFunc()),
			// jti makes two same-second logins produce distinct token
			// strings, so revoking one session cannot touch another.
			ID: uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	entry := models.TokenEntry{Access: models.AccessAuth, Token: tokenString}
	if err := s.users.AppendToken(ctx, user.ID, entry); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	user.Tokens = append(user.Tokens, entry)
	return tokenString, nil
}

// ValidateToken is the authentication gate. Stage one checks the
// signature and the purpose tag without touching the store; stage two
// loads the user and requires the exact token string to still be in the
// stored session list, so a revoked token fails even though its
// signature is intact. Every failure is ErrInvalidToken.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*authClaims)
	if !ok || !token.Valid || claims.Access != models.AccessAuth {
		return nil, ErrInvalidToken
	}

	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !user.HasToken(tokenString) {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// RevokeToken pulls the single matching session entry from the user's
// stored list. Revoking a token that is already gone is a no-op.
func (s *AuthService) RevokeToken(ctx context.Context, user *models.User, tokenString string) error {
	return s.users.RemoveToken(ctx, user.ID, tokenString)
}
