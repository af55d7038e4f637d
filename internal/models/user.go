// Package models defines the MongoDB document types and the typed
// request bodies accepted by the API.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccessAuth is the purpose tag carried by every session token.
const AccessAuth = "auth"

// TokenEntry is one issued session in a user's tokens array.
// Entries are appended on register/login and pulled on logout.
type TokenEntry struct {
	Access string `bson:"access" json:"-"`
	Token  string `bson:"token" json:"-"`
}

// User is the user document. The password hash and the token list
// never leave the server; JSON exposes id and email only.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Tokens       []TokenEntry       `bson:"tokens" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"-"`
}

// HasToken reports whether the exact token string is still present in
// the user's session list.
func (u *User) HasToken(token string) bool {
	for _, e := range u.Tokens {
		if e.Access == AccessAuth && e.Token == token {
			return true
		}
	}
	return false
}

// UserRegisterRequest is the body of POST /users.
type UserRegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserLoginRequest is the body of POST /users/login.
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
