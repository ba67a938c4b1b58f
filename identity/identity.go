// Package identity abstracts the external identity provider that owns
// credential storage and verification. The backend never sees passwords
// beyond forwarding them here.
package identity

import (
	"context"
	"errors"
	"time"
)

// ErrorCode classifies provider failures so callers can map them to HTTP
// statuses without matching on message text.
type ErrorCode string

const (
	CodeUserNotFound       ErrorCode = "user_not_found"
	CodeInvalidCredentials ErrorCode = "invalid_credentials"
	CodeUserExists         ErrorCode = "user_already_exists"
	CodeUnknown            ErrorCode = "unknown_error"
)

// Error is a structured provider error.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// CodeOf extracts the structured code from err, or CodeUnknown for plain
// errors (network failures, unexpected payloads).
func CodeOf(err error) ErrorCode {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return CodeUnknown
}

// Metadata is the profile data attached to a user at signup.
type Metadata struct {
	Username string `json:"username"`
}

// User is the provider's public user record.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	UserMetadata Metadata  `json:"user_metadata"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the result of a successful password login.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// SignUpParams are the fields forwarded on signup. Username is stored as
// profile metadata on the created user.
type SignUpParams struct {
	Email    string
	Password string
	Username string
}

// Provider is the identity service contract consumed by the auth routes.
type Provider interface {
	SignUp(ctx context.Context, params SignUpParams) (*User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
}
