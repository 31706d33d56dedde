package session

import "errors"

// Token validation errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid quiz token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("quiz token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("quiz token is missing")
)
