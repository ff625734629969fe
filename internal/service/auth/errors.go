package auth

import "errors"

// Token validation failures. Both are reported to clients as 401.
var (
	// ErrInvalidToken covers malformed tokens, bad signatures, unexpected
	// signing methods and tokens without a subject.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned once the exp claim has passed.
	ErrExpiredToken = errors.New("authentication token has expired")
)
