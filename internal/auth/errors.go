package auth

import "errors"

var (
	// ErrInvalidToken indicates a malformed token, a bad signature, or an
	// issuer/audience mismatch.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrTokenExpired indicates a well-formed, correctly signed token whose
	// expiry has passed.
	ErrTokenExpired = errors.New("auth: token expired")
)
