package biz

import (
	"errors"
)

var (
	// ErrPrincipalNotFound means the presented identity has no stored
	// credential. Never exposed verbatim over the API.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrBadSecret means the credential exists but the secret did not match.
	// Never exposed verbatim over the API.
	ErrBadSecret = errors.New("invalid secret")

	// ErrIncorrectCredentials is the uniform public failure for token
	// issuance, indistinguishable between unknown identity and bad secret.
	ErrIncorrectCredentials = errors.New("incorrect username or password")

	// ErrTokenMalformed covers unparseable tokens, bad signatures, and
	// unexpected signing methods.
	ErrTokenMalformed = errors.New("malformed token")

	// ErrTokenExpired covers structurally valid tokens past their expiry.
	ErrTokenExpired = errors.New("token expired")

	ErrInternal = errors.New("server internal error, please try again later")
)
