package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable so the
	// login endpoint cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive is returned when credentials verify but the
	// account has been deactivated. Inactivity is not a secret and may be
	// surfaced to the caller.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrTokenExpired is returned when a token's embedded expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed is returned when signature or structure
	// verification fails.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrUnauthenticated is returned when a token's subject no longer
	// resolves to a live, active user record.
	ErrUnauthenticated = errors.New("unauthenticated")
)
