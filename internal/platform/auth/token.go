package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the assertions carried by a session token: subject id, email,
// role, and an absolute expiry. The role and email claims are convenience
// copies only — the middleware re-fetches the live user record on every
// request and never trusts them for authorization.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenIssuer mints and validates signed, time-bounded session tokens.
// Tokens are stateless bearer credentials: validity is solely a function of
// signature and expiry, with no server-side revocation list.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration

	// now is swappable for tests.
	now func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue mints an HS256-signed token for the given subject, expiring at
// issuance time plus the configured lifetime.
func (i *TokenIssuer) Issue(subjectID, email string, role Role) (string, error) {
	issued := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(i.ttl)),
		},
		Email: email,
		Role:  string(role),
	})
	return token.SignedString(i.secret)
}

// Validate parses and verifies a token string. Expired tokens fail with
// ErrTokenExpired; every other failure (bad signature, wrong algorithm,
// garbage input, missing subject) is ErrTokenMalformed. Callers at the trust
// boundary must collapse both into a generic "invalid or expired" message.
func (i *TokenIssuer) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
