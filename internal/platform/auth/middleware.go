package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// PrincipalSource resolves a token subject id to the current user record.
// The middleware never trusts the role or email carried in the token: a
// deactivated or role-changed account is rejected even while its token is
// still unexpired.
type PrincipalSource interface {
	FindPrincipal(ctx context.Context, subjectID string) (*Principal, error)
}

// PrincipalSourceFunc is a function adapter for PrincipalSource.
type PrincipalSourceFunc func(ctx context.Context, subjectID string) (*Principal, error)

func (f PrincipalSourceFunc) FindPrincipal(ctx context.Context, subjectID string) (*Principal, error) {
	return f(ctx, subjectID)
}

// Middleware authenticates every request: it extracts the bearer token,
// validates it, re-fetches the live user record by subject id, and attaches
// the resulting Principal to the request context. Failure detail never
// crosses the trust boundary — the client sees only "invalid or expired".
func Middleware(issuer *TokenIssuer, source PrincipalSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims, err := issuer.Validate(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			ctx := c.Request().Context()
			principal, err := source.FindPrincipal(ctx, claims.Subject)
			if err != nil || principal == nil || !principal.Active {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.SetRequest(c.Request().WithContext(WithPrincipal(ctx, principal)))
			return next(c)
		}
	}
}
