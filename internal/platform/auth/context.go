package auth

import "context"

type contextKey string

const principalKey contextKey = "principal"

// Principal is the request-scoped view of the authenticated caller: a
// transient copy of the live user record, re-fetched on every request.
type Principal struct {
	ID       string
	Email    string
	FullName string
	Role     Role
	Active   bool
}

// WithPrincipal attaches the authenticated caller to the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated caller, or nil when the
// request did not pass the auth middleware.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}
