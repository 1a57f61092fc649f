package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type fakeSource struct {
	principals map[string]*Principal
}

func (f *fakeSource) FindPrincipal(_ context.Context, id string) (*Principal, error) {
	p, ok := f.principals[id]
	if !ok {
		return nil, ErrUnauthenticated
	}
	return p, nil
}

func newAuthTestContext(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestMiddleware_MissingHeader(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	mw := Middleware(issuer, &fakeSource{})

	c, _ := newAuthTestContext(t, "")
	err := mw(okHandler)(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	mw := Middleware(issuer, &fakeSource{})

	for _, header := range []string{"Token abc", "Bearer", "bearer-without-space"} {
		c, _ := newAuthTestContext(t, header)
		err := mw(okHandler)(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	source := &fakeSource{principals: map[string]*Principal{
		"user-1": {ID: "user-1", Email: "dr@x.com", Role: RoleDoctor, Active: true},
	}}
	mw := Middleware(issuer, source)

	token, err := issuer.Issue("user-1", "dr@x.com", RoleDoctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var seen *Principal
	handler := func(c echo.Context) error {
		seen = PrincipalFromContext(c.Request().Context())
		return c.String(http.StatusOK, "ok")
	}

	c, rec := newAuthTestContext(t, "Bearer "+token)
	if err := mw(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.ID != "user-1" || seen.Role != RoleDoctor {
		t.Errorf("expected principal user-1/DOCTOR on context, got %+v", seen)
	}
}

// A deactivated account is rejected even while its token is still unexpired:
// the middleware re-fetches the live record instead of trusting the token.
func TestMiddleware_DeactivatedSubject(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	source := &fakeSource{principals: map[string]*Principal{
		"user-1": {ID: "user-1", Email: "dr@x.com", Role: RoleDoctor, Active: false},
	}}
	mw := Middleware(issuer, source)

	token, err := issuer.Issue("user-1", "dr@x.com", RoleDoctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, _ := newAuthTestContext(t, "Bearer "+token)
	err = mw(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deactivated subject, got %v", err)
	}
}

func TestMiddleware_UnknownSubject(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	mw := Middleware(issuer, &fakeSource{principals: map[string]*Principal{}})

	token, err := issuer.Issue("ghost", "ghost@x.com", RoleNurse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, _ := newAuthTestContext(t, "Bearer "+token)
	err = mw(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown subject, got %v", err)
	}
}

// The live record wins over the token's role claim.
func TestMiddleware_RoleChangeReflected(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	source := &fakeSource{principals: map[string]*Principal{
		"user-1": {ID: "user-1", Email: "n@x.com", Role: RoleNurse, Active: true},
	}}
	mw := Middleware(issuer, source)

	// Token was minted while the user was still an ADMIN.
	token, err := issuer.Issue("user-1", "n@x.com", RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var seen *Principal
	handler := func(c echo.Context) error {
		seen = PrincipalFromContext(c.Request().Context())
		return c.String(http.StatusOK, "ok")
	}

	c, _ := newAuthTestContext(t, "Bearer "+token)
	if err := mw(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen.Role != RoleNurse {
		t.Errorf("expected live role NURSE, got %s", seen.Role)
	}
}
