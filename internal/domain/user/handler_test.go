package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gangosri/his/internal/platform/auth"
)

func newHandlerTest(t *testing.T) (*Handler, *Service) {
	t.Helper()
	svc, _, _ := newTestService(t)
	return NewHandler(svc), svc
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	h, svc := newHandlerTest(t)
	registerUser(t, svc, "dr@x.com", "secret123", "DOCTOR")

	e := echo.New()

	// Unknown email and wrong password must produce byte-identical bodies.
	var bodies []string
	for _, payload := range []string{
		`{"email":"nobody@x.com","password":"secret123"}`,
		`{"email":"dr@x.com","password":"wrong"}`,
	} {
		c, _ := postJSON(e, "/api/auth/login", payload)
		err := h.Login(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("expected HTTPError, got %v", err)
		}
		if httpErr.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", httpErr.Code)
		}
		bodies = append(bodies, httpErr.Message.(string))
	}
	if bodies[0] != bodies[1] {
		t.Errorf("login failure messages differ: %q vs %q", bodies[0], bodies[1])
	}
}

func TestLoginHandler_InactiveAccount(t *testing.T) {
	h, svc := newHandlerTest(t)
	u := registerUser(t, svc, "dr@x.com", "secret123", "DOCTOR")
	if err := svc.SetStatus(context.Background(), adminActor(), u.ID, false); err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	c, _ := postJSON(e, "/api/auth/login", `{"email":"dr@x.com","password":"secret123"}`)
	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403 for inactive account at login, got %d", httpErr.Code)
	}
}

func TestLoginHandler_NeverLeaksPasswordHash(t *testing.T) {
	h, svc := newHandlerTest(t)
	registerUser(t, svc, "dr@x.com", "secret123", "DOCTOR")

	e := echo.New()
	c, rec := postJSON(e, "/api/auth/login", `{"email":"dr@x.com","password":"secret123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}

	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not contain any password material")
	}

	var resp TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected access token in response")
	}
}

func TestUpdateStatusHandler_SelfDeactivation(t *testing.T) {
	h, svc := newHandlerTest(t)
	u := registerUser(t, svc, "admin2@x.com", "secret123", "ADMIN")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/users/"+u.ID.String()+"/status",
		strings.NewReader(`{"is_active":false}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(auth.WithPrincipal(req.Context(), u.Principal()))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(u.ID.String())

	err := h.UpdateStatus(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for self-deactivation, got %d", httpErr.Code)
	}
}

func TestUpdateStatusHandler_InvalidID(t *testing.T) {
	h, _ := newHandlerTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/users/abc/status",
		strings.NewReader(`{"is_active":false}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(auth.WithPrincipal(req.Context(), adminActor()))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.UpdateStatus(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}
