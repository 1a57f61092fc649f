package clinical

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gangosri/his/internal/platform/auth"
)

func serveAs(h *Handler, p *auth.Principal, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	api := e.Group("/api")
	api.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := auth.WithPrincipal(c.Request().Context(), p)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	h.RegisterRoutes(api)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestClinicalWrites_AnyAuthenticatedRole(t *testing.T) {
	env := newTestEnv(t)
	h := NewHandler(env.svc)

	encBody := fmt.Sprintf(`{"patient_id":%q,"chief_complaint":"headache"}`, env.patientID)
	rxBody := fmt.Sprintf(`{"patient_id":%q,"medications":[{"name":"Paracetamol"}]}`, env.patientID)

	for _, role := range auth.AllRoles() {
		p := &auth.Principal{ID: uuid.NewString(), Email: "staff@hospital.test", FullName: "Staff", Role: role, Active: true}

		if rec := serveAs(h, p, http.MethodPost, "/api/encounters", encBody); rec.Code != http.StatusCreated {
			t.Errorf("%s got %d from POST /api/encounters, want 201", role, rec.Code)
		}
		if rec := serveAs(h, p, http.MethodPost, "/api/prescriptions", rxBody); rec.Code != http.StatusCreated {
			t.Errorf("%s got %d from POST /api/prescriptions, want 201", role, rec.Code)
		}
	}
}
