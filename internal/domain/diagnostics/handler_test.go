package diagnostics

import (
	"context"
	"encoding/json"
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

func staffPrincipal(role auth.Role) *auth.Principal {
	return &auth.Principal{ID: uuid.NewString(), Email: "staff@hospital.test", FullName: "Staff", Role: role, Active: true}
}

func TestPlaceOrder_AnyAuthenticatedRole(t *testing.T) {
	env := newTestEnv(t)
	h := NewHandler(env.svc)

	body := fmt.Sprintf(`{"patient_id":%q,"order_type":"lab","test_name":"CBC"}`, env.patientID)
	for _, role := range auth.AllRoles() {
		rec := serveAs(h, staffPrincipal(role), http.MethodPost, "/api/orders", body)
		if rec.Code != http.StatusCreated {
			t.Errorf("%s got %d from POST /api/orders, want 201", role, rec.Code)
		}
	}
}

func TestUpdateOrderStatus_AnyAuthenticatedRole(t *testing.T) {
	env := newTestEnv(t)
	h := NewHandler(env.svc)

	order, err := env.svc.PlaceOrder(context.Background(), doctorActor(), OrderInput{
		PatientID: env.patientID,
		OrderType: "lab",
		TestName:  "CBC",
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := serveAs(h, staffPrincipal(auth.RoleReceptionist), http.MethodPatch,
		"/api/orders/"+order.ID.String()+"/status", `{"status":"in_progress"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("RECEPTIONIST got %d from PATCH /api/orders/:id/status, want 200", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["message"] != "Status updated" {
		t.Errorf("unexpected response message %q", resp["message"])
	}
}
