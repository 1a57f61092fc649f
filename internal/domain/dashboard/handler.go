package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gangosri/his/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard/stats", h.GetStats)
}

func (h *Handler) GetStats(c echo.Context) error {
	actor := auth.PrincipalFromContext(c.Request().Context())

	stats, err := h.svc.Stats(c.Request().Context(), actor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build dashboard stats")
	}
	return c.JSON(http.StatusOK, stats)
}
