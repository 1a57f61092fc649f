package diagnostics

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gangosri/his/internal/domain/patient"
	"github.com/gangosri/his/internal/platform/auth"
	"github.com/gangosri/his/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/orders", h.PlaceOrder)
	api.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	api.POST("/reports", h.FileReport)
	api.POST("/reports/upload", h.UploadReport)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.GET("/reports", h.ListReports)
}

func (h *Handler) PlaceOrder(c echo.Context) error {
	actor := auth.PrincipalFromContext(c.Request().Context())

	var in OrderInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	o, err := h.svc.PlaceOrder(c.Request().Context(), actor, in)
	if err != nil {
		switch {
		case errors.Is(err, patient.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		case errors.Is(err, ErrInvalidOrderType):
			return echo.NewHTTPError(http.StatusBadRequest, "order_type must be lab or radiology")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *Handler) ListOrders(c echo.Context) error {
	pg := pagination.FromContext(c)
	filter := OrderFilter{
		PatientID: c.QueryParam("patient_id"),
		Status:    c.QueryParam("status"),
	}

	orders, total, err := h.svc.ListOrders(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list orders")
	}
	if orders == nil {
		orders = []*Order{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(orders, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetOrder(c echo.Context) error {
	actor := auth.PrincipalFromContext(c.Request().Context())

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	o, err := h.svc.GetOrder(c.Request().Context(), actor, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load order")
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	actor := auth.PrincipalFromContext(c.Request().Context())

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.SetOrderStatus(c.Request().Context(), actor, id, body.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status: "+body.Status)
		case errors.Is(err, ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update order status")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Status updated"})
}

func (h *Handler) FileReport(c echo.Context) error {
	actor := auth.PrincipalFromContext(c.Request().Context())

	var in ReportInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rep, err := h.svc.FileReport(c.Request().Context(), actor, in)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *Handler) UploadReport(c echo.Context) error {
	actor := auth.PrincipalFromContext(c.Request().Context())

	patientID, err := uuid.Parse(c.FormValue("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}
	reportType := c.FormValue("report_type")
	testName := c.FormValue("test_name")
	if reportType == "" || testName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	var orderID *uuid.UUID
	if raw := c.FormValue("order_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid order_id")
		}
		orderID = &id
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read file")
	}
	defer src.Close()

	contents, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read file")
	}

	rep, err := h.svc.UploadReport(c.Request().Context(), actor, UploadInput{
		PatientID:  patientID,
		OrderID:    orderID,
		ReportType: reportType,
		TestName:   testName,
		FileName:   fileHeader.Filename,
		Contents:   contents,
	})
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"message":   "Report uploaded",
		"report_id": rep.ID.String(),
	})
}

func (h *Handler) ListReports(c echo.Context) error {
	pg := pagination.FromContext(c)
	reports, total, err := h.svc.ListReports(c.Request().Context(), c.QueryParam("patient_id"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list reports")
	}
	if reports == nil {
		reports = []*Report{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(reports, total, pg.Limit, pg.Offset))
}
