package reports

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/pkg/pagination"
)

// Handler provides HTTP handlers for the service-test-reports domain.
type Handler struct {
	svc *Service
}

// NewHandler creates a new reports domain handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all service-test-report routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "physician", "nurse", "lab_technician"))
	read.GET("/service-test-reports", h.ListReports)
	read.GET("/service-test-reports/:id", h.GetReport)
	read.GET("/service-test-reports/:id/pdf", h.GetReportPDF)

	write := api.Group("", auth.RequireRole("admin", "lab_technician"))
	write.POST("/service-test-reports", h.CreateReport)
	write.PUT("/service-test-reports/:id", h.UpdateReport)
	write.DELETE("/service-test-reports/:id", h.DeleteReport)
	write.POST("/service-test-reports/:id/summarize", h.SummarizeReport)
}

func (h *Handler) CreateReport(c echo.Context) error {
	var rep ServiceTestReport
	if err := c.Bind(&rep); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateReport(c.Request().Context(), &rep); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *Handler) GetReport(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	rep, err := h.svc.GetReport(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "report not found")
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) ListReports(c echo.Context) error {
	pg := pagination.FromContext(c)
	if orderID := c.QueryParam("order_id"); orderID != "" {
		oid, err := strconv.ParseInt(orderID, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid order_id")
		}
		rep, err := h.svc.GetReportByOrder(c.Request().Context(), oid)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "report not found")
		}
		return c.JSON(http.StatusOK, pagination.NewResponse([]*ServiceTestReport{rep}, 1, pg.Limit, pg.Offset))
	}
	items, total, err := h.svc.ListReports(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateReport(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var rep ServiceTestReport
	if err := c.Bind(&rep); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rep.ID = id
	if err := h.svc.UpdateReport(c.Request().Context(), &rep); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) DeleteReport(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if _, err := h.svc.GetReport(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "report not found")
	}
	if err := h.svc.DeleteReport(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetReportPDF renders the report and streams it inline. Render failures
// return a plain 500 with no body so clients never see a truncated PDF.
func (h *Handler) GetReportPDF(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	data, filename, err := h.svc.RenderPDF(c.Request().Context(), id)
	if err != nil {
		if _, getErr := h.svc.GetReport(c.Request().Context(), id); getErr != nil {
			return echo.NewHTTPError(http.StatusNotFound, "report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render report")
	}
	c.Response().Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func (h *Handler) SummarizeReport(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	rep, err := h.svc.SummarizeReport(c.Request().Context(), id)
	if err != nil {
		if _, getErr := h.svc.GetReport(c.Request().Context(), id); getErr != nil {
			return echo.NewHTTPError(http.StatusNotFound, "report not found")
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, rep)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
