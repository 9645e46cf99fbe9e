package handlers

import (
	"net/http"

	"fleetrent/internal/common"
	"fleetrent/internal/reports"

	"github.com/labstack/echo/v4"
)

type ReportHandlers struct {
	reportService reports.Service
}

func NewReportHandlers(reportService reports.Service) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

// NetBalance returns the caller-scoped settlement aggregate: drivers
// see their own completed trips, owners and admins the whole tenant.
func (h *ReportHandlers) NetBalance(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	report, err := h.reportService.NetBalance(ctx, sess)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, report)
}
