package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// ReportHandler reportes de ventas (solo lectura, protegido).
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de ventas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to    query  string  true  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200   {object}  dto.SalesSummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/sales/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	ownerID, ok := requireOwner(c)
	if !ok {
		return nil
	}
	var req dto.ReportRangeRequest
	if !parseQuery(c, &req) {
		return nil
	}
	out, err := h.uc.GetSummary(c.Context(), ownerID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Daily godoc
// @Summary      Ventas por día
// @Description  Solo días con ventas, en orden ascendente.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to    query  string  true  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200   {object}  dto.DailySalesReportDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/sales/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	ownerID, ok := requireOwner(c)
	if !ok {
		return nil
	}
	var req dto.ReportRangeRequest
	if !parseQuery(c, &req) {
		return nil
	}
	out, err := h.uc.GetDaily(c.Context(), ownerID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Detalle de ventas por línea
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to    query  string  true  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200   {object}  dto.SaleDetailReportDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/sales/detail [get]
func (h *ReportHandler) Detail(c *fiber.Ctx) error {
	ownerID, ok := requireOwner(c)
	if !ok {
		return nil
	}
	var req dto.ReportRangeRequest
	if !parseQuery(c, &req) {
		return nil
	}
	out, err := h.uc.GetDetail(c.Context(), ownerID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
