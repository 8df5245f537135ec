package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ReportUseCase reportes de ventas por rango de fechas. No bloquea filas ni escribe.
//
// Fuente de datos: ReportRepository (consultas read-only).
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	loc        *time.Location
}

// NewReportUseCase construye el caso de uso. loc es la zona en la que se interpretan
// las fechas del rango y se agrupan los días; nil = UTC.
func NewReportUseCase(reportRepo repository.ReportRepository, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportUseCase{reportRepo: reportRepo, loc: loc}
}

// GetSummary GET /api/reports/sales/summary.
func (uc *ReportUseCase) GetSummary(ctx context.Context, ownerID string, req dto.ReportRangeRequest) (*dto.SalesSummaryDTO, error) {
	start, end, err := parseRange(req.From, req.To, uc.loc)
	if err != nil {
		return nil, err
	}
	headers, err := uc.reportRepo.ListSaleHeaders(ctx, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte resumen: %w", err)
	}
	count, total, byMethod := Summary(headers)
	return &dto.SalesSummaryDTO{
		From:            req.From,
		To:              req.To,
		CountSales:      count,
		Total:           total,
		ByPaymentMethod: byMethod,
	}, nil
}

// GetDaily GET /api/reports/sales/daily.
func (uc *ReportUseCase) GetDaily(ctx context.Context, ownerID string, req dto.ReportRangeRequest) (*dto.DailySalesReportDTO, error) {
	start, end, err := parseRange(req.From, req.To, uc.loc)
	if err != nil {
		return nil, err
	}
	headers, err := uc.reportRepo.ListSaleHeaders(ctx, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: %w", err)
	}
	return &dto.DailySalesReportDTO{From: req.From, To: req.To, Days: Daily(headers, uc.loc)}, nil
}

// GetDetail GET /api/reports/sales/detail.
func (uc *ReportUseCase) GetDetail(ctx context.Context, ownerID string, req dto.ReportRangeRequest) (*dto.SaleDetailReportDTO, error) {
	start, end, err := parseRange(req.From, req.To, uc.loc)
	if err != nil {
		return nil, err
	}
	lines, err := uc.reportRepo.ListSaleLines(ctx, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte detalle: %w", err)
	}
	return &dto.SaleDetailReportDTO{From: req.From, To: req.To, Rows: DetailRows(lines)}, nil
}

// parseRange convierte [from, to] (fechas inclusive) al intervalo semiabierto
// [from 00:00, to+1 00:00) en loc.
func parseRange(fromStr, toStr string, loc *time.Location) (start, end time.Time, err error) {
	from, err := time.ParseInLocation(dateLayout, fromStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Invalid("from", "fecha inválida, formato YYYY-MM-DD")
	}
	to, err := time.ParseInLocation(dateLayout, toStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Invalid("to", "fecha inválida, formato YYYY-MM-DD")
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, domain.Invalid("from", "no puede ser posterior a to")
	}
	return from, to.AddDate(0, 0, 1), nil
}
