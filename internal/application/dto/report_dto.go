package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRangeRequest parámetros de GET /api/reports/sales/*. Ambas fechas inclusive.
type ReportRangeRequest struct {
	From string `query:"from" validate:"required,datetime=2006-01-02"`
	To   string `query:"to" validate:"required,datetime=2006-01-02"`
}

// SalesSummaryDTO totales del período.
type SalesSummaryDTO struct {
	From            string                     `json:"from"`
	To              string                     `json:"to"`
	CountSales      int                        `json:"count_sales"`
	Total           decimal.Decimal            `json:"total"`
	ByPaymentMethod map[string]decimal.Decimal `json:"by_payment_method"`
}

// DailySalesDTO fila diaria (solo días con ventas).
type DailySalesDTO struct {
	Date            string                     `json:"date"`
	CountSales      int                        `json:"count_sales"`
	Total           decimal.Decimal            `json:"total"`
	ByPaymentMethod map[string]decimal.Decimal `json:"by_payment_method"`
}

// DailySalesReportDTO respuesta de GET /api/reports/sales/daily.
type DailySalesReportDTO struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Days []DailySalesDTO `json:"days"`
}

// SaleDetailRowDTO fila venta × línea × producto (insumo de exportaciones tabulares).
type SaleDetailRowDTO struct {
	SaleID        string          `json:"sale_id"`
	SaleDatetime  time.Time       `json:"sale_datetime"`
	PaymentMethod string          `json:"payment_method"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Qty           int             `json:"qty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	SaleTotal     decimal.Decimal `json:"sale_total"`
}

// SaleDetailReportDTO respuesta de GET /api/reports/sales/detail.
type SaleDetailReportDTO struct {
	From string             `json:"from"`
	To   string             `json:"to"`
	Rows []SaleDetailRowDTO `json:"rows"`
}
