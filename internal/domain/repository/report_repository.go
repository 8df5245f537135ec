package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRow fila plana venta × línea × producto, para el detalle de reportes.
type SaleLineRow struct {
	SaleID        string
	SaleCreatedAt time.Time
	PaymentMethod string
	SaleTotal     decimal.Decimal
	ItemID        string
	ItemPosition  int
	ProductID     string
	ProductName   string
	Qty           int
	UnitPrice     decimal.Decimal
}

// SaleHeaderRow datos de cabecera necesarios para resumen y agrupación diaria.
type SaleHeaderRow struct {
	SaleID        string
	CreatedAt     time.Time
	PaymentMethod string
	Total         decimal.Decimal
}

// ReportRepository consultas de solo lectura sobre ventas confirmadas.
// El intervalo es semiabierto: start <= created_at < end.
type ReportRepository interface {
	ListSaleHeaders(ctx context.Context, ownerID string, start, end time.Time) ([]SaleHeaderRow, error)
	ListSaleLines(ctx context.Context, ownerID string, start, end time.Time) ([]SaleLineRow, error)
}
