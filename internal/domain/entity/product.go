package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un producto. Los productos no se borran físicamente:
// se archivan para que las ventas históricas sigan resolviendo sus referencias.
const (
	ProductStatusActive   = "ACTIVE"
	ProductStatusArchived = "ARCHIVED"
)

// Product representa un producto del catálogo de un owner.
// Stock se modifica solo vía el motor de ledger (ventas y ajustes).
type Product struct {
	ID        string
	OwnerID   string
	Name      string
	SKU       *string         // opcional; único por owner
	Price     decimal.Decimal // precio de venta vigente
	Cost      decimal.Decimal // costo promedio ponderado
	Stock     int
	StockMin  int
	Status    string // ACTIVE, ARCHIVED
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el producto puede venderse o ajustarse.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsLowStock indica si el stock llegó al mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.StockMin
}

// ProductPatch actualización parcial: solo se aplican los campos no nil.
type ProductPatch struct {
	Name     *string
	SKU      *string // puntero a "" elimina el SKU
	Price    *decimal.Decimal
	Cost     *decimal.Decimal
	StockMin *int
	Active   *bool
}
