package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/products/:id/stock.
// UnitCost (opcional, solo entradas) recalcula el costo promedio ponderado.
type AdjustStockRequest struct {
	Change   int              `json:"change" validate:"ne=0,gte=-2147483647,lte=2147483647"`
	Reason   string           `json:"reason" validate:"max=32"`
	Note     string           `json:"note" validate:"max=255"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty" validate:"omitempty,gte=0"`
}

// StockMovementResponse salida de un movimiento del ledger.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Change    int       `json:"change"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReplenishmentSuggestionDTO fila de GET /api/inventory/replenishment-list.
type ReplenishmentSuggestionDTO struct {
	Priority            int             `json:"priority"`
	ProductID           string          `json:"product_id"`
	SKU                 *string         `json:"sku"`
	ProductName         string          `json:"product_name"`
	CurrentStock        int             `json:"current_stock"`
	StockMin            int             `json:"stock_min"`
	IdealStock          int             `json:"ideal_stock"`
	SuggestedOrderQty   int             `json:"suggested_order_qty"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost  decimal.Decimal `json:"estimated_order_cost"`
	GrossMarginPct      decimal.Decimal `json:"gross_margin_pct"`
	UnitsSoldLast90Days int             `json:"units_sold_last_90_days"`
}
