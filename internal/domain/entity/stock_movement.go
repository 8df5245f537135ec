package entity

import "time"

// Motivos de movimiento de stock.
const (
	MovementReasonSale       = "SALE"
	MovementReasonRestock    = "RESTOCK"
	MovementReasonAdjustment = "ADJUSTMENT"
)

// Referencias fijas para movimientos que no nacen de una venta.
const (
	MovementReferenceManual  = "manual"
	MovementReferenceInitial = "initial"
)

// StockMovement registro append-only del ledger: nunca se actualiza ni se borra.
// La suma de Change de un producto es igual a su stock actual.
type StockMovement struct {
	ID        string
	OwnerID   string
	ProductID string
	Change    int    // negativo = consumo, positivo = reposición
	Reason    string // SALE, RESTOCK, ADJUSTMENT
	Reference string // "sale:<id>", "manual" o "initial"
	Note      string
	CreatedAt time.Time
}

// SaleReference construye la referencia de un movimiento causado por una venta.
func SaleReference(saleID string) string {
	return "sale:" + saleID
}

// IsValidMovementReason valida el enum de motivos.
func IsValidMovementReason(reason string) bool {
	switch reason {
	case MovementReasonSale, MovementReasonRestock, MovementReasonAdjustment:
		return true
	}
	return false
}
