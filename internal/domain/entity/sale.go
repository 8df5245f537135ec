package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodUnspecified se usa cuando la venta no informa método de pago.
const PaymentMethodUnspecified = "UNSPECIFIED"

// Sale cabecera de una venta. Inmutable una vez confirmada.
type Sale struct {
	ID            string
	OwnerID       string
	Total         decimal.Decimal // round(Σ qty × unit_price, 2)
	PaymentMethod string
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem línea de venta. UnitPrice es la foto del precio del producto al vender.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Position  int // orden de la línea dentro de la venta
	Qty       int
	UnitPrice decimal.Decimal
}

// LineTotal devuelve qty × unit_price sin redondear.
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}
