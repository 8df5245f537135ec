package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaxQuantity tope de cantidades y stock: rango de las columnas INTEGER de PostgreSQL.
const MaxQuantity = math.MaxInt32

// moneyPlaces decimales con los que se redondean los montos en los bordes de agregación.
const moneyPlaces = 2

// RoundMoney redondea un monto a 2 decimales (half away from zero).
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// SaleTotal calcula round(Σ qty × unit_price, 2) sobre las líneas de una venta.
// Se suma sin redondear línea a línea para no acumular error.
func SaleTotal(items []entity.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return RoundMoney(total)
}

// QuantityByProduct agrupa las cantidades pedidas por producto, conservando el orden
// de primera aparición. Las líneas repetidas de un mismo producto se validan
// contra el stock como una sola demanda combinada. Falla con domain.ErrInvalidInput si
// alguna cantidad no es positiva o si la demanda combinada supera MaxQuantity.
func QuantityByProduct(lines []Line) (order []string, qty map[string]int, err error) {
	qty = make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Qty <= 0 || l.Qty > MaxQuantity {
			return nil, nil, domain.Invalid("qty", fmt.Sprintf("debe estar entre 1 y %d", MaxQuantity))
		}
		prev, seen := qty[l.ProductID]
		if !seen {
			order = append(order, l.ProductID)
		}
		if prev > MaxQuantity-l.Qty {
			return nil, nil, domain.Invalid("qty", fmt.Sprintf("cantidad total del producto %s supera %d", l.ProductID, MaxQuantity))
		}
		qty[l.ProductID] = prev + l.Qty
	}
	return order, qty, nil
}

// Line par producto/cantidad de una venta propuesta.
type Line struct {
	ProductID string
	Qty       int
}
