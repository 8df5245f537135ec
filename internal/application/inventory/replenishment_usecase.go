package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// salesWindowDays ventana de historial usada para ponderar la prioridad de reposición.
const salesWindowDays = 90

// ReplenishmentUseCase genera la lista de reposición de un owner: productos activos
// con stock en o bajo el mínimo, priorizados por margen y rotación reciente.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	reportRepo  repository.ReportRepository
	now         func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	reportRepo repository.ReportRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		productRepo: productRepo,
		reportRepo:  reportRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GenerateReplenishmentList devuelve los productos en stock bajo con la cantidad sugerida
// de pedido (hasta 1.5 × stock_min) y un ranking de prioridad (1 = más urgente).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, ownerID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.ListLowStock(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	end := uc.now()
	start := end.AddDate(0, 0, -salesWindowDays)
	lines, err := uc.reportRepo.ListSaleLines(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	unitsSold := make(map[string]int, len(lines))
	for _, l := range lines {
		unitsSold[l.ProductID] += l.Qty
	}

	hundred := decimal.NewFromInt(100)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		// techo de 1.5 × mínimo, al menos una unidad por encima del mínimo
		ideal := (p.StockMin*3 + 1) / 2
		if ideal <= p.StockMin {
			ideal = p.StockMin + 1
		}
		suggested := ideal - p.Stock
		if suggested < 0 {
			suggested = 0
		}

		var marginPct decimal.Decimal
		if p.Price.GreaterThan(decimal.Zero) {
			marginPct = p.Price.Sub(p.Cost).Div(p.Price).Mul(hundred).Round(2)
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:           p.ID,
			SKU:                 p.SKU,
			ProductName:         p.Name,
			CurrentStock:        p.Stock,
			StockMin:            p.StockMin,
			IdealStock:          ideal,
			SuggestedOrderQty:   suggested,
			UnitCost:            p.Cost,
			EstimatedOrderCost:  p.Cost.Mul(decimal.NewFromInt(int64(suggested))).Round(2),
			GrossMarginPct:      marginPct,
			UnitsSoldLast90Days: unitsSold[p.ID],
		})
	}

	// Mayor margen, luego mayor rotación, luego mayor déficit bajo el mínimo.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		if a.UnitsSoldLast90Days != b.UnitsSoldLast90Days {
			return a.UnitsSoldLast90Days > b.UnitsSoldLast90Days
		}
		return a.StockMin-a.CurrentStock > b.StockMin-b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
