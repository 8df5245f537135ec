package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

func TestGenerateReplenishmentList(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	create := func(name, price, cost string, stock, min int) string {
		out, err := f.products.Create(ctx, ownerA, dto.CreateProductRequest{
			Name: name, Price: dec(price), Cost: dec(cost), Stock: stock, StockMin: min,
		})
		require.NoError(t, err)
		return out.ID
	}
	bajoMargen := create("Bajo margen", "10.00", "8.00", 0, 4)
	altoMargen := create("Alto margen", "10.00", "6.00", 2, 10)
	rotacion := create("Rotación", "10.00", "8.00", 6, 4)
	create("Con stock", "10.00", "1.00", 50, 5)

	// ventas con reloj real para que caigan dentro de la ventana de 90 días
	ledger := inventory.NewLedgerUseCase(memoryRunner(f), f.store.Products(), f.store.Sales(), f.store.Movements(), inventory.Options{})
	_, err := ledger.CreateSale(ctx, inventory.CreateSaleInput{OwnerID: ownerA, Items: []invdomain.Line{{ProductID: rotacion, Qty: 3}}})
	require.NoError(t, err)

	uc := inventory.NewReplenishmentUseCase(f.store.Products(), f.store.Reports())
	list, err := uc.GenerateReplenishmentList(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, altoMargen, list[0].ProductID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 15, list[0].IdealStock)
	assert.Equal(t, 13, list[0].SuggestedOrderQty)
	assert.True(t, dec("78.00").Equal(list[0].EstimatedOrderCost))
	assert.True(t, dec("40").Equal(list[0].GrossMarginPct))

	// mismo margen: primero el que más vendió
	assert.Equal(t, rotacion, list[1].ProductID)
	assert.Equal(t, 3, list[1].UnitsSoldLast90Days)
	assert.Equal(t, 3, list[1].CurrentStock)
	assert.Equal(t, bajoMargen, list[2].ProductID)
	assert.Equal(t, 6, list[2].SuggestedOrderQty)

	empty, err := uc.GenerateReplenishmentList(ctx, ownerB)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
