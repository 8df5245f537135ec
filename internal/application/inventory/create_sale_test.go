package inventory_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

func TestCreateSale_DescuentaStockYRegistraMovimientos(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	pan := f.newProduct(t, ownerA, "Pan", "10.00", 10)
	leche := f.newProduct(t, ownerA, "Leche", "5.50", 4)

	sale, err := f.ledger.CreateSale(ctx, inventory.CreateSaleInput{
		OwnerID:       ownerA,
		PaymentMethod: "cash",
		Items: []invdomain.Line{
			{ProductID: pan, Qty: 2},
			{ProductID: leche, Qty: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, dec("25.50").Equal(sale.Total), "total = 2×10.00 + 1×5.50")
	assert.Equal(t, "cash", sale.PaymentMethod)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, pan, sale.Items[0].ProductID)
	assert.Equal(t, 1, sale.Items[0].Position)
	assert.True(t, dec("10.00").Equal(sale.Items[0].UnitPrice))
	assert.Equal(t, leche, sale.Items[1].ProductID)

	assert.Equal(t, 8, f.product(t, ownerA, pan).Stock)
	assert.Equal(t, 3, f.product(t, ownerA, leche).Stock)

	movs := f.movements(t, ownerA, pan)
	require.Len(t, movs, 2, "initial + venta")
	assert.Equal(t, -2, movs[0].Change)
	assert.Equal(t, entity.MovementReasonSale, movs[0].Reason)
	assert.Equal(t, "sale:"+sale.ID, movs[0].Reference)
}

func TestCreateSale_StockExactoQuedaEnCero(t *testing.T) {
	f := newFixture(t, true)
	id := f.newProduct(t, ownerA, "Queso", "3.00", 5)

	_, err := f.ledger.CreateSale(context.Background(), inventory.CreateSaleInput{
		OwnerID: ownerA,
		Items:   []invdomain.Line{{ProductID: id, Qty: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.product(t, ownerA, id).Stock)
}

func TestCreateSale_StockInsuficienteNoAplicaNada(t *testing.T) {
	f := newFixture(t, true)
	ok := f.newProduct(t, ownerA, "Arroz", "2.00", 10)
	escaso := f.newProduct(t, ownerA, "Azúcar", "1.00", 1)

	_, err := f.ledger.CreateSale(context.Background(), inventory.CreateSaleInput{
		OwnerID: ownerA,
		Items: []invdomain.Line{
			{ProductID: ok, Qty: 3},
			{ProductID: escaso, Qty: 2},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, escaso, stockErr.ProductID)
	assert.Equal(t, "Azúcar", stockErr.ProductName)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 2, stockErr.Requested)

	assert.Equal(t, 10, f.product(t, ownerA, ok).Stock, "la primera línea no debe aplicarse")
	assert.Len(t, f.movements(t, ownerA, ok), 1, "solo el movimiento inicial")
	assert.Equal(t, 0, f.saleCount(t, ownerA))
}

func TestCreateSale_LineasRepetidasSeValidanCombinadas(t *testing.T) {
	f := newFixture(t, true)
	id := f.newProduct(t, ownerA, "Huevos", "0.50", 5)

	_, err := f.ledger.CreateSale(context.Background(), inventory.CreateSaleInput{
		OwnerID: ownerA,
		Items:   []invdomain.Line{{ProductID: id, Qty: 3}, {ProductID: id, Qty: 3}},
	})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)

	sale, err := f.ledger.CreateSale(context.Background(), inventory.CreateSaleInput{
		OwnerID: ownerA,
		Items:   []invdomain.Line{{ProductID: id, Qty: 2}, {ProductID: id, Qty: 3}},
	})
	require.NoError(t, err)
	assert.Len(t, sale.Items, 2, "cada línea conserva su SaleItem")
	assert.Equal(t, 0, f.product(t, ownerA, id).Stock)
	assert.Len(t, f.movements(t, ownerA, id), 3, "initial + un movimiento por línea")
}

func TestCreateSale_CantidadesEnormesNoDesbordanLaValidacion(t *testing.T) {
	f := newFixture(t, true)
	id := f.newProduct(t, ownerA, "Harina", "1.00", 10)

	cases := map[string][]invdomain.Line{
		"int máximo dos veces": {{ProductID: id, Qty: math.MaxInt}, {ProductID: id, Qty: math.MaxInt}},
		"línea sobre el tope":  {{ProductID: id, Qty: invdomain.MaxQuantity + 1}},
		"suma sobre el tope":   {{ProductID: id, Qty: invdomain.MaxQuantity}, {ProductID: id, Qty: 5}},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			sale, err := f.ledger.CreateSale(context.Background(), inventory.CreateSaleInput{OwnerID: ownerA, Items: lines})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, sale)
		})
	}

	// dentro del rango la demanda combinada cae en stock insuficiente
	_, err := f.ledger.CreateSale(context.Background(), inventory.CreateSaleInput{
		OwnerID: ownerA,
		Items:   []invdomain.Line{{ProductID: id, Qty: invdomain.MaxQuantity - 1}, {ProductID: id, Qty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.product(t, ownerA, id).Stock)
	assert.Equal(t, 0, f.saleCount(t, ownerA))
	assert.Len(t, f.movements(t, ownerA, id), 1, "solo el movimiento inicial")
}

func TestCreateSale_ProductoArchivadoOAjenoEsNotFound(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	archivado := f.newProduct(t, ownerA, "Viejo", "1.00", 5)
	require.NoError(t, f.products.Archive(ctx, ownerA, archivado))
	ajeno := f.newProduct(t, ownerB, "De B", "1.00", 5)

	for name, id := range map[string]string{"archivado": archivado, "ajeno": ajeno, "inexistente": "no-existe"} {
		t.Run(name, func(t *testing.T) {
			_, err := f.ledger.CreateSale(ctx, inventory.CreateSaleInput{
				OwnerID: ownerA,
				Items:   []invdomain.Line{{ProductID: id, Qty: 1}},
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrNotFound))
			assert.Contains(t, err.Error(), id)
		})
	}
	assert.Equal(t, 5, f.product(t, ownerB, ajeno).Stock)
}

func TestCreateSale_EntradaInvalida(t *testing.T) {
	f := newFixture(t, true)
	id := f.newProduct(t, ownerA, "Pan", "1.00", 5)

	cases := map[string]inventory.CreateSaleInput{
		"sin items":     {OwnerID: ownerA},
		"qty cero":      {OwnerID: ownerA, Items: []invdomain.Line{{ProductID: id, Qty: 0}}},
		"qty negativa":  {OwnerID: ownerA, Items: []invdomain.Line{{ProductID: id, Qty: -1}}},
		"sin producto":  {OwnerID: ownerA, Items: []invdomain.Line{{Qty: 1}}},
		"owner ausente": {Items: []invdomain.Line{{ProductID: id, Qty: 1}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.ledger.CreateSale(context.Background(), in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "err = %v", err)
		})
	}
	assert.Equal(t, 5, f.product(t, ownerA, id).Stock)
}

func TestCreateSale_MetodoDePagoVacioEsUnspecified(t *testing.T) {
	f := newFixture(t, true)
	id := f.newProduct(t, ownerA, "Pan", "1.00", 5)

	sale, err := f.ledger.CreateSale(context.Background(), inventory.CreateSaleInput{
		OwnerID:       ownerA,
		PaymentMethod: "   ",
		Items:         []invdomain.Line{{ProductID: id, Qty: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodUnspecified, sale.PaymentMethod)
}

func TestCreateSaleFromRequest_IgnoraPrecioDelCliente(t *testing.T) {
	f := newFixture(t, true)
	id := f.newProduct(t, ownerA, "Café", "7.25", 3)
	fake := dec("0.01")

	out, err := f.ledger.CreateSaleFromRequest(context.Background(), ownerA, dto.CreateSaleRequest{
		PaymentMethod: "card",
		Items:         []dto.SaleItemRequest{{ProductID: id, Qty: 2, UnitPrice: &fake}},
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, dec("7.25").Equal(out.Items[0].UnitPrice))
	assert.True(t, dec("14.50").Equal(out.Items[0].LineTotal))
	assert.True(t, dec("14.50").Equal(out.Total))
}

func TestCreateSale_ReintentaUnaVezAnteConflicto(t *testing.T) {
	f := newFixture(t, true)
	id := f.newProduct(t, ownerA, "Pan", "1.00", 5)
	f.runner.failures = 1

	_, err := f.ledger.CreateSale(context.Background(), inventory.CreateSaleInput{
		OwnerID: ownerA,
		Items:   []invdomain.Line{{ProductID: id, Qty: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.runner.calls)
	assert.Equal(t, 3, f.product(t, ownerA, id).Stock, "el intento abortado no deja rastro")
	assert.Equal(t, 1, f.saleCount(t, ownerA))
}

func TestCreateSale_SegundoConflictoSeDevuelve(t *testing.T) {
	f := newFixture(t, true)
	id := f.newProduct(t, ownerA, "Pan", "1.00", 5)
	f.runner.failures = 2

	_, err := f.ledger.CreateSale(context.Background(), inventory.CreateSaleInput{
		OwnerID: ownerA,
		Items:   []invdomain.Line{{ProductID: id, Qty: 2}},
	})
	assert.True(t, errors.Is(err, domain.ErrStorageConflict))
	assert.Equal(t, 2, f.runner.calls, "exactamente un reintento")
	assert.Equal(t, 5, f.product(t, ownerA, id).Stock)
	assert.Equal(t, 0, f.saleCount(t, ownerA))
}

func TestCreateSale_SinReintentoConfigurado(t *testing.T) {
	f := newFixture(t, false)
	id := f.newProduct(t, ownerA, "Pan", "1.00", 5)
	f.runner.failures = 1

	_, err := f.ledger.CreateSale(context.Background(), inventory.CreateSaleInput{
		OwnerID: ownerA,
		Items:   []invdomain.Line{{ProductID: id, Qty: 2}},
	})
	assert.True(t, errors.Is(err, domain.ErrStorageConflict))
	assert.Equal(t, 1, f.runner.calls)
}

func TestCreateSale_ConcurrenciaNoSobrevende(t *testing.T) {
	f := newFixture(t, true)
	id := f.newProduct(t, ownerA, "Oferta", "1.00", 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	okCount, stockErrs := 0, 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.CreateSale(context.Background(), inventory.CreateSaleInput{
				OwnerID: ownerA,
				Items:   []invdomain.Line{{ProductID: id, Qty: 1}},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				okCount++
			case errors.Is(err, domain.ErrInsufficientStock):
				stockErrs++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, okCount)
	assert.Equal(t, 15, stockErrs)
	p := f.product(t, ownerA, id)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, p.Stock, movementSum(f.movements(t, ownerA, id)))
}

func TestGetSale_LecturasIdempotentesYAisladasPorOwner(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	id := f.newProduct(t, ownerA, "Pan", "2.00", 5)
	sale, err := f.ledger.CreateSale(ctx, inventory.CreateSaleInput{
		OwnerID: ownerA,
		Items:   []invdomain.Line{{ProductID: id, Qty: 1}},
	})
	require.NoError(t, err)

	first, err := f.ledger.GetSale(ctx, ownerA, sale.ID)
	require.NoError(t, err)
	second, err := f.ledger.GetSale(ctx, ownerA, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 4, f.product(t, ownerA, id).Stock)

	_, err = f.ledger.GetSale(ctx, ownerB, sale.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListSales_MasRecientePrimero(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	id := f.newProduct(t, ownerA, "Pan", "1.00", 10)
	var ids []string
	for i := 0; i < 3; i++ {
		s, err := f.ledger.CreateSale(ctx, inventory.CreateSaleInput{OwnerID: ownerA, Items: []invdomain.Line{{ProductID: id, Qty: 1}}})
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	out, err := f.ledger.ListSales(ctx, ownerA, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, ids[2], out.Items[0].ID)
	assert.Equal(t, ids[1], out.Items[1].ID)

	other, err := f.ledger.ListSales(ctx, ownerB, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}
