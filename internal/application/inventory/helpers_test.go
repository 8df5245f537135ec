package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// stepClock avanza un segundo en cada lectura para que el orden temporal sea determinista.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// flakyRunner ejecuta la transacción completa y luego la aborta con conflicto
// en las primeras `failures` llamadas, como haría una BD serializable.
type flakyRunner struct {
	inner    inventory.TxRunner
	mu       sync.Mutex
	failures int
	calls    int
}

func (r *flakyRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.mu.Lock()
	r.calls++
	fail := r.calls <= r.failures
	r.mu.Unlock()
	return r.inner.Run(ctx, func(p repository.ProductRepository, s repository.SaleRepository, m repository.StockMovementRepository) error {
		if err := fn(p, s, m); err != nil {
			return err
		}
		if fail {
			return fmt.Errorf("%w: could not serialize access", domain.ErrStorageConflict)
		}
		return nil
	})
}

type fixture struct {
	store    *memory.Store
	runner   *flakyRunner
	ledger   *inventory.LedgerUseCase
	products *usecase.ProductUseCase
}

func newFixture(t *testing.T, retry bool) *fixture {
	t.Helper()
	store := memory.NewStore()
	runner := &flakyRunner{inner: memory.NewTxRunner(store)}
	clock := &stepClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	ledger := inventory.NewLedgerUseCase(runner, store.Products(), store.Sales(), store.Movements(), inventory.Options{
		RetryOnConflict: retry,
		Clock:           clock.Now,
	})
	return &fixture{
		store:    store,
		runner:   runner,
		ledger:   ledger,
		products: usecase.NewProductUseCase(store.Products(), memory.NewTxRunner(store)).WithClock(clock.Now),
	}
}

// newProduct crea un producto activo con stock inicial y devuelve su ID.
func (f *fixture) newProduct(t *testing.T, owner, name, price string, stock int) string {
	t.Helper()
	out, err := f.products.Create(context.Background(), owner, dto.CreateProductRequest{
		Name:  name,
		Price: dec(price),
		Cost:  dec("0"),
		Stock: stock,
	})
	require.NoError(t, err)
	return out.ID
}

func (f *fixture) product(t *testing.T, owner, id string) *entity.Product {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), owner, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (f *fixture) movements(t *testing.T, owner, id string) []*entity.StockMovement {
	t.Helper()
	movs, err := f.store.Movements().ListByProduct(context.Background(), owner, id)
	require.NoError(t, err)
	return movs
}

func (f *fixture) saleCount(t *testing.T, owner string) int {
	t.Helper()
	sales, err := f.store.Sales().ListByOwner(context.Background(), owner, 1000, 0)
	require.NoError(t, err)
	return len(sales)
}

// movementSum suma de changes del ledger de un producto.
func movementSum(movs []*entity.StockMovement) int {
	sum := 0
	for _, m := range movs {
		sum += m.Change
	}
	return sum
}

// memoryRunner runner transaccional sin fallos inyectados sobre el store del fixture.
func memoryRunner(f *fixture) inventory.TxRunner {
	return f.runner.inner
}
