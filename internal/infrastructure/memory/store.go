// Package memory implementa los puertos de persistencia en memoria. Se usa con
// STORAGE_DRIVER=memory y como doble transaccional en los tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// state snapshot completo de los datos. Las transacciones trabajan sobre una copia
// y la publican solo al confirmar.
type state struct {
	products  map[string]entity.Product
	sales     map[string]entity.Sale
	movements []entity.StockMovement
}

func newState() *state {
	return &state{
		products: make(map[string]entity.Product),
		sales:    make(map[string]entity.Sale),
	}
}

func (s *state) clone() *state {
	cp := &state{
		products:  make(map[string]entity.Product, len(s.products)),
		sales:     make(map[string]entity.Sale, len(s.sales)),
		movements: make([]entity.StockMovement, len(s.movements), len(s.movements)+8),
	}
	for k, v := range s.products {
		cp.products[k] = copyProduct(v)
	}
	for k, v := range s.sales {
		cp.sales[k] = copySale(v)
	}
	copy(cp.movements, s.movements)
	return cp
}

func copyProduct(p entity.Product) entity.Product {
	if p.SKU != nil {
		sku := *p.SKU
		p.SKU = &sku
	}
	return p
}

func copySale(s entity.Sale) entity.Sale {
	s.Items = append([]entity.SaleItem(nil), s.Items...)
	return s
}

// Store almacenamiento en memoria. Las lecturas fuera de transacción toman el lock
// de lectura; cada transacción toma el lock de escritura durante toda su duración,
// lo que equivale a aislamiento serializable.
type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState(), now: func() time.Time { return time.Now().UTC() }}
}

// WithClock fija el reloj con el que se sellan los updated_at de stock y costo.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// view ejecuta fn sobre el estado confirmado (o sobre tx si no es nil).
func (s *Store) view(tx *state, fn func(*state)) {
	if tx != nil {
		fn(tx)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

// mutate ejecuta fn sobre tx, o sobre el estado confirmado bajo lock de escritura.
func (s *Store) mutate(tx *state, fn func(*state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{store: s} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{store: s} }

// Movements repositorio del ledger fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{store: s} }

// Reports repositorio de reportes (solo lectura sobre datos confirmados).
func (s *Store) Reports() *ReportRepo { return &ReportRepo{store: s} }

// TxRunner implementa inventory.TxRunner sobre el Store.
type TxRunner struct {
	store *Store
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner transaccional en memoria.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn sobre una copia del estado. Si fn devuelve error (o el contexto se
// canceló) la copia se descarta y nada queda aplicado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := r.store.st.clone()
	err := fn(
		&ProductRepo{store: r.store, tx: tx},
		&SaleRepo{store: r.store, tx: tx},
		&StockMovementRepo{store: r.store, tx: tx},
	)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.st = tx
	return nil
}
