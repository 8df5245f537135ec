package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// LedgerUseCase motor transaccional del ledger de stock: ventas, ajustes manuales
// y consulta de movimientos. Cada operación que muta stock corre en una sola
// transacción (TxRunner) y se confirma completa o no se aplica.
type LedgerUseCase struct {
	txRunner        TxRunner
	productRepo     repository.ProductRepository
	saleRepo        repository.SaleRepository
	movRepo         repository.StockMovementRepository
	log             *logger.Logger
	retryOnConflict bool
	now             func() time.Time
}

// Options ajustes opcionales del motor.
type Options struct {
	// RetryOnConflict reintenta una única vez la operación completa ante domain.ErrStorageConflict.
	RetryOnConflict bool
	Logger          *logger.Logger
	// Clock permite fijar la hora en tests; por defecto time.Now en UTC.
	Clock func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
	opts Options,
) *LedgerUseCase {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &LedgerUseCase{
		txRunner:        txRunner,
		productRepo:     productRepo,
		saleRepo:        saleRepo,
		movRepo:         movRepo,
		log:             log.Named("ledger"),
		retryOnConflict: opts.RetryOnConflict,
		now:             clock,
	}
}

// runTx ejecuta fn en una transacción y, si la BD reporta conflicto de concurrencia,
// la reintenta exactamente una vez. fn debe construir todo su estado desde cero en cada intento.
func (uc *LedgerUseCase) runTx(ctx context.Context, op string, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	err := uc.txRunner.Run(ctx, fn)
	if err == nil || !uc.retryOnConflict || !errors.Is(err, domain.ErrStorageConflict) {
		return err
	}
	uc.log.Warn().Str("op", op).Err(err).Msg("conflicto de concurrencia, reintentando una vez")
	return uc.txRunner.Run(ctx, fn)
}
