package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// AdjustStockInput ajuste manual de stock. Change positivo repone, negativo descuenta.
// UnitCost solo aplica a entradas y recalcula el costo promedio ponderado del producto.
type AdjustStockInput struct {
	OwnerID   string
	ProductID string
	Change    int
	Reason    string // RESTOCK o ADJUSTMENT; vacío = ADJUSTMENT
	Note      string
	UnitCost  *decimal.Decimal
}

// AdjustStock bloquea el producto, valida que el stock resultante no sea negativo,
// actualiza stock (y costo si corresponde) y registra el movimiento con referencia "manual".
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, input AdjustStockInput) (*entity.Product, error) {
	if input.OwnerID == "" {
		return nil, domain.Invalid("owner_id", "requerido")
	}
	if input.Change == 0 {
		return nil, domain.Invalid("change", "debe ser distinto de cero")
	}
	if input.Change > invdomain.MaxQuantity || input.Change < -invdomain.MaxQuantity {
		return nil, domain.Invalid("change", fmt.Sprintf("valor absoluto no puede superar %d", invdomain.MaxQuantity))
	}
	reason := strings.ToUpper(strings.TrimSpace(input.Reason))
	if reason == "" {
		reason = entity.MovementReasonAdjustment
	}
	// SALE queda reservado a CreateSale para que toda salida por venta tenga su Sale.
	if !entity.IsValidMovementReason(reason) || reason == entity.MovementReasonSale {
		return nil, domain.Invalid("reason", "debe ser RESTOCK o ADJUSTMENT")
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return nil, domain.Invalid("unit_cost", "no puede ser negativo")
	}

	var updated *entity.Product
	err := uc.runTx(ctx, "adjust_stock", func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, input.OwnerID, input.ProductID)
		if err != nil {
			return err
		}
		if p == nil || !p.IsActive() {
			return domain.ProductNotFound(input.ProductID)
		}
		newStock := p.Stock + input.Change
		if newStock > invdomain.MaxQuantity {
			return domain.Invalid("change", fmt.Sprintf("el stock resultante superaría %d", invdomain.MaxQuantity))
		}
		if newStock < 0 {
			return &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.Stock,
				Requested:   -input.Change,
			}
		}

		now := uc.now()
		if input.Change > 0 && input.UnitCost != nil {
			newCost := invdomain.CostCalculator(p.Stock, p.Cost, input.Change, *input.UnitCost)
			if err := productRepo.UpdateCost(ctx, input.OwnerID, p.ID, newCost); err != nil {
				return err
			}
			p.Cost = newCost
		}
		if err := productRepo.UpdateStock(ctx, input.OwnerID, p.ID, newStock); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:        entity.NewID(),
			OwnerID:   input.OwnerID,
			ProductID: p.ID,
			Change:    input.Change,
			Reason:    reason,
			Reference: entity.MovementReferenceManual,
			Note:      strings.TrimSpace(input.Note),
			CreatedAt: now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		p.Stock = newStock
		p.UpdatedAt = now
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("owner_id", input.OwnerID).
		Str("product_id", updated.ID).
		Int("change", input.Change).
		Str("reason", reason).
		Int("stock", updated.Stock).
		Msg("ajuste de stock registrado")
	return updated, nil
}

// AdjustStockFromRequest adapta el request HTTP al caso de uso AdjustStock.
func (uc *LedgerUseCase) AdjustStockFromRequest(ctx context.Context, ownerID, productID string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	p, err := uc.AdjustStock(ctx, AdjustStockInput{
		OwnerID:   ownerID,
		ProductID: productID,
		Change:    in.Change,
		Reason:    in.Reason,
		Note:      in.Note,
		UnitCost:  in.UnitCost,
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}
