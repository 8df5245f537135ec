package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// CreateSaleInput venta propuesta: método de pago y líneas producto/cantidad en el orden enviado.
type CreateSaleInput struct {
	OwnerID       string
	PaymentMethod string
	Items         []invdomain.Line
}

// CreateSale valida disponibilidad, congela precios, descuenta stock y registra un
// movimiento SALE por línea, todo en una única transacción.
//
// Las líneas repetidas de un mismo producto se validan como demanda combinada
// contra el stock bloqueado; cada línea conserva su SaleItem y su movimiento.
// Las filas de producto se bloquean en orden de ID para evitar deadlocks entre ventas
// concurrentes; los errores de validación se reportan en el orden de las líneas.
func (uc *LedgerUseCase) CreateSale(ctx context.Context, input CreateSaleInput) (*entity.Sale, error) {
	if input.OwnerID == "" {
		return nil, domain.Invalid("owner_id", "requerido")
	}
	if len(input.Items) == 0 {
		return nil, domain.Invalid("items", "la venta debe tener al menos una línea")
	}
	for _, it := range input.Items {
		if it.ProductID == "" {
			return nil, domain.Invalid("product_id", "requerido")
		}
		if it.Qty <= 0 {
			return nil, domain.Invalid("qty", "debe ser mayor que cero")
		}
		if it.Qty > invdomain.MaxQuantity {
			return nil, domain.Invalid("qty", fmt.Sprintf("no puede superar %d", invdomain.MaxQuantity))
		}
	}
	paymentMethod := normalizePaymentMethod(input.PaymentMethod)
	order, demand, err := invdomain.QuantityByProduct(input.Items)
	if err != nil {
		return nil, err
	}

	var created *entity.Sale
	err = uc.runTx(ctx, "create_sale", func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error {
		lockOrder := append([]string(nil), order...)
		sort.Strings(lockOrder)
		products := make(map[string]*entity.Product, len(lockOrder))
		for _, id := range lockOrder {
			p, err := productRepo.GetForUpdate(ctx, input.OwnerID, id)
			if err != nil {
				return err
			}
			products[id] = p
		}

		for _, id := range order {
			p := products[id]
			if p == nil || !p.IsActive() {
				return domain.ProductNotFound(id)
			}
			if p.Stock < demand[id] {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   p.Stock,
					Requested:   demand[id],
				}
			}
		}

		now := uc.now()
		sale := &entity.Sale{
			ID:            entity.NewID(),
			OwnerID:       input.OwnerID,
			PaymentMethod: paymentMethod,
			CreatedAt:     now,
			Items:         make([]entity.SaleItem, 0, len(input.Items)),
		}
		for i, it := range input.Items {
			sale.Items = append(sale.Items, entity.SaleItem{
				ID:        entity.NewID(),
				SaleID:    sale.ID,
				ProductID: it.ProductID,
				Position:  i + 1,
				Qty:       it.Qty,
				UnitPrice: products[it.ProductID].Price,
			})
		}
		sale.Total = invdomain.SaleTotal(sale.Items)

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		reference := entity.SaleReference(sale.ID)
		for _, it := range sale.Items {
			p := products[it.ProductID]
			p.Stock -= it.Qty
			mov := &entity.StockMovement{
				ID:        entity.NewID(),
				OwnerID:   input.OwnerID,
				ProductID: it.ProductID,
				Change:    -it.Qty,
				Reason:    entity.MovementReasonSale,
				Reference: reference,
				CreatedAt: now,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
		}
		for _, id := range order {
			p := products[id]
			if err := productRepo.UpdateStock(ctx, input.OwnerID, id, p.Stock); err != nil {
				return err
			}
		}

		created = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("owner_id", created.OwnerID).
		Str("sale_id", created.ID).
		Int("items", len(created.Items)).
		Str("total", created.Total.StringFixed(2)).
		Msg("venta registrada")
	return created, nil
}

// CreateSaleFromRequest adapta el request HTTP al caso de uso CreateSale.
// Los precios enviados por el cliente se descartan.
func (uc *LedgerUseCase) CreateSaleFromRequest(ctx context.Context, ownerID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	lines := make([]invdomain.Line, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, invdomain.Line{ProductID: it.ProductID, Qty: it.Qty})
	}
	sale, err := uc.CreateSale(ctx, CreateSaleInput{
		OwnerID:       ownerID,
		PaymentMethod: in.PaymentMethod,
		Items:         lines,
	})
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

func normalizePaymentMethod(pm string) string {
	pm = strings.TrimSpace(pm)
	if pm == "" {
		return entity.PaymentMethodUnspecified
	}
	return pm
}
