package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ListMovements historial del ledger de un producto, más reciente primero.
// Incluye productos archivados: el historial no se pierde al archivar.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, ownerID, productID string) ([]*entity.StockMovement, error) {
	p, err := uc.productRepo.GetByID(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ProductNotFound(productID)
	}
	return uc.movRepo.ListByProduct(ctx, ownerID, productID)
}

// ListMovementsResponse versión DTO de ListMovements.
func (uc *LedgerUseCase) ListMovementsResponse(ctx context.Context, ownerID, productID string) ([]dto.StockMovementResponse, error) {
	movs, err := uc.ListMovements(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// GetSale devuelve la venta con sus líneas. Ventas de otro dueño se reportan como inexistentes.
func (uc *LedgerUseCase) GetSale(ctx context.Context, ownerID, saleID string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, ownerID, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.SaleNotFound(saleID)
	}
	return ToSaleResponse(s), nil
}

// ListSales lista paginada de ventas, más reciente primero.
func (uc *LedgerUseCase) ListSales(ctx context.Context, ownerID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.ListByOwner(ctx, ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(sales)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, s := range sales {
		out.Items = append(out.Items, *ToSaleResponse(s))
	}
	return out, nil
}
