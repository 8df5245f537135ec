package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ProductUseCase ciclo de vida del catálogo. Stock y costo solo cambian vía el ledger;
// la única excepción es el stock inicial, que se registra como movimiento RESTOCK "initial".
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{
		repo:     repo,
		txRunner: txRunner,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock fija el reloj usado para timestamps (tests).
func (uc *ProductUseCase) WithClock(now func() time.Time) *ProductUseCase {
	uc.now = now
	return uc
}

// Create crea un producto activo. El SKU, si viene, debe ser único por owner.
func (uc *ProductUseCase) Create(ctx context.Context, ownerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	if in.Price.IsNegative() {
		return nil, domain.Invalid("price", "no puede ser negativo")
	}
	if in.Cost.IsNegative() {
		return nil, domain.Invalid("cost", "no puede ser negativo")
	}
	if in.Stock < 0 || in.Stock > invdomain.MaxQuantity {
		return nil, domain.Invalid("stock", fmt.Sprintf("debe estar entre 0 y %d", invdomain.MaxQuantity))
	}
	if in.StockMin < 0 || in.StockMin > invdomain.MaxQuantity {
		return nil, domain.Invalid("stock_min", fmt.Sprintf("debe estar entre 0 y %d", invdomain.MaxQuantity))
	}

	now := uc.now()
	product := &entity.Product{
		ID:        entity.NewID(),
		OwnerID:   ownerID,
		Name:      name,
		SKU:       normalizeSKU(in.SKU),
		Price:     in.Price,
		Cost:      in.Cost,
		Stock:     in.Stock,
		StockMin:  in.StockMin,
		Status:    entity.ProductStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error {
		if product.SKU != nil {
			existing, err := productRepo.GetByOwnerAndSKU(ctx, ownerID, *product.SKU)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrConflict
			}
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if product.Stock == 0 {
			return nil
		}
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:        entity.NewID(),
			OwnerID:   ownerID,
			ProductID: product.ID,
			Change:    product.Stock,
			Reason:    entity.MovementReasonRestock,
			Reference: entity.MovementReferenceInitial,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return inventory.ToProductResponse(product), nil
}

// GetByID obtiene un producto del owner (activo o archivado).
func (uc *ProductUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ProductNotFound(id)
	}
	return inventory.ToProductResponse(product), nil
}

// Update aplica un PATCH campo a campo. No permite modificar Stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	patch := entity.ProductPatch{
		Name:     in.Name,
		SKU:      in.SKU,
		Price:    in.Price,
		Cost:     in.Cost,
		StockMin: in.StockMin,
		Active:   in.IsActive,
	}
	product, err := uc.applyPatch(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}
	return inventory.ToProductResponse(product), nil
}

// Archive baja lógica: el producto deja de venderse pero su historial se conserva.
func (uc *ProductUseCase) Archive(ctx context.Context, ownerID, id string) error {
	inactive := false
	_, err := uc.applyPatch(ctx, ownerID, id, entity.ProductPatch{Active: &inactive})
	return err
}

func (uc *ProductUseCase) applyPatch(ctx context.Context, ownerID, id string, patch entity.ProductPatch) (*entity.Product, error) {
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		_ repository.StockMovementRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ProductNotFound(id)
		}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return domain.Invalid("name", "no puede quedar vacío")
			}
			p.Name = name
		}
		if patch.SKU != nil {
			sku := normalizeSKU(patch.SKU)
			if sku != nil && (p.SKU == nil || *p.SKU != *sku) {
				existing, err := productRepo.GetByOwnerAndSKU(ctx, ownerID, *sku)
				if err != nil {
					return err
				}
				if existing != nil && existing.ID != p.ID {
					return domain.ErrConflict
				}
			}
			p.SKU = sku
		}
		if patch.Price != nil {
			if patch.Price.IsNegative() {
				return domain.Invalid("price", "no puede ser negativo")
			}
			p.Price = *patch.Price
		}
		if patch.Cost != nil {
			if patch.Cost.IsNegative() {
				return domain.Invalid("cost", "no puede ser negativo")
			}
			p.Cost = *patch.Cost
		}
		if patch.StockMin != nil {
			if *patch.StockMin < 0 || *patch.StockMin > invdomain.MaxQuantity {
				return domain.Invalid("stock_min", fmt.Sprintf("debe estar entre 0 y %d", invdomain.MaxQuantity))
			}
			p.StockMin = *patch.StockMin
		}
		if patch.Active != nil {
			if *patch.Active {
				p.Status = entity.ProductStatusActive
			} else {
				p.Status = entity.ProductStatusArchived
			}
		}
		p.UpdatedAt = uc.now()
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	return product, err
}

// List lista productos del owner con paginación, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, ownerID string, includeInactive bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOwner(ctx, ownerID, includeInactive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *inventory.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// LowStock productos activos con stock <= stock_min.
func (uc *ProductUseCase) LowStock(ctx context.Context, ownerID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *inventory.ToProductResponse(p))
	}
	return items, nil
}

// normalizeSKU recorta espacios; "" equivale a sin SKU.
func normalizeSKU(sku *string) *string {
	if sku == nil {
		return nil
	}
	s := strings.TrimSpace(*sku)
	if s == "" {
		return nil
	}
	return &s
}
