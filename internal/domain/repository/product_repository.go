package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las lecturas van filtradas por owner: un producto ajeno se comporta como inexistente.
// Los Get devuelven (nil, nil) cuando no hay fila.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Product, error)
	GetByOwnerAndSKU(ctx context.Context, ownerID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, ownerID, id string, stock int) error
	UpdateCost(ctx context.Context, ownerID, id string, cost decimal.Decimal) error
	ListByOwner(ctx context.Context, ownerID string, includeInactive bool, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, ownerID string) ([]*entity.Product, error)
}
