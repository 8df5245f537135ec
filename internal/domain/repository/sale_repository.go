package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas. No hay Update: las ventas son inmutables.
type SaleRepository interface {
	// Create inserta la cabecera y todas sus líneas.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Sale, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Sale, error)
}
