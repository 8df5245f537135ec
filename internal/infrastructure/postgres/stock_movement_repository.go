package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo ledger append-only sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. No existe Update ni Delete.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	var note *string
	if m.Note != "" {
		note = &m.Note
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, owner_id, product_id, change, reason, reference, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.OwnerID, m.ProductID, m.Change, m.Reason, m.Reference, note, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct movimientos del producto, más recientes primero (empate por id descendente).
func (r *StockMovementRepo) ListByProduct(ctx context.Context, ownerID, productID string) ([]*entity.StockMovement, error) {
	if !isUUID(productID) {
		return []*entity.StockMovement{}, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, owner_id, product_id, change, reason, reference, COALESCE(note, ''), created_at
		FROM stock_movements WHERE owner_id = $1 AND product_id = $2
		ORDER BY created_at DESC, id DESC`,
		ownerID, productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.ProductID, &m.Change, &m.Reason, &m.Reference, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
