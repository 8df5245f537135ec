package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockMovementRepo implementa repository.StockMovementRepository (append-only).
type StockMovementRepo struct {
	store *Store
	tx    *state
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.store.mutate(r.tx, func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *StockMovementRepo) ListByProduct(_ context.Context, ownerID, productID string) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0)
	r.store.view(r.tx, func(st *state) {
		for _, m := range st.movements {
			if m.OwnerID == ownerID && m.ProductID == productID {
				cp := m
				out = append(out, &cp)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
