package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// SaleRepo implementa repository.SaleRepository.
type SaleRepo struct {
	store *Store
	tx    *state
}

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.store.mutate(r.tx, func(st *state) error {
		if _, ok := st.sales[sale.ID]; ok {
			return domain.ErrConflict
		}
		st.sales[sale.ID] = copySale(*sale)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.store.view(r.tx, func(st *state) {
		if s, ok := st.sales[id]; ok && s.OwnerID == ownerID {
			cp := copySale(s)
			out = &cp
		}
	})
	return out, nil
}

func (r *SaleRepo) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*entity.Sale, error) {
	list := make([]*entity.Sale, 0)
	r.store.view(r.tx, func(st *state) {
		for _, s := range st.sales {
			if s.OwnerID == ownerID {
				cp := copySale(s)
				list = append(list, &cp)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return paginate(list, limit, offset), nil
}
