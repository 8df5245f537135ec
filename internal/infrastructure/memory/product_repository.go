package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct {
	store *Store
	tx    *state
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.store.mutate(r.tx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrConflict
		}
		if p.SKU != nil && skuTaken(st, p.OwnerID, *p.SKU, p.ID) {
			return domain.ErrConflict
		}
		st.products[p.ID] = copyProduct(*p)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Product, error) {
	var out *entity.Product
	r.store.view(r.tx, func(st *state) {
		if p, ok := st.products[id]; ok && p.OwnerID == ownerID {
			cp := copyProduct(p)
			out = &cp
		}
	})
	return out, nil
}

// GetForUpdate dentro de una transacción equivale a GetByID: el runner ya tiene el lock exclusivo.
func (r *ProductRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, ownerID, id)
}

func (r *ProductRepo) GetByOwnerAndSKU(_ context.Context, ownerID, sku string) (*entity.Product, error) {
	var out *entity.Product
	r.store.view(r.tx, func(st *state) {
		for _, p := range st.products {
			if p.OwnerID == ownerID && p.SKU != nil && *p.SKU == sku {
				cp := copyProduct(p)
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.store.mutate(r.tx, func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok || cur.OwnerID != p.OwnerID {
			return domain.ProductNotFound(p.ID)
		}
		if p.SKU != nil && skuTaken(st, p.OwnerID, *p.SKU, p.ID) {
			return domain.ErrConflict
		}
		// el stock no se toca desde Update
		upd := copyProduct(*p)
		upd.Stock = cur.Stock
		upd.CreatedAt = cur.CreatedAt
		st.products[p.ID] = upd
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, ownerID, id string, stock int) error {
	return r.store.mutate(r.tx, func(st *state) error {
		p, ok := st.products[id]
		if !ok || p.OwnerID != ownerID {
			return domain.ProductNotFound(id)
		}
		if stock < 0 {
			return domain.Invalid("stock", "no puede ser negativo")
		}
		p.Stock = stock
		p.UpdatedAt = r.store.now()
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) UpdateCost(_ context.Context, ownerID, id string, cost decimal.Decimal) error {
	return r.store.mutate(r.tx, func(st *state) error {
		p, ok := st.products[id]
		if !ok || p.OwnerID != ownerID {
			return domain.ProductNotFound(id)
		}
		p.Cost = cost
		p.UpdatedAt = r.store.now()
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) ListByOwner(_ context.Context, ownerID string, includeInactive bool, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	r.store.view(r.tx, func(st *state) {
		list = filterProducts(st, func(p entity.Product) bool {
			return p.OwnerID == ownerID && (includeInactive || p.IsActive())
		})
	})
	// más recientes primero
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return paginate(list, limit, offset), nil
}

func (r *ProductRepo) ListLowStock(_ context.Context, ownerID string) ([]*entity.Product, error) {
	var list []*entity.Product
	r.store.view(r.tx, func(st *state) {
		list = filterProducts(st, func(p entity.Product) bool {
			return p.OwnerID == ownerID && p.IsActive() && p.IsLowStock()
		})
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Stock != list[j].Stock {
			return list[i].Stock < list[j].Stock
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func filterProducts(st *state, keep func(entity.Product) bool) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range st.products {
		if keep(p) {
			cp := copyProduct(p)
			out = append(out, &cp)
		}
	}
	return out
}

func skuTaken(st *state, ownerID, sku, exceptID string) bool {
	for _, p := range st.products {
		if p.ID != exceptID && p.OwnerID == ownerID && p.SKU != nil && *p.SKU == sku {
			return true
		}
	}
	return false
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
