package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ReportRepo implementa repository.ReportRepository sobre el estado confirmado.
type ReportRepo struct {
	store *Store
}

var _ repository.ReportRepository = (*ReportRepo)(nil)

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func (r *ReportRepo) ListSaleHeaders(_ context.Context, ownerID string, start, end time.Time) ([]repository.SaleHeaderRow, error) {
	rows := make([]repository.SaleHeaderRow, 0)
	r.store.view(nil, func(st *state) {
		for _, s := range st.sales {
			if s.OwnerID != ownerID || !inRange(s.CreatedAt, start, end) {
				continue
			}
			rows = append(rows, repository.SaleHeaderRow{
				SaleID:        s.ID,
				CreatedAt:     s.CreatedAt,
				PaymentMethod: s.PaymentMethod,
				Total:         s.Total,
			})
		}
	})
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[i].SaleID < rows[j].SaleID
	})
	return rows, nil
}

func (r *ReportRepo) ListSaleLines(_ context.Context, ownerID string, start, end time.Time) ([]repository.SaleLineRow, error) {
	rows := make([]repository.SaleLineRow, 0)
	r.store.view(nil, func(st *state) {
		for _, s := range st.sales {
			if s.OwnerID != ownerID || !inRange(s.CreatedAt, start, end) {
				continue
			}
			for _, it := range s.Items {
				rows = append(rows, repository.SaleLineRow{
					SaleID:        s.ID,
					SaleCreatedAt: s.CreatedAt,
					PaymentMethod: s.PaymentMethod,
					SaleTotal:     s.Total,
					ItemID:        it.ID,
					ItemPosition:  it.Position,
					ProductID:     it.ProductID,
					ProductName:   st.products[it.ProductID].Name,
					Qty:           it.Qty,
					UnitPrice:     it.UnitPrice,
				})
			}
		}
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SaleID != rows[j].SaleID {
			return rows[i].SaleID < rows[j].SaleID
		}
		return rows[i].ItemPosition < rows[j].ItemPosition
	})
	return rows, nil
}
