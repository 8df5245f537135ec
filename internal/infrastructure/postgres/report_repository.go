package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes de ventas. Se usa con el pool
// (read committed): solo ve ventas confirmadas y no toma locks.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ListSaleHeaders ventas del owner con start <= created_at < end.
func (r *ReportRepo) ListSaleHeaders(ctx context.Context, ownerID string, start, end time.Time) ([]repository.SaleHeaderRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, created_at, payment_method, total
		FROM sales
		WHERE owner_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at, id`,
		ownerID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("list sale headers: %w", err)
	}
	defer rows.Close()
	out := make([]repository.SaleHeaderRow, 0)
	for rows.Next() {
		var h repository.SaleHeaderRow
		if err := rows.Scan(&h.SaleID, &h.CreatedAt, &h.PaymentMethod, &h.Total); err != nil {
			return nil, fmt.Errorf("scan sale header: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListSaleLines una fila por línea de venta con el nombre actual del producto.
func (r *ReportRepo) ListSaleLines(ctx context.Context, ownerID string, start, end time.Time) ([]repository.SaleLineRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.id, s.created_at, s.payment_method, s.total,
		       si.id, si.position, si.product_id, p.name, si.qty, si.unit_price
		FROM sales s
		JOIN sale_items si ON si.sale_id = s.id
		JOIN products p ON p.id = si.product_id
		WHERE s.owner_id = $1 AND s.created_at >= $2 AND s.created_at < $3
		ORDER BY s.id, si.position`,
		ownerID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	out := make([]repository.SaleLineRow, 0)
	for rows.Next() {
		var l repository.SaleLineRow
		if err := rows.Scan(&l.SaleID, &l.SaleCreatedAt, &l.PaymentMethod, &l.SaleTotal,
			&l.ItemID, &l.ItemPosition, &l.ProductID, &l.ProductName, &l.Qty, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
