package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, owner_id, name, sku, price, cost, stock, stock_min, status, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.SKU, &p.Price, &p.Cost,
		&p.Stock, &p.StockMin, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OwnerID, p.Name, p.SKU, p.Price, p.Cost,
		p.Stock, p.StockMin, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetByID obtiene un producto del owner por ID.
func (r *ProductRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get product",
		`SELECT `+productColumns+` FROM products WHERE owner_id = $1 AND id = $2`, ownerID, id)
}

// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get product for update",
		`SELECT `+productColumns+` FROM products WHERE owner_id = $1 AND id = $2 FOR UPDATE`, ownerID, id)
}

// GetByOwnerAndSKU obtiene un producto por owner y SKU.
func (r *ProductRepo) GetByOwnerAndSKU(ctx context.Context, ownerID, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by sku",
		`SELECT `+productColumns+` FROM products WHERE owner_id = $1 AND sku = $2`, ownerID, sku)
}

// Update actualiza los datos de catálogo. No modifica Stock (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if !isUUID(p.ID) {
		return domain.ProductNotFound(p.ID)
	}
	query := `
		UPDATE products SET name = $3, sku = $4, price = $5, cost = $6, stock_min = $7, status = $8, updated_at = $9
		WHERE owner_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.OwnerID, p.ID, p.Name, p.SKU, p.Price, p.Cost, p.StockMin, p.Status, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ProductNotFound(p.ID)
	}
	return nil
}

// UpdateStock fija el stock (usado por el motor de ledger dentro de su transacción).
func (r *ProductRepo) UpdateStock(ctx context.Context, ownerID, id string, stock int) error {
	if !isUUID(id) {
		return domain.ProductNotFound(id)
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $3, updated_at = now() WHERE owner_id = $1 AND id = $2`,
		ownerID, id, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ProductNotFound(id)
	}
	return nil
}

// UpdateCost actualiza solo el costo del producto (usado por el motor de inventario).
func (r *ProductRepo) UpdateCost(ctx context.Context, ownerID, id string, cost decimal.Decimal) error {
	if !isUUID(id) {
		return domain.ProductNotFound(id)
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET cost = $3, updated_at = now() WHERE owner_id = $1 AND id = $2`,
		ownerID, id, cost,
	)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ProductNotFound(id)
	}
	return nil
}

// ListByOwner lista productos del owner con paginación, más recientes primero.
func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID string, includeInactive bool, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE owner_id = $1 AND ($2 OR status = 'ACTIVE')
		ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`
	return r.list(ctx, query, ownerID, includeInactive, limit, offset)
}

// ListLowStock productos activos con stock <= stock_min.
func (r *ProductRepo) ListLowStock(ctx context.Context, ownerID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE owner_id = $1 AND status = 'ACTIVE' AND stock <= stock_min
		ORDER BY stock ASC, name ASC`
	return r.list(ctx, query, ownerID)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
