package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	SKU      *string         `json:"sku" validate:"omitempty,max=64"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Cost     decimal.Decimal `json:"cost" validate:"gte=0"`
	Stock    int             `json:"stock" validate:"min=0,max=2147483647"`
	StockMin int             `json:"stock_min" validate:"min=0,max=2147483647"`
}

// UpdateProductRequest actualización parcial (PATCH): solo se aplican los campos presentes.
// El stock no se modifica aquí; usar POST /api/products/:id/stock.
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU      *string          `json:"sku" validate:"omitempty,max=64"`
	Price    *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Cost     *decimal.Decimal `json:"cost" validate:"omitempty,gte=0"`
	StockMin *int             `json:"stock_min" validate:"omitempty,min=0,max=2147483647"`
	IsActive *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Name      string          `json:"name"`
	SKU       *string         `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Stock     int             `json:"stock"`
	StockMin  int             `json:"stock_min"`
	IsActive  bool            `json:"is_active"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
