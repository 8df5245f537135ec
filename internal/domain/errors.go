package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrStorageConflict indica una modificación concurrente detectada por la transacción (reintentable).
	ErrStorageConflict = errors.New("conflicto de concurrencia, reintente la operación")
)

// NotFoundError identifica el recurso que no existe o que no pertenece al owner.
// Ambos casos se reportan igual para no filtrar la existencia del recurso.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ProductNotFound construye el error para un producto inexistente, ajeno o archivado.
func ProductNotFound(id string) error {
	return &NotFoundError{Resource: "producto", ID: id}
}

// SaleNotFound construye el error para una venta inexistente o ajena.
func SaleNotFound(id string) error {
	return &NotFoundError{Resource: "venta", ID: id}
}

// InsufficientStockError detalle para diagnóstico: producto, disponible y solicitado.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para '%s'. Disponible: %d, pedido: %d", e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidInputError describe qué campo de la entrada es inválido.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// Invalid atajo para construir un InvalidInputError.
func Invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
