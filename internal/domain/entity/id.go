package entity

import "github.com/google/uuid"

// NewID genera un UUIDv7: ordenable por tiempo de creación, así "id ascendente"
// equivale a orden de inserción en reportes y listados.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
