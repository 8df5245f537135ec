package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// isUUID indica si id puede compararse contra una columna UUID. Un id mal formado
// no existe: los repositorios lo tratan como "no encontrado" sin consultar la BD.
func isUUID(id string) bool {
	// PostgreSQL no acepta la forma urn:uuid:
	if strings.HasPrefix(strings.ToLower(id), "urn:") {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isSerializationFailure detecta conflictos de concurrencia reintentables (40001, 40P01).
func isSerializationFailure(err error) bool {
	switch pgCode(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		return true
	}
	return false
}

// mapTxError traduce errores de PostgreSQL a errores de dominio; el resto pasa intacto.
func mapTxError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isSerializationFailure(err):
		return fmt.Errorf("%w: %v", domain.ErrStorageConflict, err)
	case pgCode(err) == codeCheckViolation:
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return err
}
