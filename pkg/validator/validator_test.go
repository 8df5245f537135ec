package validator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/pkg/validator"
)

type linea struct {
	ProductID string `json:"product_id" validate:"required"`
	Qty       int    `json:"qty" validate:"gt=0"`
}

type pedido struct {
	Price decimal.Decimal  `json:"price" validate:"gte=0"`
	Cost  *decimal.Decimal `json:"cost" validate:"omitempty,gte=0"`
	Items []linea          `json:"items" validate:"required,min=1,dive"`
}

func TestValidateStruct_Valido(t *testing.T) {
	cost := decimal.RequireFromString("0")
	errs := validator.ValidateStruct(&pedido{
		Price: decimal.RequireFromString("1.50"),
		Cost:  &cost,
		Items: []linea{{ProductID: "p1", Qty: 1}},
	})
	assert.Empty(t, errs)
}

func TestValidateStruct_DecimalNegativoYLineas(t *testing.T) {
	errs := validator.ValidateStruct(&pedido{
		Price: decimal.RequireFromString("-0.01"),
		Items: []linea{{ProductID: "", Qty: 0}},
	})
	require.Len(t, errs, 3)

	msg := validator.Message(errs)
	assert.Contains(t, msg, "price: gte=0")
	assert.Contains(t, msg, "items[0].product_id: required")
	assert.Contains(t, msg, "items[0].qty: gt=0")
}
