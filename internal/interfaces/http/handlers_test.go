package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// buildApp app completa sobre el almacenamiento en memoria.
func buildApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	ledger := inventory.NewLedgerUseCase(runner, store.Products(), store.Sales(), store.Movements(), inventory.Options{RetryOnConflict: true})
	return apphttp.NewApp("stock-ledger-test", logger.Nop(), apphttp.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(store.Products(), runner),
		Ledger:        ledger,
		Replenishment: inventory.NewReplenishmentUseCase(store.Products(), store.Reports()),
		Reports:       analytics.NewReportUseCase(store.Reports(), nil),
		JWTSecret:     testJWTSecret,
		JWTIssuer:     testIssuer,
	})
}

func do(t *testing.T, app *fiber.App, method, path, owner string, body interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if owner != "" {
		req.Header.Set("Authorization", bearer(t, owner))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createProduct(t *testing.T, app *fiber.App, owner string, body fiber.Map) dto.ProductResponse {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/products", owner, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.ProductResponse
	decodeInto(t, resp, &out)
	return out
}

func TestHealth_SinToken(t *testing.T) {
	app := buildApp(t)
	resp := do(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductos_CrearConsultarArchivar(t *testing.T) {
	app := buildApp(t)

	p := createProduct(t, app, testOwnerID, fiber.Map{"name": "Café", "sku": "CAF-1", "price": "12.50", "cost": "8", "stock": 10, "stock_min": 2})
	assert.Equal(t, 10, p.Stock)
	assert.True(t, decimal.RequireFromString("12.50").Equal(p.Price))

	resp := do(t, app, http.MethodPost, "/api/products", testOwnerID, fiber.Map{"name": "Otro", "sku": "CAF-1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/products", testOwnerID, fiber.Map{"name": "", "price": "-1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody dto.ErrorResponse
	decodeInto(t, resp, &errBody)
	assert.Equal(t, "VALIDATION", errBody.Code)

	resp = do(t, app, http.MethodGet, "/api/products/"+p.ID, "owner-ajeno", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/products/"+p.ID, testOwnerID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/products", testOwnerID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	decodeInto(t, resp, &list)
	assert.Empty(t, list.Items)

	resp = do(t, app, http.MethodGet, "/api/products?include_inactive=true", testOwnerID, nil)
	decodeInto(t, resp, &list)
	assert.Len(t, list.Items, 1)
}

func TestVentas_CrearYStockInsuficiente(t *testing.T) {
	app := buildApp(t)
	p := createProduct(t, app, testOwnerID, fiber.Map{"name": "Pan", "price": "2.50", "stock": 3})

	resp := do(t, app, http.MethodPost, "/api/sales", testOwnerID, fiber.Map{
		"payment_method": "cash",
		"items":          []fiber.Map{{"product_id": p.ID, "qty": 2, "unit_price": "0.01"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale dto.SaleResponse
	decodeInto(t, resp, &sale)
	assert.True(t, decimal.RequireFromString("5.00").Equal(sale.Total), "el precio del cliente se ignora")
	require.Len(t, sale.Items, 1)

	resp = do(t, app, http.MethodPost, "/api/sales", testOwnerID, fiber.Map{
		"items": []fiber.Map{{"product_id": p.ID, "qty": 5}},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var stockErr dto.InsufficientStockResponse
	decodeInto(t, resp, &stockErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", stockErr.Code)
	assert.Equal(t, p.ID, stockErr.ProductID)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	resp = do(t, app, http.MethodPost, "/api/sales", testOwnerID, fiber.Map{"items": []fiber.Map{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/sales/"+sale.ID, testOwnerID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = do(t, app, http.MethodGet, "/api/sales/"+sale.ID, "owner-ajeno", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/products/"+p.ID+"/stock-movements", testOwnerID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movs []dto.StockMovementResponse
	decodeInto(t, resp, &movs)
	require.Len(t, movs, 2)
	assert.Equal(t, -2, movs[0].Change)
	assert.Equal(t, "SALE", movs[0].Reason)
}

func TestVentas_CantidadesFueraDeRango(t *testing.T) {
	app := buildApp(t)
	p := createProduct(t, app, testOwnerID, fiber.Map{"name": "Pan", "price": "2.50", "stock": 3})

	cases := map[string][]fiber.Map{
		"línea mayor a int32": {{"product_id": p.ID, "qty": int64(math.MaxInt64)}},
		"suma mayor a int32": {
			{"product_id": p.ID, "qty": math.MaxInt32},
			{"product_id": p.ID, "qty": math.MaxInt32},
		},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			resp := do(t, app, http.MethodPost, "/api/sales", testOwnerID, fiber.Map{"items": items})
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var errBody dto.ErrorResponse
			decodeInto(t, resp, &errBody)
			assert.Equal(t, "VALIDATION", errBody.Code)
		})
	}

	resp := do(t, app, http.MethodGet, "/api/products/"+p.ID, testOwnerID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductResponse
	decodeInto(t, resp, &out)
	assert.Equal(t, 3, out.Stock)
}

func TestAjusteStock(t *testing.T) {
	app := buildApp(t)
	p := createProduct(t, app, testOwnerID, fiber.Map{"name": "Leche", "price": "1.20", "cost": "1", "stock": 1})

	resp := do(t, app, http.MethodPost, "/api/products/"+p.ID+"/stock", testOwnerID, fiber.Map{"change": 4, "reason": "restock", "unit_cost": "1.50"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductResponse
	decodeInto(t, resp, &out)
	assert.Equal(t, 5, out.Stock)
	assert.True(t, decimal.RequireFromString("1.40").Equal(out.Cost))

	resp = do(t, app, http.MethodPost, "/api/products/"+p.ID+"/stock", testOwnerID, fiber.Map{"change": -6})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/products/"+p.ID+"/stock", testOwnerID, fiber.Map{"change": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportes(t *testing.T) {
	app := buildApp(t)
	p := createProduct(t, app, testOwnerID, fiber.Map{"name": "Pan", "price": "50.00", "stock": 5})
	q := createProduct(t, app, testOwnerID, fiber.Map{"name": "Queso", "price": "30.00", "stock": 5})

	for _, body := range []fiber.Map{
		{"payment_method": "cash", "items": []fiber.Map{{"product_id": p.ID, "qty": 1}}},
		{"payment_method": "card", "items": []fiber.Map{{"product_id": q.ID, "qty": 1}}},
	} {
		resp := do(t, app, http.MethodPost, "/api/sales", testOwnerID, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	today := lastSaleDate(t, app)
	resp := do(t, app, http.MethodGet, "/api/reports/sales/summary?from="+today+"&to="+today, testOwnerID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.SalesSummaryDTO
	decodeInto(t, resp, &summary)
	assert.Equal(t, 2, summary.CountSales)
	assert.True(t, decimal.RequireFromString("80.00").Equal(summary.Total))
	assert.True(t, decimal.RequireFromString("50.00").Equal(summary.ByPaymentMethod["cash"]))
	assert.True(t, decimal.RequireFromString("30.00").Equal(summary.ByPaymentMethod["card"]))

	resp = do(t, app, http.MethodGet, "/api/reports/sales/detail?from="+today+"&to="+today, testOwnerID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.SaleDetailReportDTO
	decodeInto(t, resp, &detail)
	assert.Len(t, detail.Rows, 2)

	resp = do(t, app, http.MethodGet, "/api/reports/sales/daily?from=2024-03-05&to=2024-03-01", testOwnerID, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/reports/sales/daily", testOwnerID, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// lastSaleDate fecha UTC (YYYY-MM-DD) de la venta más reciente del owner de prueba.
func lastSaleDate(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := do(t, app, http.MethodGet, "/api/sales", testOwnerID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.SaleListResponse
	decodeInto(t, resp, &list)
	require.NotEmpty(t, list.Items)
	return list.Items[0].CreatedAt.UTC().Format("2006-01-02")
}

func TestReposicion(t *testing.T) {
	app := buildApp(t)
	createProduct(t, app, testOwnerID, fiber.Map{"name": "Bajo", "price": "10", "cost": "6", "stock": 1, "stock_min": 10})
	createProduct(t, app, testOwnerID, fiber.Map{"name": "Sobrado", "price": "10", "cost": "6", "stock": 100, "stock_min": 10})

	resp := do(t, app, http.MethodGet, "/api/inventory/replenishment-list", testOwnerID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.ReplenishmentSuggestionDTO
	decodeInto(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Bajo", list[0].ProductName)
	assert.Equal(t, 14, list[0].SuggestedOrderQty)
}
