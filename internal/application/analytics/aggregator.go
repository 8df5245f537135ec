// Package analytics contiene los reportes de ventas: agregaciones de solo lectura
// sobre las ventas confirmadas del ledger.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const dateLayout = "2006-01-02"

// paymentTag devuelve la etiqueta tal como se guardó; vacía = UNSPECIFIED.
func paymentTag(pm string) string {
	if strings.TrimSpace(pm) == "" {
		return entity.PaymentMethodUnspecified
	}
	return pm
}

// upperTag normaliza la etiqueta a mayúsculas para la agrupación diaria.
func upperTag(pm string) string {
	if strings.TrimSpace(pm) == "" {
		return entity.PaymentMethodUnspecified
	}
	return cases.Upper(language.Und).String(strings.TrimSpace(pm))
}

// Summary totales del período. Cada método de pago se redondea por separado
// sobre su propia suma, no a partir del total ya redondeado.
func Summary(headers []repository.SaleHeaderRow) (count int, total decimal.Decimal, byMethod map[string]decimal.Decimal) {
	total = decimal.Zero
	byMethod = make(map[string]decimal.Decimal)
	for _, h := range headers {
		total = total.Add(h.Total)
		tag := paymentTag(h.PaymentMethod)
		byMethod[tag] = byMethod[tag].Add(h.Total)
	}
	for k, v := range byMethod {
		byMethod[k] = invdomain.RoundMoney(v)
	}
	return len(headers), invdomain.RoundMoney(total), byMethod
}

// Daily agrupa por fecha local (loc) de creación. Solo aparecen días con ventas, en orden ascendente.
func Daily(headers []repository.SaleHeaderRow, loc *time.Location) []dto.DailySalesDTO {
	if loc == nil {
		loc = time.UTC
	}
	byDate := make(map[string]*dto.DailySalesDTO)
	for _, h := range headers {
		date := h.CreatedAt.In(loc).Format(dateLayout)
		d, ok := byDate[date]
		if !ok {
			d = &dto.DailySalesDTO{Date: date, Total: decimal.Zero, ByPaymentMethod: map[string]decimal.Decimal{}}
			byDate[date] = d
		}
		d.CountSales++
		d.Total = d.Total.Add(h.Total)
		tag := upperTag(h.PaymentMethod)
		d.ByPaymentMethod[tag] = d.ByPaymentMethod[tag].Add(h.Total)
	}

	days := make([]dto.DailySalesDTO, 0, len(byDate))
	for _, d := range byDate {
		d.Total = invdomain.RoundMoney(d.Total)
		for k, v := range d.ByPaymentMethod {
			d.ByPaymentMethod[k] = invdomain.RoundMoney(v)
		}
		days = append(days, *d)
	}
	// las fechas ISO ordenan lexicográficamente
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// DetailRows una fila por (venta, línea, producto), ordenadas por id de venta y luego por línea.
func DetailRows(lines []repository.SaleLineRow) []dto.SaleDetailRowDTO {
	sorted := append([]repository.SaleLineRow(nil), lines...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SaleID != sorted[j].SaleID {
			return sorted[i].SaleID < sorted[j].SaleID
		}
		return sorted[i].ItemPosition < sorted[j].ItemPosition
	})
	rows := make([]dto.SaleDetailRowDTO, 0, len(sorted))
	for _, l := range sorted {
		rows = append(rows, dto.SaleDetailRowDTO{
			SaleID:        l.SaleID,
			SaleDatetime:  l.SaleCreatedAt,
			PaymentMethod: paymentTag(l.PaymentMethod),
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			Qty:           l.Qty,
			UnitPrice:     l.UnitPrice,
			LineTotal:     invdomain.RoundMoney(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))),
			SaleTotal:     l.SaleTotal,
		})
	}
	return rows
}
