// Package export serialises report rows to CSV downloads.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/bodega-app/bodega/internal/reports/rows"
)

// WriteInventoryCSV emits the stock valuation report as CSV.
func WriteInventoryCSV(w io.Writer, rows []rows.InventoryRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Product", "Category", "Stock", "Purchase Price", "Sale Price", "Cost Value", "Sale Value"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.Name,
			row.Category,
			strconv.Itoa(row.Stock),
			formatFloat(row.PurchasePrice),
			formatFloat(row.SalePrice),
			formatFloat(row.CostValue),
			formatFloat(row.SaleValue),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMostSoldCSV emits the most-sold report as CSV.
func WriteMostSoldCSV(w io.Writer, rows []rows.MostSoldRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Product", "Qty Sold", "Avg Price", "Revenue"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.Name,
			strconv.Itoa(row.QtySold),
			formatFloat(row.AvgPrice),
			formatFloat(row.Revenue),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
