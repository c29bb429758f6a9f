package schema

import (
	"strings"

	"github.com/shopspring/decimal"

	"prodedup/pricing"
	"prodedup/product"
)

// CombinePriceColumns collapses multiple price-tier columns ("Price",
// "Sale Price", ...) into one "Price" column holding the per-row minimum.
// Runs on the new file only, before column resolution; tables with at most
// one price-matching header pass through unchanged.
func CombinePriceColumns(table product.RawTable) product.RawTable {
	priceCols := make([]int, 0, 2)
	for i, header := range table.Headers {
		if strings.Contains(strings.ToLower(header), "price") {
			priceCols = append(priceCols, i)
		}
	}
	if len(priceCols) < 2 {
		return table
	}

	keep := priceCols[0]
	drop := make(map[int]bool, len(priceCols)-1)
	for _, col := range priceCols[1:] {
		drop[col] = true
	}

	combined := product.RawTable{
		Path:    table.Path,
		Headers: make([]string, 0, len(table.Headers)-len(priceCols)+1),
		Rows:    make([][]string, 0, len(table.Rows)),
	}
	for i, header := range table.Headers {
		if drop[i] {
			continue
		}
		if i == keep {
			header = "Price"
		}
		combined.Headers = append(combined.Headers, header)
	}

	for _, row := range table.Rows {
		minimum, found := rowMinimum(table, row, priceCols)

		cells := make([]string, 0, len(combined.Headers))
		for i := range table.Headers {
			if drop[i] {
				continue
			}
			if i == keep {
				if found {
					cells = append(cells, minimum.String())
				} else {
					cells = append(cells, "")
				}
				continue
			}
			cells = append(cells, table.Cell(row, i))
		}
		combined.Rows = append(combined.Rows, cells)
	}

	return combined
}

func rowMinimum(table product.RawTable, row []string, priceCols []int) (decimal.Decimal, bool) {
	var minimum decimal.Decimal
	found := false
	for _, col := range priceCols {
		value, ok := pricing.ParseAmount(table.Cell(row, col))
		if !ok {
			continue
		}
		if !found || value.LessThan(minimum) {
			minimum = value
		}
		found = true
	}
	return minimum, found
}
