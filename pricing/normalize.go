package pricing

import (
	"strings"

	"prodedup/product"
)

// Normalize projects a resolved raw table onto the canonical fields. Title
// and price are trimmed; rows without a usable price are silently excluded.
func Normalize(raw product.RawTable, mapping product.Mapping) product.Table {
	table := product.Table{
		Path: raw.Path,
		Rows: make([]product.Row, 0, len(raw.Rows)),
	}

	for _, cells := range raw.Rows {
		price, ok := Canonical(raw.Cell(cells, mapping.Price))
		if !ok {
			continue
		}

		table.Rows = append(table.Rows, product.Row{
			Title: strings.TrimSpace(raw.Cell(cells, mapping.Title)),
			Url:   raw.Cell(cells, mapping.Url),
			Image: raw.Cell(cells, mapping.Image),
			Price: price,
		})
	}

	return table
}
