// Package dedup removes product rows already present in a source's
// historical files and drives the per-file processing pipeline.
package dedup

import (
	"strings"

	"prodedup/product"
)

// Dedup key: trimmed title plus price compared as text. "$10.00" and
// "$10.0" are distinct keys; canonical formatting makes the representation
// unique for values that pass normalization.
type key struct {
	title string
	price string
}

func rowKey(row product.Row) (key, bool) {
	title := strings.TrimSpace(row.Title)
	if title == "" || row.Price == "" {
		return key{}, false
	}
	return key{title: title, price: row.Price}, true
}

// Subtract returns the rows of newTable whose (title, price) pair does not
// appear in histTable, preserving order. Rows with an absent title or
// price on either side are dropped before comparison.
func Subtract(newTable, histTable product.Table) product.Table {
	seen := make(map[key]struct{}, len(histTable.Rows))
	for _, row := range histTable.Rows {
		if k, ok := rowKey(row); ok {
			seen[k] = struct{}{}
		}
	}

	result := product.Table{
		Path: newTable.Path,
		Rows: make([]product.Row, 0, len(newTable.Rows)),
	}
	for _, row := range newTable.Rows {
		k, ok := rowKey(row)
		if !ok {
			continue
		}
		if _, duplicate := seen[k]; duplicate {
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	return result
}
