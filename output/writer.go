package output

import (
	"path/filepath"
	"strings"

	"prodedup/product"
)

// Writer persists one normalized product table.
type Writer interface {
	Write(path string, table product.Table) error
}

// FilteredName maps a source file name to its output name:
// "acme-store_2024.xlsx" -> "acme-store_2024_filtered.csv".
func FilteredName(name string) string {
	ext := filepath.Ext(name)
	switch strings.ToLower(ext) {
	case ".csv", ".xlsx":
		name = strings.TrimSuffix(name, ext)
	}
	return name + "_filtered.csv"
}
