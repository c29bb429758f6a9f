package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"prodedup/product"
)

// Reader parses one source file into a raw table: positional headers plus
// one cell slice per data row.
type Reader interface {
	Read(path string) (product.RawTable, error)
}

// ForPath selects a reader by file extension, case-insensitive.
func ForPath(path string) (Reader, error) {
	switch extension(path) {
	case "csv":
		return &CSVReader{}, nil
	case "xlsx":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension for %s", path)
	}
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
