package product

// Canonical output columns, in serialization order.
var Columns = []string{"Title", "Url", "Image", "Price"}

// Row is the normalized product record used across readers, the dedup
// engine, and outputs. Price is canonical money text ("$1,234.50").
type Row struct {
	Title string
	Url   string
	Image string
	Price string
}

// Table is an ordered set of normalized rows from one source file.
type Table struct {
	Path string
	Rows []Row
}

// RawTable is a source file before column resolution: positional headers
// as they appear in the file, one string slice per data row. Short rows
// are padded with empty cells by the readers.
type RawTable struct {
	Path    string
	Headers []string
	Rows    [][]string
}

// Cell returns the value of the given column index for a row, or "" when
// the row is shorter than the header set.
func (t RawTable) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// FileStats is the per-file outcome record for one run. Nil counts mean
// the value is absent (ProductsBefore is nil when column resolution failed
// and the file was unusable).
type FileStats struct {
	FileName       string
	ProductsBefore *int
	ProductsAfter  *int
	Error          string
}

// Count is a convenience for building pointer-typed stats counts.
func Count(n int) *int {
	return &n
}
