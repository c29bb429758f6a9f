package reader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"prodedup/product"
)

type ExcelReader struct{}

func (r *ExcelReader) Read(path string) (product.RawTable, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return product.RawTable{}, fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return product.RawTable{}, fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return product.RawTable{}, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return product.RawTable{}, fmt.Errorf("sheet %s is empty", sheetName)
	}

	table := product.RawTable{
		Path:    path,
		Headers: rows[0],
		Rows:    make([][]string, 0, len(rows)-1),
	}

	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, padRow(row, len(table.Headers)))
	}

	return table, nil
}
