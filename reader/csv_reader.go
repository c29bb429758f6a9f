package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"prodedup/product"
)

type CSVReader struct{}

func (r *CSVReader) Read(path string) (product.RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return product.RawTable{}, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return product.RawTable{}, fmt.Errorf("read csv header: %w", err)
	}

	table := product.RawTable{
		Path:    path,
		Headers: headers,
		Rows:    make([][]string, 0, 128),
	}

	rowNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return product.RawTable{}, fmt.Errorf("read csv row %d: %w", rowNumber+1, err)
		}

		table.Rows = append(table.Rows, padRow(row, len(headers)))
		rowNumber++
	}

	return table, nil
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
