package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"prodedup/product"
)

var statsHeaders = []string{"file_name", "products_count_before", "products_count_after", "error"}

// WriteStats serializes the run summary, one row per processed new file.
// The format follows the path extension: .xlsx writes a workbook, anything
// else delimited text. Absent counts serialize as empty cells.
func WriteStats(path string, stats []product.FileStats) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeStatsExcel(path, stats)
	}
	return writeStatsCSV(path, stats)
}

func writeStatsCSV(path string, stats []product.FileStats) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create stats output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(statsHeaders); err != nil {
		return fmt.Errorf("write stats headers: %w", err)
	}

	for _, record := range stats {
		row := []string{
			record.FileName,
			formatCount(record.ProductsBefore),
			formatCount(record.ProductsAfter),
			record.Error,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write stats row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush stats output: %w", err)
	}

	return nil
}

func writeStatsExcel(path string, stats []product.FileStats) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	for col, header := range statsHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, record := range stats {
		row := i + 2
		values := []string{
			record.FileName,
			formatCount(record.ProductsBefore),
			formatCount(record.ProductsAfter),
			record.Error,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save stats output %s: %w", path, err)
	}

	return nil
}

func formatCount(count *int) string {
	if count == nil {
		return ""
	}
	return strconv.Itoa(*count)
}
