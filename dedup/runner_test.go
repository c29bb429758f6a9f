package dedup

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"prodedup/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := config.Config{
		Paths: config.PathsConfig{
			OutputPath:   filepath.Join(root, "output"),
			NewFilesPath: filepath.Join(root, "new"),
			OldFilesPath: filepath.Join(root, "old"),
			StatsPath:    filepath.Join(root, "stats.csv"),
		},
	}
	for _, dir := range []string{cfg.Paths.OutputPath, cfg.Paths.NewFilesPath, cfg.Paths.OldFilesPath} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("create dir %s: %v", dir, err)
		}
	}
	return cfg
}

func writeCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestRunner_EndToEnd(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeCSV(t, filepath.Join(cfg.Paths.NewFilesPath, "acme-store_2024.csv"), [][]string{
		{"Product Title", "Product Url", "Image Link", "Price"},
		{"Widget", "https://acme/widget", "widget.jpg", "$10.00"},
		{"Gadget", "https://acme/gadget", "gadget.jpg", "$20.00"},
	})
	writeCSV(t, filepath.Join(cfg.Paths.OldFilesPath, "acme-store_2023.csv"), [][]string{
		{"Title", "Url", "Image", "Price"},
		{"Widget", "https://acme/widget", "widget.jpg", "$10.00"},
	})

	result, err := NewRunner(cfg, zerolog.Nop()).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.FilesProcessed != 1 {
		t.Fatalf("expected 1 processed file, got %d", result.FilesProcessed)
	}
	if len(result.Stats) != 1 {
		t.Fatalf("expected 1 stats record, got %d", len(result.Stats))
	}

	stats := result.Stats[0]
	if stats.FileName != "acme-store_2024.csv" {
		t.Fatalf("unexpected stats file name: %q", stats.FileName)
	}
	if stats.ProductsBefore == nil || *stats.ProductsBefore != 2 {
		t.Fatalf("unexpected before count: %v", stats.ProductsBefore)
	}
	if stats.ProductsAfter == nil || *stats.ProductsAfter != 1 {
		t.Fatalf("unexpected after count: %v", stats.ProductsAfter)
	}
	if stats.Error != "" {
		t.Fatalf("unexpected stats error: %q", stats.Error)
	}

	outPath := filepath.Join(cfg.Paths.OutputPath, "acme-store_2024_filtered.csv")
	rows := readCSV(t, outPath)
	want := [][]string{
		{"Title", "Url", "Image", "Price"},
		{"Gadget", "https://acme/gadget", "gadget.jpg", "$20.00"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected output rows: %v", rows)
	}

	if len(result.Tables) != 1 || len(result.Tables[0].Rows) != 1 {
		t.Fatalf("unexpected run aggregate: %+v", result.Tables)
	}
}

func TestRunner_ZeroSurvivorsWritesNoOutput(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeCSV(t, filepath.Join(cfg.Paths.NewFilesPath, "acme_2024.csv"), [][]string{
		{"Title", "Url", "Image", "Price"},
		{"Widget", "u", "i", "$10.00"},
	})
	writeCSV(t, filepath.Join(cfg.Paths.OldFilesPath, "acme_2023.csv"), [][]string{
		{"Title", "Url", "Image", "Price"},
		{"Widget", "u", "i", "$10.00"},
	})

	result, err := NewRunner(cfg, zerolog.Nop()).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	stats := result.Stats[0]
	if stats.ProductsAfter == nil || *stats.ProductsAfter != 0 {
		t.Fatalf("unexpected after count: %v", stats.ProductsAfter)
	}
	if len(result.Tables) != 0 {
		t.Fatalf("no table should be aggregated: %+v", result.Tables)
	}

	outPath := filepath.Join(cfg.Paths.OutputPath, "acme_2024_filtered.csv")
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatalf("no output file expected, stat err: %v", err)
	}
}

func TestRunner_MissingColumnInNewFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeCSV(t, filepath.Join(cfg.Paths.NewFilesPath, "acme_2024.csv"), [][]string{
		{"Title", "Link", "Image", "Price"},
		{"Widget", "u", "i", "$10.00"},
	})
	writeCSV(t, filepath.Join(cfg.Paths.OldFilesPath, "acme_2023.csv"), [][]string{
		{"Title", "Url", "Image", "Price"},
	})

	result, err := NewRunner(cfg, zerolog.Nop()).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	stats := result.Stats[0]
	if stats.ProductsBefore != nil {
		t.Fatalf("before count must be absent for unusable file, got %v", *stats.ProductsBefore)
	}
	if stats.ProductsAfter != nil {
		t.Fatalf("after count must stay absent, got %v", *stats.ProductsAfter)
	}
	if stats.Error == "" {
		t.Fatal("expected recorded error")
	}
}

func TestRunner_MissingColumnInHistoricalFileIsSkipped(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeCSV(t, filepath.Join(cfg.Paths.NewFilesPath, "acme_2024.csv"), [][]string{
		{"Title", "Url", "Image", "Price"},
		{"Widget", "u", "i", "$10.00"},
		{"Gadget", "u", "i", "$20.00"},
	})
	// Sorted before the usable file; must be skipped, not fatal.
	writeCSV(t, filepath.Join(cfg.Paths.OldFilesPath, "acme_2022.csv"), [][]string{
		{"Name", "Url", "Image", "Price"},
		{"Widget", "u", "i", "$10.00"},
	})
	writeCSV(t, filepath.Join(cfg.Paths.OldFilesPath, "acme_2023.csv"), [][]string{
		{"Title", "Url", "Image", "Price"},
		{"Gadget", "u", "i", "$20.00"},
	})

	result, err := NewRunner(cfg, zerolog.Nop()).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	stats := result.Stats[0]
	if stats.ProductsAfter == nil || *stats.ProductsAfter != 1 {
		t.Fatalf("unexpected after count: %v", stats.ProductsAfter)
	}
	if len(result.Tables) != 1 || result.Tables[0].Rows[0].Title != "Widget" {
		t.Fatalf("unexpected surviving rows: %+v", result.Tables)
	}
}

func TestRunner_MultiplePriceColumnsUseMinimum(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeCSV(t, filepath.Join(cfg.Paths.NewFilesPath, "acme_2024.csv"), [][]string{
		{"Title", "Url", "Image", "Price", "Sale Price"},
		{"Widget", "u", "i", "$10", "$8"},
	})
	writeCSV(t, filepath.Join(cfg.Paths.OldFilesPath, "acme_2023.csv"), [][]string{
		{"Title", "Url", "Image", "Price"},
		{"Widget", "u", "i", "$8.00"},
	})

	result, err := NewRunner(cfg, zerolog.Nop()).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	stats := result.Stats[0]
	if stats.ProductsAfter == nil || *stats.ProductsAfter != 0 {
		t.Fatalf("combined minimum price must dedup against history: %v", stats.ProductsAfter)
	}
}

func TestRunner_NoDomainTokenRecordedInStats(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeCSV(t, filepath.Join(cfg.Paths.NewFilesPath, "_.csv"), [][]string{
		{"Title", "Url", "Image", "Price"},
		{"Widget", "u", "i", "$10.00"},
	})
	writeCSV(t, filepath.Join(cfg.Paths.OldFilesPath, "acme_2023.csv"), [][]string{
		{"Title", "Url", "Image", "Price"},
	})

	result, err := NewRunner(cfg, zerolog.Nop()).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	stats := result.Stats[0]
	if stats.Error == "" {
		t.Fatal("expected no-domain error recorded in stats")
	}
	if stats.ProductsAfter != nil {
		t.Fatalf("file without domain must not be deduped: %v", *stats.ProductsAfter)
	}
	if len(result.Tables) != 0 {
		t.Fatalf("file without domain must produce no output: %+v", result.Tables)
	}
}

func TestRunner_NoInputFilesAbortsRun(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeCSV(t, filepath.Join(cfg.Paths.NewFilesPath, "acme_2024.csv"), [][]string{
		{"Title", "Url", "Image", "Price"},
	})

	if _, err := NewRunner(cfg, zerolog.Nop()).Run(); err == nil {
		t.Fatal("expected error when the historical directory is empty")
	}
}
