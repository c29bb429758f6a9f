package dedup

import (
	"errors"
	"path/filepath"

	"github.com/rs/zerolog"

	"prodedup/config"
	"prodedup/match"
	"prodedup/output"
	"prodedup/pricing"
	"prodedup/product"
	"prodedup/reader"
	"prodedup/schema"
)

// Runner drives one deduplication run: new files are processed strictly in
// sequence, and for each, matching historical files are compared in
// discovery order.
type Runner struct {
	cfg    config.Config
	log    zerolog.Logger
	writer output.Writer
}

// Result accumulates per-file outcomes for a whole run. Stats carries one
// record per processed new file; Tables holds the surviving tables of files
// that produced output.
type Result struct {
	FilesProcessed int
	Stats          []product.FileStats
	Tables         []product.Table
}

func NewRunner(cfg config.Config, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log, writer: &output.CSVWriter{}}
}

// Run enumerates inputs and processes each new file. Finding zero old or
// zero new files aborts the run; every later failure is scoped to a single
// file (or a single historical comparison) and recorded or logged.
func (r *Runner) Run() (*Result, error) {
	oldFiles, err := reader.ListInputFiles(r.cfg.Paths.OldFilesPath)
	if err != nil {
		return nil, err
	}
	newFiles, err := reader.ListInputFiles(r.cfg.Paths.NewFilesPath)
	if err != nil {
		return nil, err
	}

	r.log.Info().
		Int("new_files", len(newFiles)).
		Int("old_files", len(oldFiles)).
		Msg("deduplication run started")

	result := &Result{
		Stats:  make([]product.FileStats, 0, len(newFiles)),
		Tables: make([]product.Table, 0, len(newFiles)),
	}
	for _, path := range newFiles {
		stats, table, ok := r.processFile(path, oldFiles)
		if !ok {
			continue
		}
		result.FilesProcessed++
		result.Stats = append(result.Stats, stats)
		if table != nil {
			result.Tables = append(result.Tables, *table)
		}
	}

	r.log.Info().Int("files", result.FilesProcessed).Msg("done filtering files")
	return result, nil
}

// processFile walks one new file through the pipeline:
// read, combine price columns, resolve columns, normalize, match domain,
// subtract history, persist survivors. The returned table is nil when
// nothing survived or the file was skipped; ok is false only when the file
// could not be read and no stats record exists.
func (r *Runner) processFile(path string, oldFiles []string) (product.FileStats, *product.Table, bool) {
	name := filepath.Base(path)
	r.log.Info().Str("file", name).Msg("processing file")

	raw, err := readTable(path)
	if err != nil {
		r.log.Warn().Str("file", name).Err(err).Msg("skipping unreadable file")
		return product.FileStats{}, nil, false
	}

	stats := product.FileStats{
		FileName:       name,
		ProductsBefore: product.Count(len(raw.Rows)),
	}

	raw = schema.CombinePriceColumns(raw)

	mapping, err := schema.Resolve(raw.Headers)
	if err != nil {
		var missing *schema.MissingColumnError
		if errors.As(err, &missing) {
			r.log.Warn().Str("file", name).Str("field", missing.Field).Msg("required column missing")
		}
		stats.ProductsBefore = nil
		stats.Error = err.Error()
		return stats, nil, true
	}

	table := pricing.Normalize(raw, mapping)

	domain, err := match.ExtractDomain(name)
	if err != nil {
		r.log.Warn().Str("file", name).Err(err).Msg("cannot locate dedup history")
		stats.Error = err.Error()
		return stats, nil, true
	}

	group := match.FindMatches(domain, oldFiles)
	r.log.Info().Str("file", name).Str("domain", domain).Int("matches", len(group.FilePaths)).Msg("matching history found")

	table = r.subtractHistory(table, group)
	stats.ProductsAfter = product.Count(len(table.Rows))

	if len(table.Rows) == 0 {
		r.log.Info().Str("file", name).Msg("no unique products")
		return stats, nil, true
	}

	outPath := filepath.Join(r.cfg.Paths.OutputPath, output.FilteredName(name))
	if err := r.writer.Write(outPath, table); err != nil {
		r.log.Warn().Str("file", name).Err(err).Msg("write filtered output")
		stats.Error = err.Error()
		return stats, nil, true
	}
	r.log.Info().Int("products", len(table.Rows)).Str("file", filepath.Base(outPath)).Msg("products saved")

	return stats, &table, true
}

// subtractHistory removes rows present in the group's files, one file at a
// time, stopping early once nothing remains. A historical file that cannot
// be read or resolved is skipped; dedup proceeds against the rest.
func (r *Runner) subtractHistory(table product.Table, group match.Group) product.Table {
	for _, histPath := range group.FilePaths {
		if len(table.Rows) == 0 {
			break
		}
		r.log.Info().Str("file", filepath.Base(histPath)).Msg("comparing to history")

		raw, err := readTable(histPath)
		if err != nil {
			r.log.Warn().Str("file", filepath.Base(histPath)).Err(err).Msg("skipping unreadable historical file")
			continue
		}
		mapping, err := schema.Resolve(raw.Headers)
		if err != nil {
			r.log.Warn().Str("file", filepath.Base(histPath)).Err(err).Msg("skipping historical file")
			continue
		}

		table = Subtract(table, pricing.Normalize(raw, mapping))
		r.log.Info().
			Str("domain", group.Domain).
			Int("remaining", len(table.Rows)).
			Msg("products remaining")
	}

	return table
}

func readTable(path string) (product.RawTable, error) {
	rd, err := reader.ForPath(path)
	if err != nil {
		return product.RawTable{}, err
	}
	return rd.Read(path)
}
