package ingest

// reader.go drives a bulk load: read all records, resolve each column's type
// (override > declared > detected), materialize columns, lock in one
// temporal formatter per column, then convert every cell. Reading is
// all-in-memory; sources large enough to need streaming are out of scope.

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"csvtable/internal/column"
	"csvtable/internal/convert"
	"csvtable/internal/table"
)

// detectionSampleLimit caps how many leading rows feed type and format
// detection. Sampling the whole file would make detection cost scale with
// file size for no accuracy gain.
const detectionSampleLimit = 1000

// contextCheckInterval is how often (in rows) the conversion loop checks for
// cancellation. Checking every row is measurable overhead; every 100 rows is
// effectively instant response at negligible cost.
const contextCheckInterval = 100

// Read parses the configured source into a typed table.
//
// Column types come from the options when specified (a named override beats
// a positional declared type) and are otherwise detected from sampled
// values. Skip-typed columns are dropped without being materialized. For
// each temporal column a single formatter is selected up front, from the
// format override or by catalog detection on the first informative sample,
// and reused for every value in the column.
func Read(ctx context.Context, opts Options) (*table.Table, error) {
	var src io.Reader
	if opts.HasStream() {
		src = opts.Stream()
	} else {
		if opts.FileName() == "" {
			return nil, fmt.Errorf("ingest: no input: options have neither a stream nor a file name")
		}
		f, err := os.Open(opts.FileName())
		if err != nil {
			return nil, fmt.Errorf("ingest: open %s: %w", opts.FileName(), err)
		}
		defer f.Close()
		src = f
	}

	r := csv.NewReader(src)
	r.Comma = opts.Delimiter()
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: read %s: %w", opts.TableName(), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ingest: %s: empty input", opts.TableName())
	}

	var names []string
	rows := records
	if opts.HasHeader() {
		names = make([]string, len(records[0]))
		for i, h := range records[0] {
			names[i] = strings.TrimSpace(h)
		}
		rows = records[1:]
	} else {
		names = make([]string, len(records[0]))
		for i := range names {
			names[i] = fmt.Sprintf("C%d", i)
		}
	}

	cols, positions, err := materializeColumns(opts, names, rows)
	if err != nil {
		return nil, err
	}

	for ri, row := range rows {
		if ri%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("ingest: %s: cancelled at row %d: %w", opts.TableName(), ri+1, err)
			}
		}
		for ci, c := range cols {
			cell := ""
			if pos := positions[ci]; pos < len(row) {
				cell = strings.TrimSpace(row[pos])
			}
			if err := c.AppendCell(cell); err != nil {
				return nil, fmt.Errorf("ingest: %s row %d: %w", opts.TableName(), sourceLine(opts, ri), err)
			}
		}
	}

	t := table.New(opts.TableName())
	for _, c := range cols {
		if err := t.AddColumn(c); err != nil {
			return nil, fmt.Errorf("ingest: %w", err)
		}
	}

	slog.Debug("ingest complete",
		"table", t.Name(),
		"rows", t.RowCount(),
		"columns", t.ColumnCount(),
	)
	return t, nil
}

// materializeColumns resolves a type for every source column, creates the
// non-Skip ones, and locks in temporal formatters. positions maps each
// created column back to its source field index.
func materializeColumns(opts Options, names []string, rows [][]string) ([]column.Column, []int, error) {
	cols := make([]column.Column, 0, len(names))
	positions := make([]int, 0, len(names))

	for i, name := range names {
		typ, configured := opts.TypeFor(name, i)
		if !configured {
			typ = DetectColumnType(sampleColumn(rows, i))
			slog.Debug("detected column type", "column", name, "type", typ)
		}
		if typ == column.Skip {
			continue
		}

		c, err := column.NewColumn(name, typ)
		if err != nil {
			return nil, nil, fmt.Errorf("ingest: %w", err)
		}
		if typ.IsTemporal() {
			lockFormat(opts, c, i, rows)
		}
		cols = append(cols, c)
		positions = append(positions, i)
	}
	return cols, positions, nil
}

// lockFormat chooses the formatter a temporal column uses for the whole job:
// the configured override when present, otherwise the first catalog
// candidate matching a representative sample. Detection runs once per
// column, never per value.
func lockFormat(opts Options, c column.Column, pos int, rows [][]string) {
	f, ok := opts.FormatOverride(c.Name())
	if !ok {
		f = convert.DetectFormat(kindFor(c.Type()), firstInformative(rows, pos))
	}
	switch tc := c.(type) {
	case *column.DateColumn:
		tc.SetFormat(f)
	case *column.TimeColumn:
		tc.SetFormat(f)
	case *column.DateTimeColumn:
		tc.SetFormat(f)
	}
}

func kindFor(t column.ColumnType) convert.Kind {
	switch t {
	case column.LocalTime:
		return convert.TimeKind
	case column.LocalDateTime:
		return convert.DateTimeKind
	default:
		return convert.DateKind
	}
}

// sampleColumn gathers up to detectionSampleLimit raw values from field pos.
func sampleColumn(rows [][]string, pos int) []string {
	limit := detectionSampleLimit
	if len(rows) < limit {
		limit = len(rows)
	}
	sample := make([]string, 0, limit)
	for _, row := range rows[:limit] {
		if pos < len(row) {
			sample = append(sample, row[pos])
		}
	}
	return sample
}

// firstInformative returns the first non-empty, non-missing value in field
// pos, or "" when the column holds nothing usable (detection then yields the
// composite fallback).
func firstInformative(rows [][]string, pos int) string {
	for _, row := range rows {
		if pos >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[pos])
		if v != "" && !convert.IsMissing(v) {
			return v
		}
	}
	return ""
}

// sourceLine converts a data row index to the 1-based line number reported
// in errors, accounting for the header row.
func sourceLine(opts Options, rowIdx int) int {
	if opts.HasHeader() {
		return rowIdx + 2
	}
	return rowIdx + 1
}
