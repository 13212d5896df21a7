// Package pgload copies a parsed table into PostgreSQL. It creates the
// destination table from the column schema and streams rows with the COPY
// protocol, which is an order of magnitude faster than row-by-row INSERTs
// for bulk data.
package pgload

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"csvtable/internal/column"
	"csvtable/internal/table"
)

// DB is the narrow database surface the loader needs. Satisfied by
// *pgxpool.Pool, *pgx.Conn and pgx.Tx, and by fakes in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Result describes one completed load.
type Result struct {
	JobID    uuid.UUID
	Table    string
	Rows     int64
	Duration time.Duration
}

// Load creates the destination table if needed and copies every row of t
// into it. The destination name is derived from the table's name; column
// names are normalized to lowercase snake case.
func Load(ctx context.Context, db DB, t *table.Table) (*Result, error) {
	if t.ColumnCount() == 0 {
		return nil, fmt.Errorf("pgload: table %q has no columns", t.Name())
	}

	jobID := uuid.New()
	start := time.Now()
	dest := toDBName(t.Name())

	cols := t.Columns()
	names := make([]string, len(cols))
	defs := make([]string, len(cols))
	for i, c := range cols {
		names[i] = toDBName(c.Name())
		defs[i] = fmt.Sprintf("%s %s", names[i], pgTypeFor(c.Type()))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", dest, strings.Join(defs, ", "))
	if _, err := db.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("pgload: create table %s: %w", dest, err)
	}

	rows, err := db.CopyFrom(ctx, pgx.Identifier{dest}, names,
		pgx.CopyFromSlice(t.RowCount(), func(i int) ([]any, error) {
			return copyRow(cols, i), nil
		}))
	if err != nil {
		return nil, fmt.Errorf("pgload: copy into %s: %w", dest, err)
	}

	res := &Result{
		JobID:    jobID,
		Table:    dest,
		Rows:     rows,
		Duration: time.Since(start),
	}
	slog.Info("load complete",
		"job_id", res.JobID,
		"table", res.Table,
		"rows", res.Rows,
		"duration", res.Duration,
	)
	return res, nil
}

// copyRow renders row i as COPY values: nil for missing cells, native Go or
// pgtype values otherwise.
func copyRow(cols []column.Column, i int) []any {
	vals := make([]any, len(cols))
	for j, c := range cols {
		if c.IsMissing(i) {
			vals[j] = nil
			continue
		}
		switch tc := c.(type) {
		case *column.ShortColumn:
			vals[j] = tc.Value(i)
		case *column.IntColumn:
			vals[j] = tc.Value(i)
		case *column.LongColumn:
			vals[j] = tc.Value(i)
		case *column.FloatColumn:
			vals[j] = tc.Value(i)
		case *column.BoolColumn:
			vals[j] = tc.Value(i)
		case *column.DateColumn:
			vals[j] = tc.Value(i)
		case *column.DateTimeColumn:
			vals[j] = tc.Value(i)
		case *column.TimeColumn:
			v := tc.Value(i)
			micros := int64(v.Hour())*3600e6 + int64(v.Minute())*60e6 +
				int64(v.Second())*1e6 + int64(v.Nanosecond())/1e3
			vals[j] = pgtype.Time{Microseconds: micros, Valid: true}
		default:
			vals[j] = c.ValueString(i)
		}
	}
	return vals
}

// pgTypeFor maps a column type to its PostgreSQL type. Skip never reaches a
// materialized table, so it has no mapping.
func pgTypeFor(t column.ColumnType) string {
	switch t {
	case column.ShortInt:
		return "smallint"
	case column.Integer:
		return "integer"
	case column.LongInt:
		return "bigint"
	case column.Float:
		return "real"
	case column.Boolean:
		return "boolean"
	case column.LocalDate:
		return "date"
	case column.LocalTime:
		return "time"
	case column.LocalDateTime:
		return "timestamp"
	default:
		return "text"
	}
}

// toDBName normalizes an identifier to lowercase snake case. Path
// separators, spaces and punctuation collapse to single underscores; a
// leading digit gets a "t_" prefix.
func toDBName(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	s := strings.TrimSuffix(b.String(), "_")
	if s == "" {
		return "t"
	}
	if unicode.IsDigit(rune(s[0])) {
		return "t_" + s
	}
	return s
}
