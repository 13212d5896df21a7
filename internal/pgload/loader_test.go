package pgload

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"csvtable/internal/column"
	"csvtable/internal/table"
)

// fakeDB records the DDL and drains the copy source so tests can inspect the
// rows the loader would have sent.
type fakeDB struct {
	ddl      []string
	copyDest pgx.Identifier
	copyCols []string
	rows     [][]any

	execErr error
	copyErr error
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.ddl = append(f.ddl, sql)
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeDB) CopyFrom(_ context.Context, dest pgx.Identifier, cols []string, src pgx.CopyFromSource) (int64, error) {
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	f.copyDest = dest
	f.copyCols = cols
	for src.Next() {
		vals, err := src.Values()
		if err != nil {
			return int64(len(f.rows)), err
		}
		f.rows = append(f.rows, vals)
	}
	return int64(len(f.rows)), src.Err()
}

func buildTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New("July Sales.csv")

	cells := map[string][]string{
		"Item Count": {"3", "NA"},
		"price":      {"9.99", "1.5"},
		"sold on":    {"2016-07-22", "2016-07-23"},
		"at":         {"10:30:15", "23:59:59"},
	}
	types := map[string]column.ColumnType{
		"Item Count": column.Integer,
		"price":      column.Float,
		"sold on":    column.LocalDate,
		"at":         column.LocalTime,
	}
	for _, name := range []string{"Item Count", "price", "sold on", "at"} {
		c, err := column.NewColumn(name, types[name])
		if err != nil {
			t.Fatalf("NewColumn: %v", err)
		}
		for _, cell := range cells[name] {
			if err := c.AppendCell(cell); err != nil {
				t.Fatalf("AppendCell(%q): %v", cell, err)
			}
		}
		if err := tbl.AddColumn(c); err != nil {
			t.Fatalf("AddColumn: %v", err)
		}
	}
	return tbl
}

func TestLoad(t *testing.T) {
	db := &fakeDB{}
	tbl := buildTable(t)

	res, err := Load(context.Background(), db, tbl)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if res.Table != "july_sales_csv" {
		t.Errorf("Result.Table = %q", res.Table)
	}
	if res.Rows != 2 {
		t.Errorf("Result.Rows = %d, want 2", res.Rows)
	}
	if res.JobID == uuid.Nil {
		t.Error("Result.JobID should be set")
	}

	if len(db.ddl) != 1 {
		t.Fatalf("Exec calls = %d, want 1", len(db.ddl))
	}
	ddl := db.ddl[0]
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS july_sales_csv",
		"item_count integer",
		"price real",
		"sold_on date",
		"at time",
	} {
		if !strings.Contains(ddl, want) {
			t.Errorf("DDL missing %q: %s", want, ddl)
		}
	}

	if want := []string{"item_count", "price", "sold_on", "at"}; !slices.Equal(db.copyCols, want) {
		t.Fatalf("copy columns = %v, want %v", db.copyCols, want)
	}
	if db.copyDest[0] != "july_sales_csv" {
		t.Errorf("copy destination = %v", db.copyDest)
	}

	if len(db.rows) != 2 {
		t.Fatalf("copied rows = %d, want 2", len(db.rows))
	}
	first := db.rows[0]
	if first[0] != int32(3) {
		t.Errorf("row 0 count = %#v", first[0])
	}
	if first[1] != float32(9.99) {
		t.Errorf("row 0 price = %#v", first[1])
	}
	if d, ok := first[2].(time.Time); !ok || d.Format("2006-01-02") != "2016-07-22" {
		t.Errorf("row 0 date = %#v", first[2])
	}
	tm, ok := first[3].(pgtype.Time)
	if !ok || !tm.Valid {
		t.Fatalf("row 0 time = %#v", first[3])
	}
	wantMicros := int64(10*3600+30*60+15) * 1e6
	if tm.Microseconds != wantMicros {
		t.Errorf("row 0 time micros = %d, want %d", tm.Microseconds, wantMicros)
	}

	// Missing cells copy as NULL.
	if db.rows[1][0] != nil {
		t.Errorf("row 1 count = %#v, want nil", db.rows[1][0])
	}
}

func TestLoadEmptyTable(t *testing.T) {
	if _, err := Load(context.Background(), &fakeDB{}, table.New("empty")); err == nil {
		t.Fatal("expected error for table with no columns")
	}
}

func TestLoadPropagatesErrors(t *testing.T) {
	tbl := buildTable(t)

	dbErr := errors.New("boom")
	if _, err := Load(context.Background(), &fakeDB{execErr: dbErr}, tbl); !errors.Is(err, dbErr) {
		t.Errorf("exec error = %v", err)
	}
	if _, err := Load(context.Background(), &fakeDB{copyErr: dbErr}, tbl); !errors.Is(err, dbErr) {
		t.Errorf("copy error = %v", err)
	}
}

func TestToDBName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sales.csv", "sales_csv"},
		{"July Sales", "july_sales"},
		{"data/2016/july.csv", "data_2016_july_csv"},
		{"2016-sales", "t_2016_sales"},
		{"already_fine", "already_fine"},
		{"--", "t"},
		{"", "t"},
		{"trail.", "trail"},
	}
	for _, tc := range tests {
		if got := toDBName(tc.in); got != tc.want {
			t.Errorf("toDBName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
