// Package ingest turns delimited text into a typed, columnar table. It
// provides the immutable per-job parse options with their fluent builder,
// the column type detection pass, and the reader that drives a bulk load.
package ingest

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"csvtable/internal/column"
	"csvtable/internal/convert"
)

// Options is the immutable description of one ingestion job. Build one with
// NewBuilder; a built Options is safe to share between goroutines and is
// unaffected by further use of the builder that produced it.
//
// The zero value is not useful; it has no delimiter.
type Options struct {
	delimiter       rune
	header          bool
	fileName        string
	tableName       string
	typeOverrides   map[string]column.ColumnType
	formatOverrides map[string]convert.Formatter
	columnTypes     []column.ColumnType
	stream          io.Reader
}

// Delimiter returns the field delimiter, ',' by default.
func (o Options) Delimiter() rune { return o.delimiter }

// HasHeader reports whether the first record is a header row.
func (o Options) HasHeader() bool { return o.header }

// FileName returns the source identifier.
func (o Options) FileName() string { return o.fileName }

// TableName returns the display name; it defaults to the file name at build
// time when unset.
func (o Options) TableName() string { return o.tableName }

// TypeOverride returns the forced type for a named column, if any.
func (o Options) TypeOverride(name string) (column.ColumnType, bool) {
	t, ok := o.typeOverrides[name]
	return t, ok
}

// FormatOverride returns the forced temporal formatter for a named column,
// if any.
func (o Options) FormatOverride(name string) (convert.Formatter, bool) {
	f, ok := o.formatOverrides[name]
	return f, ok
}

// HasColumnTypes reports whether a positional declared-type sequence was
// supplied.
func (o Options) HasColumnTypes() bool { return len(o.columnTypes) > 0 }

// ColumnTypes returns a copy of the positional declared-type sequence.
func (o Options) ColumnTypes() []column.ColumnType {
	return slices.Clone(o.columnTypes)
}

// TypeFor resolves the configured type for the column called name at source
// position pos. A named override wins over a positional declared type; the
// second return is false when neither mechanism specifies the column and its
// type must be detected from the data.
func (o Options) TypeFor(name string, pos int) (column.ColumnType, bool) {
	if t, ok := o.typeOverrides[name]; ok {
		return t, true
	}
	if pos >= 0 && pos < len(o.columnTypes) {
		return o.columnTypes[pos], true
	}
	return column.Category, false
}

// HasStream reports whether an already-open input source was supplied.
func (o Options) HasStream() bool { return o.stream != nil }

// Stream returns the input source, or nil when reading from FileName.
func (o Options) Stream() io.Reader { return o.stream }

// CloneForFile copies the options for a different file. The new name is used
// for both the file and the table; all other fields carry over, sharing the
// immutable override maps with the original.
func (o Options) CloneForFile(name string) Options {
	o.fileName = name
	o.tableName = name
	return o
}

// Builder accumulates parse options and freezes them with Build. It is not
// safe for concurrent use; each ingestion job owns its builder.
type Builder struct {
	typeOverrides   map[string]column.ColumnType
	formatOverrides map[string]convert.Formatter
	tableName       string
	fileName        string
	header          bool
	delimiter       rune
	columnTypes     []column.ColumnType
	stream          io.Reader
}

// NewBuilder returns a builder with the defaults: comma delimiter and no
// header row.
func NewBuilder() *Builder {
	return &Builder{
		typeOverrides:   make(map[string]column.ColumnType),
		formatOverrides: make(map[string]convert.Formatter),
		delimiter:       ',',
	}
}

// Column scopes the builder to one named column for type and format
// overrides.
func (b *Builder) Column(name string) *ColumnBuilder {
	return &ColumnBuilder{name: name, b: b}
}

// Named sets the table's display name.
func (b *Builder) Named(tableName string) *Builder {
	b.tableName = tableName
	return b
}

// FromFile sets the path of the file to read.
func (b *Builder) FromFile(fileName string) *Builder {
	b.fileName = fileName
	return b
}

// FromReader sets an already-open input source. FileName may still be set
// for naming.
func (b *Builder) FromReader(r io.Reader) *Builder {
	b.stream = r
	return b
}

// WithHeader marks the first record as a header row.
func (b *Builder) WithHeader() *Builder {
	b.header = true
	return b
}

// WithoutHeader marks the input as headerless. This is also the default.
func (b *Builder) WithoutHeader() *Builder {
	b.header = false
	return b
}

// WithDelimiter sets the field delimiter.
func (b *Builder) WithDelimiter(delimiter rune) *Builder {
	b.delimiter = delimiter
	return b
}

// WithColumnTypes declares types positionally, aligned to source columns.
// Named overrides take precedence for the columns they name.
func (b *Builder) WithColumnTypes(types []column.ColumnType) *Builder {
	b.columnTypes = types
	return b
}

// Build freezes the accumulated state into an immutable Options value. The
// override maps and the declared-type sequence are copied, so mutating the
// builder afterwards never affects a previously built Options. An unset or
// empty table name defaults to the file name.
func (b *Builder) Build() Options {
	tableName := b.tableName
	if tableName == "" {
		tableName = b.fileName
	}
	return Options{
		delimiter:       b.delimiter,
		header:          b.header,
		fileName:        b.fileName,
		tableName:       tableName,
		typeOverrides:   maps.Clone(b.typeOverrides),
		formatOverrides: maps.Clone(b.formatOverrides),
		columnTypes:     slices.Clone(b.columnTypes),
		stream:          b.stream,
	}
}

// ColumnBuilder is a view over the parent builder scoped to one column.
// Its methods record overrides in the parent and return it, keeping the
// fluent chain on a single owning builder.
type ColumnBuilder struct {
	name string
	b    *Builder
}

// IsOfType forces the column's type, overriding detection.
func (c *ColumnBuilder) IsOfType(t column.ColumnType) *Builder {
	c.b.typeOverrides[c.name] = t
	return c.b
}

// IsOfDateFormat forces both the column's temporal type and the formatter
// used to parse its values.
//
// The type must be LocalDate, LocalTime or LocalDateTime; any other type is
// a programming error and panics at the call site rather than producing a
// silently broken configuration.
func (c *ColumnBuilder) IsOfDateFormat(t column.ColumnType, f convert.Formatter) *Builder {
	if !t.IsTemporal() {
		panic(fmt.Sprintf("ingest: format override for column %q requires a temporal type, got %v", c.name, t))
	}
	c.b.typeOverrides[c.name] = t
	c.b.formatOverrides[c.name] = f
	return c.b
}
