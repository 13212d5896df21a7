// Package column provides the closed set of column types and the typed,
// columnar storage backing a parsed table. Column values are stored in
// compact typed slices; missing cells are represented by per-type sentinel
// values rather than a parallel validity mask.
package column

import "fmt"

// ColumnType is the closed enumeration of value kinds a column may hold.
//
// Skip is a sentinel meaning "do not materialize this column"; it is valid in
// parse options but must be filtered out before a column is created.
type ColumnType int

const (
	Category ColumnType = iota
	Boolean
	ShortInt
	Integer
	LongInt
	Float
	LocalDate
	LocalTime
	LocalDateTime
	Skip
)

// String returns the lowercase name used in CLI output, JSON schemas and
// error messages.
func (t ColumnType) String() string {
	switch t {
	case Category:
		return "category"
	case Boolean:
		return "boolean"
	case ShortInt:
		return "short"
	case Integer:
		return "integer"
	case LongInt:
		return "long"
	case Float:
		return "float"
	case LocalDate:
		return "date"
	case LocalTime:
		return "time"
	case LocalDateTime:
		return "datetime"
	case Skip:
		return "skip"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// ParseColumnType converts a lowercase type name back to a ColumnType.
// It accepts exactly the names produced by String.
func ParseColumnType(s string) (ColumnType, error) {
	switch s {
	case "category":
		return Category, nil
	case "boolean":
		return Boolean, nil
	case "short":
		return ShortInt, nil
	case "integer":
		return Integer, nil
	case "long":
		return LongInt, nil
	case "float":
		return Float, nil
	case "date":
		return LocalDate, nil
	case "time":
		return LocalTime, nil
	case "datetime":
		return LocalDateTime, nil
	case "skip":
		return Skip, nil
	default:
		return Category, fmt.Errorf("unknown column type %q", s)
	}
}

// IsTemporal reports whether t is one of the three temporal kinds.
func (t ColumnType) IsTemporal() bool {
	return t == LocalDate || t == LocalTime || t == LocalDateTime
}
