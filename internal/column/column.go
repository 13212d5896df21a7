package column

import "fmt"

// Column is the narrow contract the ingestion driver and sinks consume.
// Concrete columns additionally expose typed accessors and appenders.
type Column interface {
	// Name returns the column's name.
	Name() string

	// Type returns the column's declared type.
	Type() ColumnType

	// Size returns the number of cells, including missing ones.
	Size() int

	// AppendCell converts one text value and appends it. Recognized
	// missing-value tokens and empty strings append a missing cell.
	AppendCell(s string) error

	// IsMissing reports whether cell i holds the missing sentinel.
	IsMissing(i int) bool

	// ValueString renders cell i as text; missing cells render as "".
	ValueString(i int) string
}

// NewColumn constructs an empty column of the given type.
//
// The name must be non-empty and the type must be a materializable member of
// the closed set: Skip columns are the caller's job to filter out before
// reaching this factory, and an unmapped type value is rejected rather than
// silently defaulted.
func NewColumn(name string, t ColumnType) (Column, error) {
	if name == "" {
		return nil, fmt.Errorf("new column: name must not be empty")
	}
	switch t {
	case Category:
		return NewCategoryColumn(name), nil
	case Boolean:
		return NewBoolColumn(name), nil
	case ShortInt:
		return NewShortColumn(name), nil
	case Integer:
		return NewIntColumn(name), nil
	case LongInt:
		return NewLongColumn(name), nil
	case Float:
		return NewFloatColumn(name), nil
	case LocalDate:
		return NewDateColumn(name), nil
	case LocalTime:
		return NewTimeColumn(name), nil
	case LocalDateTime:
		return NewDateTimeColumn(name), nil
	case Skip:
		return nil, fmt.Errorf("new column %q: skipped columns must be handled before the factory", name)
	default:
		return nil, fmt.Errorf("new column %q: unknown column type %v", name, t)
	}
}
