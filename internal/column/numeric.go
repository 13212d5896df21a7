package column

// numeric.go implements the four numeric column kinds. Integer kinds use the
// minimum value of their storage type as the missing sentinel; floats use
// NaN. Text conversion tolerates thousands separators ("1,234") since they
// are common in exported spreadsheets.

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"csvtable/internal/convert"
)

// Missing sentinels for the numeric column kinds.
const (
	MissingShort int16 = math.MinInt16
	MissingInt   int32 = math.MinInt32
	MissingLong  int64 = math.MinInt64
)

// cleanNumber strips whitespace and thousands separators before parsing.
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, ",", "")
}

// IntColumn stores 32-bit integers.
type IntColumn struct {
	name   string
	values []int32
}

func NewIntColumn(name string) *IntColumn { return &IntColumn{name: name} }

func (c *IntColumn) Name() string     { return c.name }
func (c *IntColumn) Type() ColumnType { return Integer }
func (c *IntColumn) Size() int        { return len(c.values) }

// Append adds a typed value.
func (c *IntColumn) Append(v int32) { c.values = append(c.values, v) }

// AppendMissing adds a missing cell.
func (c *IntColumn) AppendMissing() { c.values = append(c.values, MissingInt) }

func (c *IntColumn) AppendCell(s string) error {
	s = cleanNumber(s)
	if s == "" || convert.IsMissing(s) {
		c.AppendMissing()
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fmt.Errorf("column %q: invalid integer %q", c.name, s)
	}
	c.Append(int32(v))
	return nil
}

// Value returns cell i.
func (c *IntColumn) Value(i int) int32 { return c.values[i] }

func (c *IntColumn) IsMissing(i int) bool { return c.values[i] == MissingInt }

func (c *IntColumn) ValueString(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	return strconv.FormatInt(int64(c.values[i]), 10)
}

// ShortColumn stores 16-bit integers.
type ShortColumn struct {
	name   string
	values []int16
}

func NewShortColumn(name string) *ShortColumn { return &ShortColumn{name: name} }

func (c *ShortColumn) Name() string     { return c.name }
func (c *ShortColumn) Type() ColumnType { return ShortInt }
func (c *ShortColumn) Size() int        { return len(c.values) }

func (c *ShortColumn) Append(v int16)  { c.values = append(c.values, v) }
func (c *ShortColumn) AppendMissing()  { c.values = append(c.values, MissingShort) }

func (c *ShortColumn) AppendCell(s string) error {
	s = cleanNumber(s)
	if s == "" || convert.IsMissing(s) {
		c.AppendMissing()
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return fmt.Errorf("column %q: invalid short integer %q", c.name, s)
	}
	c.Append(int16(v))
	return nil
}

func (c *ShortColumn) Value(i int) int16    { return c.values[i] }
func (c *ShortColumn) IsMissing(i int) bool { return c.values[i] == MissingShort }

func (c *ShortColumn) ValueString(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	return strconv.FormatInt(int64(c.values[i]), 10)
}

// LongColumn stores 64-bit integers.
type LongColumn struct {
	name   string
	values []int64
}

func NewLongColumn(name string) *LongColumn { return &LongColumn{name: name} }

func (c *LongColumn) Name() string     { return c.name }
func (c *LongColumn) Type() ColumnType { return LongInt }
func (c *LongColumn) Size() int        { return len(c.values) }

func (c *LongColumn) Append(v int64)  { c.values = append(c.values, v) }
func (c *LongColumn) AppendMissing()  { c.values = append(c.values, MissingLong) }

func (c *LongColumn) AppendCell(s string) error {
	s = cleanNumber(s)
	if s == "" || convert.IsMissing(s) {
		c.AppendMissing()
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("column %q: invalid long integer %q", c.name, s)
	}
	c.Append(v)
	return nil
}

func (c *LongColumn) Value(i int) int64    { return c.values[i] }
func (c *LongColumn) IsMissing(i int) bool { return c.values[i] == MissingLong }

func (c *LongColumn) ValueString(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	return strconv.FormatInt(c.values[i], 10)
}

// FloatColumn stores 32-bit floats. NaN is the missing sentinel, so NaN
// cannot be stored as a real value; ingestion treats "NaN" as missing anyway.
type FloatColumn struct {
	name   string
	values []float32
}

func NewFloatColumn(name string) *FloatColumn { return &FloatColumn{name: name} }

func (c *FloatColumn) Name() string     { return c.name }
func (c *FloatColumn) Type() ColumnType { return Float }
func (c *FloatColumn) Size() int        { return len(c.values) }

func (c *FloatColumn) Append(v float32) { c.values = append(c.values, v) }
func (c *FloatColumn) AppendMissing() {
	c.values = append(c.values, float32(math.NaN()))
}

func (c *FloatColumn) AppendCell(s string) error {
	s = cleanNumber(s)
	if s == "" || convert.IsMissing(s) {
		c.AppendMissing()
		return nil
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return fmt.Errorf("column %q: invalid float %q", c.name, s)
	}
	c.Append(float32(v))
	return nil
}

func (c *FloatColumn) Value(i int) float32  { return c.values[i] }
func (c *FloatColumn) IsMissing(i int) bool { return math.IsNaN(float64(c.values[i])) }

func (c *FloatColumn) ValueString(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	return strconv.FormatFloat(float64(c.values[i]), 'g', -1, 32)
}
