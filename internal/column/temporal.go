package column

// temporal.go implements the three temporal column kinds. Values are packed
// into integer slices: dates as days since the Unix epoch, times as
// milliseconds of day, datetimes as epoch milliseconds. Each column carries
// the formatter used to parse incoming text; the ingestion driver locks one
// in after format detection, and the default is the kind's composite
// fallback so explicit construction still parses every catalog layout.

import (
	"fmt"
	"math"
	"time"

	"csvtable/internal/convert"
)

// Missing sentinels for the temporal column kinds.
const (
	MissingDate     int32 = math.MinInt32
	MissingTime     int32 = math.MinInt32
	MissingDateTime int64 = math.MinInt64
)

// epochDays converts a parsed value to whole days since 1970-01-01,
// rounding toward negative infinity so pre-epoch dates pack correctly.
func epochDays(t time.Time) int32 {
	sec := t.Unix()
	days := sec / (24 * 60 * 60)
	if sec%(24*60*60) < 0 {
		days--
	}
	return int32(days)
}

// millisOfDay converts a parsed value to milliseconds since midnight.
func millisOfDay(t time.Time) int32 {
	h, m, s := t.Clock()
	return int32(((h*60+m)*60+s)*1000 + t.Nanosecond()/int(time.Millisecond))
}

// DateColumn stores calendar dates.
type DateColumn struct {
	name   string
	format convert.Formatter
	values []int32
}

func NewDateColumn(name string) *DateColumn {
	return &DateColumn{name: name, format: convert.DateFallback}
}

func (c *DateColumn) Name() string     { return c.name }
func (c *DateColumn) Type() ColumnType { return LocalDate }
func (c *DateColumn) Size() int        { return len(c.values) }

// SetFormat locks in the formatter used by AppendCell.
func (c *DateColumn) SetFormat(f convert.Formatter) {
	if !f.IsZero() {
		c.format = f
	}
}

// Format returns the formatter currently in use.
func (c *DateColumn) Format() convert.Formatter { return c.format }

// Append adds a typed value; only the date part is kept.
func (c *DateColumn) Append(t time.Time) {
	c.values = append(c.values, epochDays(t))
}

// AppendMissing adds a missing cell.
func (c *DateColumn) AppendMissing() { c.values = append(c.values, MissingDate) }

func (c *DateColumn) AppendCell(s string) error {
	if s == "" || convert.IsMissing(s) {
		c.AppendMissing()
		return nil
	}
	t, err := c.format.Parse(s)
	if err != nil {
		return fmt.Errorf("column %q: cannot parse date %q: %w", c.name, s, err)
	}
	c.Append(t)
	return nil
}

// Value returns cell i at midnight UTC.
func (c *DateColumn) Value(i int) time.Time {
	return time.Unix(int64(c.values[i])*24*60*60, 0).UTC()
}

func (c *DateColumn) IsMissing(i int) bool { return c.values[i] == MissingDate }

func (c *DateColumn) ValueString(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	return c.Value(i).Format("2006-01-02")
}

// TimeColumn stores times of day.
type TimeColumn struct {
	name   string
	format convert.Formatter
	values []int32
}

func NewTimeColumn(name string) *TimeColumn {
	return &TimeColumn{name: name, format: convert.TimeFallback}
}

func (c *TimeColumn) Name() string     { return c.name }
func (c *TimeColumn) Type() ColumnType { return LocalTime }
func (c *TimeColumn) Size() int        { return len(c.values) }

func (c *TimeColumn) SetFormat(f convert.Formatter) {
	if !f.IsZero() {
		c.format = f
	}
}

func (c *TimeColumn) Format() convert.Formatter { return c.format }

// Append adds a typed value; only the clock part is kept.
func (c *TimeColumn) Append(t time.Time) {
	c.values = append(c.values, millisOfDay(t))
}

func (c *TimeColumn) AppendMissing() { c.values = append(c.values, MissingTime) }

func (c *TimeColumn) AppendCell(s string) error {
	if s == "" || convert.IsMissing(s) {
		c.AppendMissing()
		return nil
	}
	t, err := c.format.Parse(s)
	if err != nil {
		return fmt.Errorf("column %q: cannot parse time %q: %w", c.name, s, err)
	}
	c.Append(t)
	return nil
}

// Value returns cell i on the zero date.
func (c *TimeColumn) Value(i int) time.Time {
	ms := int(c.values[i])
	return time.Date(1, 1, 1, ms/3600000, ms/60000%60, ms/1000%60,
		ms%1000*int(time.Millisecond), time.UTC)
}

func (c *TimeColumn) IsMissing(i int) bool { return c.values[i] == MissingTime }

func (c *TimeColumn) ValueString(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	if c.values[i]%1000 != 0 {
		return c.Value(i).Format("15:04:05.000")
	}
	return c.Value(i).Format("15:04:05")
}

// DateTimeColumn stores date-time instants.
type DateTimeColumn struct {
	name   string
	format convert.Formatter
	values []int64
}

func NewDateTimeColumn(name string) *DateTimeColumn {
	return &DateTimeColumn{name: name, format: convert.DateTimeFallback}
}

func (c *DateTimeColumn) Name() string     { return c.name }
func (c *DateTimeColumn) Type() ColumnType { return LocalDateTime }
func (c *DateTimeColumn) Size() int        { return len(c.values) }

func (c *DateTimeColumn) SetFormat(f convert.Formatter) {
	if !f.IsZero() {
		c.format = f
	}
}

func (c *DateTimeColumn) Format() convert.Formatter { return c.format }

// Append adds a typed value at millisecond precision.
func (c *DateTimeColumn) Append(t time.Time) {
	c.values = append(c.values, t.UnixMilli())
}

func (c *DateTimeColumn) AppendMissing() {
	c.values = append(c.values, MissingDateTime)
}

func (c *DateTimeColumn) AppendCell(s string) error {
	if s == "" || convert.IsMissing(s) {
		c.AppendMissing()
		return nil
	}
	t, err := c.format.Parse(s)
	if err != nil {
		return fmt.Errorf("column %q: cannot parse datetime %q: %w", c.name, s, err)
	}
	c.Append(t)
	return nil
}

// Value returns cell i in UTC.
func (c *DateTimeColumn) Value(i int) time.Time {
	return time.UnixMilli(c.values[i]).UTC()
}

func (c *DateTimeColumn) IsMissing(i int) bool {
	return c.values[i] == MissingDateTime
}

func (c *DateTimeColumn) ValueString(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	return c.Value(i).Format("2006-01-02T15:04:05")
}
