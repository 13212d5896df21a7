package column

import (
	"fmt"

	"csvtable/internal/convert"
)

// Byte encoding for boolean cells.
const (
	boolFalse   int8 = 0
	boolTrue    int8 = 1
	boolMissing int8 = -1
)

// BoolColumn stores booleans one byte per cell so a missing sentinel fits
// alongside the two real values.
type BoolColumn struct {
	name   string
	values []int8
}

func NewBoolColumn(name string) *BoolColumn { return &BoolColumn{name: name} }

func (c *BoolColumn) Name() string     { return c.name }
func (c *BoolColumn) Type() ColumnType { return Boolean }
func (c *BoolColumn) Size() int        { return len(c.values) }

// Append adds a typed value.
func (c *BoolColumn) Append(v bool) {
	if v {
		c.values = append(c.values, boolTrue)
	} else {
		c.values = append(c.values, boolFalse)
	}
}

// AppendMissing adds a missing cell.
func (c *BoolColumn) AppendMissing() { c.values = append(c.values, boolMissing) }

// AppendCell converts s using the full boolean vocabulary, which includes
// the bare digits "1" and "0". The stricter detection vocabulary only
// matters while a column's type is still undecided.
func (c *BoolColumn) AppendCell(s string) error {
	switch {
	case s == "" || convert.IsMissing(s):
		c.AppendMissing()
	case convert.IsTrue(s):
		c.Append(true)
	case convert.IsFalse(s):
		c.Append(false)
	default:
		return fmt.Errorf("column %q: invalid boolean %q", c.name, s)
	}
	return nil
}

// Value returns cell i; missing cells read as false.
func (c *BoolColumn) Value(i int) bool { return c.values[i] == boolTrue }

func (c *BoolColumn) IsMissing(i int) bool { return c.values[i] == boolMissing }

func (c *BoolColumn) ValueString(i int) string {
	switch c.values[i] {
	case boolTrue:
		return "true"
	case boolFalse:
		return "false"
	default:
		return ""
	}
}
