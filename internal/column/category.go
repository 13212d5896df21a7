package column

import "csvtable/internal/convert"

// CategoryColumn stores free-form string values. The empty string doubles as
// the missing sentinel, matching how absent cells arrive from delimited
// sources.
type CategoryColumn struct {
	name   string
	values []string
}

func NewCategoryColumn(name string) *CategoryColumn {
	return &CategoryColumn{name: name}
}

func (c *CategoryColumn) Name() string     { return c.name }
func (c *CategoryColumn) Type() ColumnType { return Category }
func (c *CategoryColumn) Size() int        { return len(c.values) }

// Append adds a typed value.
func (c *CategoryColumn) Append(v string) { c.values = append(c.values, v) }

// AppendMissing adds a missing cell.
func (c *CategoryColumn) AppendMissing() { c.values = append(c.values, "") }

func (c *CategoryColumn) AppendCell(s string) error {
	if convert.IsMissing(s) {
		c.AppendMissing()
		return nil
	}
	c.Append(s)
	return nil
}

// Value returns cell i.
func (c *CategoryColumn) Value(i int) string { return c.values[i] }

func (c *CategoryColumn) IsMissing(i int) bool { return c.values[i] == "" }

func (c *CategoryColumn) ValueString(i int) string { return c.values[i] }
