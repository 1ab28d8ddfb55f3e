package inspector

// RowKind tells a renderer how to draw a row.
type RowKind int

const (
	// RowProperty is a plain single-value property
	RowProperty RowKind = iota
	// RowGroup is a collapsible group header
	RowGroup
	// RowComposite is a property whose editor hosts a nested surface
	RowComposite
)

// Row is one entry of the physical row sequence. Group header and composite
// rows carry their own group ID plus the parent group ID; plain property rows
// carry only the parent group ID.
type Row struct {
	Kind        RowKind
	Property    string
	Title       string
	Description string

	GroupID       GroupID
	ParentGroupID GroupID

	// Level is the nesting depth of the group the row was rendered under. It is
	// set once when the row is emitted.
	Level int

	Hidden      bool
	FullWidth   bool
	Addressable bool
	Changed     bool
	Invalid     bool

	// Content is the inline text an editor contributes to the row.
	Content string
}

// Container is the ordered row sequence owned by a root surface. Nested
// surfaces build into their own container until they are merged.
type Container struct {
	rows []*Row
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{}
}

// Append adds a row at the end.
func (c *Container) Append(row *Row) *Row {
	c.rows = append(c.rows, row)
	return row
}

// InsertAfter inserts row immediately after anchor.
func (c *Container) InsertAfter(anchor, row *Row) bool {
	idx := c.IndexOf(anchor)
	if idx < 0 {
		return false
	}
	c.rows = append(c.rows, nil)
	copy(c.rows[idx+2:], c.rows[idx+1:])
	c.rows[idx+1] = row
	return true
}

// Remove deletes a row. Unknown rows are ignored.
func (c *Container) Remove(row *Row) {
	idx := c.IndexOf(row)
	if idx < 0 {
		return
	}
	c.rows = append(c.rows[:idx], c.rows[idx+1:]...)
}

// IndexOf returns the position of a row, or -1.
func (c *Container) IndexOf(row *Row) int {
	for i, r := range c.rows {
		if r == row {
			return i
		}
	}
	return -1
}

// Rows returns the rows in display order.
func (c *Container) Rows() []*Row {
	out := make([]*Row, len(c.rows))
	copy(out, c.rows)
	return out
}

// Visible returns the rows that are not hidden.
func (c *Container) Visible() []*Row {
	var out []*Row
	for _, r := range c.rows {
		if !r.Hidden {
			out = append(out, r)
		}
	}
	return out
}

// HeaderRow returns the row that carries a group's own ID.
func (c *Container) HeaderRow(id GroupID) *Row {
	for _, r := range c.rows {
		if r.GroupID == id {
			return r
		}
	}
	return nil
}

// Len returns the number of rows.
func (c *Container) Len() int {
	return len(c.rows)
}

// Clear drops every row.
func (c *Container) Clear() {
	c.rows = nil
}
