package state

// ListCursor is the highlighted row of the section list.
type ListCursor struct {
	Cursor int
}

// Current returns the section under the cursor.
func (c *ListCursor) Current() Section {
	c.clamp()
	return Section(c.Cursor)
}

// Reset moves the cursor onto s.
func (c *ListCursor) Reset(s Section) {
	if !s.Valid() {
		s = Introduction
	}
	c.Cursor = int(s)
}

// MoveUp moves the cursor one row up.
func (c *ListCursor) MoveUp() bool {
	return c.moveCursorBy(-1)
}

// MoveDown moves the cursor one row down.
func (c *ListCursor) MoveDown() bool {
	return c.moveCursorBy(1)
}

// MoveCursorHome moves the cursor to the first section.
func (c *ListCursor) MoveCursorHome() bool {
	old := c.Cursor
	c.Cursor = 0
	return old != c.Cursor
}

// MoveCursorEnd moves the cursor to the last section.
func (c *ListCursor) MoveCursorEnd() bool {
	old := c.Cursor
	c.Cursor = int(sectionCount) - 1
	return old != c.Cursor
}

func (c *ListCursor) moveCursorBy(delta int) bool {
	old := c.Cursor
	c.Cursor += delta
	c.clamp()
	return c.Cursor != old
}

func (c *ListCursor) clamp() {
	if c.Cursor < 0 {
		c.Cursor = 0
	}
	if c.Cursor >= int(sectionCount) {
		c.Cursor = int(sectionCount) - 1
	}
}
