package gocube

// Selection holds at most one picked cube.
type Selection struct {
	cube *Cube
}

// Select replaces the selection with c. A nil cube clears it.
func (s *Selection) Select(c *Cube) {
	s.cube = c
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.cube = nil
}

// Selected returns the selected cube, or nil.
func (s *Selection) Selected() *Cube {
	return s.cube
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	return s.cube == nil
}

// Is reports whether c is the selected cube.
func (s *Selection) Is(c *Cube) bool {
	return c != nil && s.cube == c
}
