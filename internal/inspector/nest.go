package inspector

// MergeChildSurface splices a nested surface's rows into this surface's
// container right after anchor. Rows are inserted one at a time in reverse order
// so the child's order is kept. Afterwards the child lives in the same container
// and its rows are addressed by the group machinery like native rows.
func (s *Surface) MergeChildSurface(child *Surface, anchor *Row) error {
	if s.disposed || child.disposed {
		return ErrDisposed
	}
	if s.container.IndexOf(anchor) < 0 {
		return NewRowLookupError("merge anchor row is not in the container")
	}
	if child.container == s.container {
		return nil
	}

	if child.shared != s.shared || child.parentID != s.id {
		return NewRowLookupError("child surface belongs to another parent")
	}

	previous := child.container
	rows := previous.Rows()
	for i := len(rows) - 1; i >= 0; i-- {
		s.container.InsertAfter(anchor, rows[i])
	}
	previous.Clear()

	child.repoint(previous, s.container)
	return nil
}

// repoint moves a surface, and every nested surface that shared its container,
// to another container.
func (s *Surface) repoint(from, to *Container) {
	if s.container != from {
		return
	}
	s.container = to
	for _, grandchild := range s.Children() {
		grandchild.repoint(from, to)
	}
}
