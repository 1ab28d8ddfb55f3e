package inspector

import (
	"time"

	"github.com/muurk/propsheet/internal/logging"
)

// Scheduler runs fn once d has elapsed, on the same logical thread that owns the
// surface. Implementations must never run fn concurrently with other surface
// calls.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// animation reveals or hides rows one at a time.
type animation struct {
	rows     []*Row
	next     int
	hide     bool
	canceled bool
}

// step applies the next row and reports whether rows remain.
func (a *animation) step() bool {
	if a.next >= len(a.rows) {
		return false
	}
	a.rows[a.next].Hidden = a.hide
	a.next++
	return a.next < len(a.rows)
}

// ToggleGroup flips a group between expanded and collapsed, or forces it open
// when forceExpand is set. Rows change one at a time within the configured
// animation budget; the new state is recorded after the last row. Toggling a
// group whose transition is still running reverses that transition.
func (s *Surface) ToggleGroup(id GroupID, forceExpand bool) error {
	if s.disposed {
		return ErrDisposed
	}
	if s.shared.groups.Group(id) == nil {
		return NewRowLookupError("no group " + string(id))
	}

	expanded := s.shared.groups.IsGroupExpanded(id)
	if a := s.shared.animations[id]; a != nil {
		expanded = !a.hide
	}
	target := forceExpand || !expanded
	if target == expanded {
		return nil
	}

	s.transition(id, target, true)
	return nil
}

// ExpandGroupParents opens every ancestor of a group, outermost first, without
// animation.
func (s *Surface) ExpandGroupParents(id GroupID) {
	if s.disposed {
		return
	}
	for _, ancestor := range s.shared.groups.Ancestors(id) {
		s.expandNow(ancestor.ID)
	}
}

func (s *Surface) expandNow(id GroupID) {
	if id == "" {
		return
	}
	if a := s.shared.animations[id]; a == nil && s.shared.groups.IsGroupExpanded(id) {
		return
	}
	s.transition(id, true, false)
}

// FocusProperty reveals a property's row and focuses its authoritative editor.
func (s *Surface) FocusProperty(name string) error {
	if s.disposed {
		return ErrDisposed
	}
	row := s.rows[name]
	editor := s.editorByName[name]
	if row == nil || editor == nil {
		return NewRowLookupError("no row for property " + name)
	}

	s.ExpandGroupParents(row.ParentGroupID)
	s.expandNow(row.ParentGroupID)

	if ext := s.externalBy[name]; ext != nil && ext.IsEditorVisible() {
		ext.Focus()
		return nil
	}
	editor.Focus()
	return nil
}

func (s *Surface) transition(id GroupID, expand bool, animate bool) {
	groups := s.shared.groups
	if running := s.shared.animations[id]; running != nil {
		running.canceled = true
		delete(s.shared.animations, id)
	}

	var rows []*Row
	if expand {
		rows = s.rowsToReveal(id)
	} else {
		rows = groups.FindGroupRows(s.container, id, true)
	}

	commit := func() {
		groups.SetGroupStatus(id, expand)
	}

	a := &animation{rows: rows, hide: !expand}
	sched := s.shared.opts.Scheduler
	budget := s.shared.opts.AnimationBudget

	if !animate || sched == nil || budget <= 0 || len(rows) == 0 {
		for a.step() {
		}
		commit()
		logging.LogGroupToggle(string(id), expand, len(rows), false)
		return
	}

	// The whole transition takes budget regardless of the number of rows.
	delay := budget / time.Duration(len(rows))
	var tick func()
	tick = func() {
		if s.disposed || a.canceled {
			return
		}
		if a.step() {
			sched.After(delay, tick)
			return
		}
		delete(s.shared.animations, id)
		commit()
	}
	s.shared.animations[id] = a
	sched.After(delay, tick)
	logging.LogGroupToggle(string(id), expand, len(rows), true)
}

// rowsToReveal returns the rows that become visible when id opens: its own rows
// plus descendant rows whose groups between them and id are all expanded.
func (s *Surface) rowsToReveal(id GroupID) []*Row {
	groups := s.shared.groups

	var rows []*Row
	for _, r := range groups.FindGroupRows(s.container, id, true) {
		if s.openBetween(r.ParentGroupID, id) {
			rows = append(rows, r)
		}
	}
	return rows
}

// openBetween reports whether from and every ancestor below stop are expanded.
func (s *Surface) openBetween(from, stop GroupID) bool {
	groups := s.shared.groups
	for gid := from; gid != "" && gid != stop; {
		if !groups.IsGroupExpanded(gid) {
			return false
		}
		g := groups.Group(gid)
		if g == nil {
			return true
		}
		gid = g.ParentID
	}
	return true
}
