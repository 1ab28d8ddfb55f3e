package inspector

import (
	"fmt"

	"github.com/muurk/propsheet/internal/schema"
)

// GroupID identifies a group within one GroupManager. IDs are derived from the
// instance ID and the schema group indexes, so they stay the same across
// rebuilds of the same target.
type GroupID string

// Group is a collapsible node of the property tree. Parents are referenced by
// ID and resolved through the owning GroupManager.
type Group struct {
	ID       GroupID
	ParentID GroupID
	Index    schema.GroupIndex
	Level    int
}

// HasParent reports whether the group is nested under another group.
func (g *Group) HasParent() bool {
	return g.ParentID != ""
}

// GroupManager owns group identity and expand/collapse state for one inspector
// instance. The root surface creates it and every nested surface shares it.
type GroupManager struct {
	instanceID string
	groups     map[GroupID]*Group

	// collapsed records groups the user collapsed. Anything not listed is
	// expanded, including groups that do not exist yet.
	collapsed map[GroupID]bool
}

// NewGroupManager creates a manager whose IDs are seeded by instanceID.
func NewGroupManager(instanceID string) *GroupManager {
	return &GroupManager{
		instanceID: instanceID,
		groups:     make(map[GroupID]*Group),
		collapsed:  make(map[GroupID]bool),
	}
}

// CreateRoot creates the implicit root group of a root surface.
func (m *GroupManager) CreateRoot() *Group {
	g := &Group{ID: m.uniqueID(GroupID(m.instanceID))}
	m.groups[g.ID] = g
	return g
}

// CreateGroup creates a fresh group under parent (nil for a top-level group).
// Every call creates a new node; callers invoke it once per group marker.
func (m *GroupManager) CreateGroup(index schema.GroupIndex, parent *Group) *Group {
	g := &Group{Index: index}

	base := GroupID(fmt.Sprintf("%s/%s", m.instanceID, index))
	if parent != nil {
		g.ParentID = parent.ID
		g.Level = parent.Level + 1
		base = GroupID(fmt.Sprintf("%s/%s", parent.ID, index))
	}

	g.ID = m.uniqueID(base)
	m.groups[g.ID] = g
	return g
}

func (m *GroupManager) uniqueID(base GroupID) GroupID {
	id := base
	for n := 2; ; n++ {
		if _, taken := m.groups[id]; !taken {
			return id
		}
		id = GroupID(fmt.Sprintf("%s#%d", base, n))
	}
}

// Group returns a group by ID, or nil.
func (m *GroupManager) Group(id GroupID) *Group {
	return m.groups[id]
}

// Parent returns the parent of a group, or nil.
func (m *GroupManager) Parent(id GroupID) *Group {
	g := m.groups[id]
	if g == nil || !g.HasParent() {
		return nil
	}
	return m.groups[g.ParentID]
}

// Ancestors returns the ancestors of a group, outermost first.
func (m *GroupManager) Ancestors(id GroupID) []*Group {
	var chain []*Group
	for p := m.Parent(id); p != nil; p = m.Parent(p.ID) {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// IsDescendant reports whether id is nested, at any depth, under ancestor.
func (m *GroupManager) IsDescendant(id, ancestor GroupID) bool {
	for p := m.Parent(id); p != nil; p = m.Parent(p.ID) {
		if p.ID == ancestor {
			return true
		}
	}
	return false
}

// IsGroupExpanded reports the recorded state of a group. Groups start expanded.
func (m *GroupManager) IsGroupExpanded(id GroupID) bool {
	return !m.collapsed[id]
}

// SetGroupStatus records the state of one group. Descendant records are left
// untouched, so re-expanding a parent shows its children as they were.
func (m *GroupManager) SetGroupStatus(id GroupID, expanded bool) {
	if expanded {
		delete(m.collapsed, id)
		return
	}
	m.collapsed[id] = true
}

// IsVisible reports whether a group and all of its ancestors are expanded.
func (m *GroupManager) IsVisible(id GroupID) bool {
	if id == "" {
		return true
	}
	if !m.IsGroupExpanded(id) {
		return false
	}
	for _, a := range m.Ancestors(id) {
		if !m.IsGroupExpanded(a.ID) {
			return false
		}
	}
	return true
}

// ReleaseGroup forgets a group node. Its recorded expansion state is kept.
func (m *GroupManager) ReleaseGroup(id GroupID) {
	delete(m.groups, id)
}

// Len returns the number of live groups.
func (m *GroupManager) Len() int {
	return len(m.groups)
}

// FindGroupRows returns the rows that belong to a group, in display order. With
// includeDescendants the rows of every nested group are included as well. The
// group's own header row belongs to its parent and is never returned.
func (m *GroupManager) FindGroupRows(c *Container, id GroupID, includeDescendants bool) []*Row {
	var rows []*Row
	for _, r := range c.rows {
		switch {
		case r.ParentGroupID == id:
			rows = append(rows, r)
		case includeDescendants && m.IsDescendant(r.ParentGroupID, id):
			rows = append(rows, r)
		}
	}
	return rows
}

// MarkInvalid flags the header rows of a group and all of its ancestors.
func (m *GroupManager) MarkInvalid(c *Container, id GroupID) {
	ids := []GroupID{id}
	for _, a := range m.Ancestors(id) {
		ids = append(ids, a.ID)
	}
	for _, gid := range ids {
		if header := c.HeaderRow(gid); header != nil {
			header.Invalid = true
		}
	}
}

// UnmarkInvalidGroups clears every invalid marker in the container.
func (m *GroupManager) UnmarkInvalidGroups(c *Container) {
	for _, r := range c.rows {
		r.Invalid = false
	}
}
