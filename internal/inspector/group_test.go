package inspector

import (
	"testing"
)

// TestGroupManagerCreate tests IDs and levels of created groups
func TestGroupManagerCreate(t *testing.T) {
	m := NewGroupManager("panel")
	root := m.CreateRoot()

	if root.ID != "panel" || root.Level != 0 || root.HasParent() {
		t.Fatalf("CreateRoot() = %+v", root)
	}

	a := m.CreateGroup("1", root)
	b := m.CreateGroup("1", root)
	c := m.CreateGroup("x", a)
	top := m.CreateGroup("9", nil)

	tests := []struct {
		name      string
		group     *Group
		wantID    GroupID
		wantLevel int
	}{
		{"first", a, "panel/1", 1},
		{"duplicate index", b, "panel/1#2", 1},
		{"nested", c, "panel/1/x", 2},
		{"no parent", top, "panel/9", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.group.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", tt.group.ID, tt.wantID)
			}
			if tt.group.Level != tt.wantLevel {
				t.Errorf("Level = %d, want %d", tt.group.Level, tt.wantLevel)
			}
		})
	}

	if m.Len() != 5 {
		t.Errorf("Len() = %d, want 5", m.Len())
	}
}

// TestGroupManagerIDsAreStable tests that the same schema yields the same IDs
func TestGroupManagerIDsAreStable(t *testing.T) {
	build := func() []GroupID {
		m := NewGroupManager("panel")
		root := m.CreateRoot()
		g := m.CreateGroup("1", root)
		return []GroupID{root.ID, g.ID, m.CreateGroup("2", g).ID}
	}

	first, second := build(), build()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("ID %d = %q then %q", i, first[i], second[i])
		}
	}
}

// TestGroupManagerAncestors tests ancestry lookups
func TestGroupManagerAncestors(t *testing.T) {
	m := NewGroupManager("p")
	root := m.CreateRoot()
	a := m.CreateGroup("a", root)
	b := m.CreateGroup("b", a)
	c := m.CreateGroup("c", b)

	chain := m.Ancestors(c.ID)
	if len(chain) != 3 || chain[0] != root || chain[1] != a || chain[2] != b {
		t.Errorf("Ancestors() = %v, want root, a, b", chain)
	}
	if !m.IsDescendant(c.ID, a.ID) {
		t.Error("c not a descendant of a")
	}
	if m.IsDescendant(a.ID, c.ID) {
		t.Error("a reported as a descendant of c")
	}
	if m.Parent(root.ID) != nil {
		t.Error("root has a parent")
	}
}

// TestGroupManagerState tests expansion records
func TestGroupManagerState(t *testing.T) {
	m := NewGroupManager("p")
	root := m.CreateRoot()
	a := m.CreateGroup("a", root)
	b := m.CreateGroup("b", a)

	if !m.IsGroupExpanded(a.ID) {
		t.Error("new group not expanded")
	}

	m.SetGroupStatus(a.ID, false)
	if m.IsGroupExpanded(a.ID) {
		t.Error("SetGroupStatus(false) not recorded")
	}
	if !m.IsGroupExpanded(b.ID) {
		t.Error("collapsing a changed the record of b")
	}
	if m.IsVisible(b.ID) {
		t.Error("b visible under a collapsed parent")
	}

	m.ReleaseGroup(a.ID)
	if m.Group(a.ID) != nil {
		t.Error("released group still present")
	}
	if m.IsGroupExpanded(a.ID) {
		t.Error("ReleaseGroup dropped the recorded state")
	}
}

// TestFindGroupRows tests row lookup with and without descendants
func TestFindGroupRows(t *testing.T) {
	m := NewGroupManager("p")
	root := m.CreateRoot()
	a := m.CreateGroup("a", root)
	b := m.CreateGroup("b", a)

	c := NewContainer()
	header := c.Append(&Row{Kind: RowGroup, GroupID: a.ID, ParentGroupID: root.ID})
	r1 := c.Append(&Row{Property: "r1", ParentGroupID: a.ID})
	nested := c.Append(&Row{Kind: RowGroup, GroupID: b.ID, ParentGroupID: a.ID})
	r2 := c.Append(&Row{Property: "r2", ParentGroupID: b.ID})
	c.Append(&Row{Property: "r3", ParentGroupID: root.ID})

	own := m.FindGroupRows(c, a.ID, false)
	if len(own) != 2 || own[0] != r1 || own[1] != nested {
		t.Errorf("FindGroupRows(a, false) = %v", own)
	}

	all := m.FindGroupRows(c, a.ID, true)
	if len(all) != 3 || all[2] != r2 {
		t.Errorf("FindGroupRows(a, true) = %v", all)
	}

	m.MarkInvalid(c, b.ID)
	if !nested.Invalid || !header.Invalid {
		t.Error("MarkInvalid did not flag the group and its ancestors")
	}
	m.UnmarkInvalidGroups(c)
	if nested.Invalid || header.Invalid {
		t.Error("UnmarkInvalidGroups left markers")
	}
}
