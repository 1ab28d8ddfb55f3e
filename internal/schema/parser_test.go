package schema

import (
	"testing"
)

// TestParseWithoutGroups tests that ungrouped schemas report no groups
func TestParseWithoutGroups(t *testing.T) {
	defs := []Property{
		{Property: "name", ItemType: ItemProperty, Type: "string"},
		{Property: "size", ItemType: ItemProperty, Type: "number"},
	}

	parsed := Parse(defs)

	if parsed.HasGroups {
		t.Error("Parse().HasGroups = true, want false")
	}
	if len(parsed.Properties) != 2 {
		t.Fatalf("Parse() returned %d items, want 2", len(parsed.Properties))
	}
	for _, item := range parsed.Properties {
		if item.Group.IsSet() {
			t.Errorf("property %q resolved to group %q, want none", item.Property.Property, item.Group)
		}
	}
}

// TestParseGroupCursor tests group index inheritance and explicit overrides
func TestParseGroupCursor(t *testing.T) {
	defs := []Property{
		{Property: "top", ItemType: ItemProperty},
		{ItemType: ItemGroup, GroupIndex: "1", Title: "Appearance"},
		{Property: "color", ItemType: ItemProperty},
		{Property: "border", ItemType: ItemProperty, GroupIndex: "7"},
		{Property: "opacity", ItemType: ItemProperty},
		{ItemType: ItemGroup, GroupIndex: "2", Title: "Layout"},
		{Property: "width", ItemType: ItemProperty},
	}

	parsed := Parse(defs)

	if !parsed.HasGroups {
		t.Fatal("Parse().HasGroups = false, want true")
	}

	want := []GroupIndex{NoGroup, "1", "1", "7", "1", "2", "2"}
	for i, item := range parsed.Properties {
		if item.Group != want[i] {
			t.Errorf("item %d (%s) group = %q, want %q", i, item.Label(), item.Group, want[i])
		}
	}
}

// TestParseDoesNotMutateInput tests that parsing is a pure transform
func TestParseDoesNotMutateInput(t *testing.T) {
	defs := []Property{
		{ItemType: ItemGroup, GroupIndex: "1"},
		{Property: "color", ItemType: ItemProperty},
	}

	Parse(defs)

	if defs[1].GroupIndex.IsSet() {
		t.Errorf("Parse() mutated input group index to %q", defs[1].GroupIndex)
	}
}

func TestPropertyNames(t *testing.T) {
	parsed := Parse([]Property{
		{ItemType: ItemGroup, GroupIndex: "1"},
		{Property: "a", ItemType: ItemProperty},
		{Property: "b", ItemType: ItemProperty},
	})

	names := parsed.PropertyNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("PropertyNames() = %v, want [a b]", names)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		def  Property
		want string
	}{
		{"Title wins", Property{Property: "color", Title: "Color"}, "Color"},
		{"Falls back to name", Property{Property: "color"}, "color"},
		{"Group falls back to index", Property{ItemType: ItemGroup, GroupIndex: "3"}, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.def.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
