package schema

// Annotated is a schema item together with the group index it resolved to.
type Annotated struct {
	Property

	// Group is the index of the group the item belongs to, NoGroup for items
	// outside any group. For group markers it is the marker's own index.
	Group GroupIndex
}

// Parsed is the tree metadata of a schema.
type Parsed struct {
	Properties []Annotated
	HasGroups  bool
}

// Parse annotates every item with its group index in a single pass.
//
// A group marker moves the cursor to its own index; following properties inherit
// the cursor unless they name an index of their own, which applies to that
// property only.
func Parse(defs []Property) Parsed {
	parsed := Parsed{Properties: make([]Annotated, 0, len(defs))}

	cursor := NoGroup
	for _, def := range defs {
		item := Annotated{Property: def}

		switch {
		case def.IsGroup():
			parsed.HasGroups = true
			cursor = def.GroupIndex
			item.Group = def.GroupIndex
		case def.GroupIndex.IsSet():
			item.Group = def.GroupIndex
		default:
			item.Group = cursor
		}

		parsed.Properties = append(parsed.Properties, item)
	}

	return parsed
}

// PropertyNames returns the names of every non-group item, in order.
func (p Parsed) PropertyNames() []string {
	names := make([]string, 0, len(p.Properties))
	for _, item := range p.Properties {
		if !item.IsGroup() {
			names = append(names, item.Property.Property)
		}
	}
	return names
}
