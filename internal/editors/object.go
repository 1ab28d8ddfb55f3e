package editors

import (
	"fmt"

	"github.com/muurk/propsheet/internal/inspector"
	"github.com/muurk/propsheet/internal/schema"
)

// ObjectEditor edits a nested object. It builds a child surface from the
// property's sub-schema, merges the child's rows under its own row and writes
// the child's stored values back as one map.
type ObjectEditor struct {
	base
	child *inspector.Surface
	group *inspector.Group

	// stored reports whether the property had a map of its own when built
	stored bool
}

// NewObject is the factory for the "object" kind.
func NewObject(ctx inspector.EditorContext) (inspector.Editor, error) {
	def := ctx.Definition
	if len(def.Properties) == 0 {
		return nil, fmt.Errorf("object %q has no properties", def.Property)
	}

	e := &ObjectEditor{base: newBase(ctx)}

	values := map[string]any{}
	_, e.stored = ctx.Surface.Value(def.Property)
	if v, ok := e.current(); ok {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("object %q: value is %T, not a map", def.Property, v)
		}
		values = m
	}

	e.group = ctx.Surface.Groups().CreateGroup(schema.GroupIndex(def.Property), ctx.Group)
	child, err := inspector.NewChild(ctx.Surface, def.Properties, values, e.group, e.childChanged)
	if err != nil {
		ctx.Surface.Groups().ReleaseGroup(e.group.ID)
		return nil, err
	}
	e.child = child

	if err := ctx.Surface.MergeChildSurface(child, ctx.Row); err != nil {
		child.Dispose()
		ctx.Surface.Groups().ReleaseGroup(e.group.ID)
		return nil, err
	}
	return e, nil
}

func (e *ObjectEditor) childChanged(string, any) {
	if e.disposed {
		return
	}
	values := e.child.StoredValues()
	if !e.stored && (len(values) == 0 || inspector.SameValue(values, e.def.Default)) {
		_ = e.set(nil)
		return
	}
	_ = e.set(values)
}

// ChildSurface returns the nested surface.
func (e *ObjectEditor) ChildSurface() *inspector.Surface {
	return e.child
}

func (e *ObjectEditor) IsGroupedEditor() bool {
	return true
}

func (e *ObjectEditor) SupportsExternalParameterEditor() bool {
	return false
}

// UpdateDisplayedValue pushes a map into the nested surface without raising
// change events.
func (e *ObjectEditor) UpdateDisplayedValue(value any) {
	m, _ := value.(map[string]any)
	for _, name := range e.child.Parsed().PropertyNames() {
		v, ok := m[name]
		if !ok {
			v = nil
		}
		_ = e.child.SetPropertyValueWith(name, v, inspector.SetOptions{
			SuppressEvents: true,
			ForceRedisplay: true,
		})
	}
}

func (e *ObjectEditor) Validate() bool {
	return e.child.Validate()
}

// Focus moves focus into the nested surface: to its invalid property if one is
// marked, otherwise to its first property.
func (e *ObjectEditor) Focus() {
	for _, name := range e.child.Parsed().PropertyNames() {
		if row := e.child.Row(name); row != nil && row.Invalid {
			return
		}
	}
	if names := e.child.Parsed().PropertyNames(); len(names) > 0 {
		_ = e.child.FocusProperty(names[0])
		return
	}
	e.base.Focus()
}

func (e *ObjectEditor) Dispose() {
	if e.disposed {
		return
	}
	e.base.Dispose()
	e.child.Dispose()
	e.surface.Groups().ReleaseGroup(e.group.ID)
}
