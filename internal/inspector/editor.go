package inspector

import (
	"sort"

	"github.com/muurk/propsheet/internal/schema"
)

// DefaultEditorKind is used for properties that do not name a type.
const DefaultEditorKind = "string"

// Editor wraps one property. It is created while its surface builds, receives
// change notifications for the lifetime of the surface, and is disposed with it.
type Editor interface {
	PropertyName() string

	// OnInspectorPropertyChanged is called for every change on the surface,
	// including changes of the editor's own property.
	OnInspectorPropertyChanged(name string, value any)

	// UndefinedValue is reported by Values when the property has no stored value.
	// Nil means "no substitute".
	UndefinedValue() any

	Focus()
	Validate() bool
	MarkInvalid()
	UpdateDisplayedValue(value any)
	IsGroupedEditor() bool
	SupportsExternalParameterEditor() bool
	Dispose()
}

// CompositeEditor is a grouped editor that hosts a nested surface.
type CompositeEditor interface {
	Editor
	ChildSurface() *Surface
}

// ExternalParameterEditor is an alternate input for a property. While it is
// visible it, not the property's own editor, is authoritative for the value.
type ExternalParameterEditor interface {
	PropertyName() string
	IsEditorVisible() bool
	Value() any
	Validate() bool
	Focus()
	Dispose()
}

// EditorContext is what a factory gets to build an editor.
type EditorContext struct {
	Surface    *Surface
	Definition schema.Property
	Group      *Group
	Row        *Row
}

// Value returns the stored value of the property being built.
func (ctx EditorContext) Value() (any, bool) {
	return ctx.Surface.Value(ctx.Definition.Property)
}

// EditorFactory builds one editor kind.
type EditorFactory func(ctx EditorContext) (Editor, error)

// ExternalFactory builds the external parameter editor for a property whose
// editor supports one.
type ExternalFactory func(ctx EditorContext, base Editor) (ExternalParameterEditor, error)

// Registry maps editor kinds to factories.
type Registry struct {
	factories map[string]EditorFactory
	external  ExternalFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]EditorFactory)}
}

// Register adds or replaces an editor kind.
func (r *Registry) Register(kind string, factory EditorFactory) {
	r.factories[kind] = factory
}

// RegisterExternal sets the external parameter editor factory.
func (r *Registry) RegisterExternal(factory ExternalFactory) {
	r.external = factory
}

// Lookup returns the factory for a kind, failing for unknown kinds.
func (r *Registry) Lookup(kind, property string) (EditorFactory, error) {
	if kind == "" {
		kind = DefaultEditorKind
	}
	factory, ok := r.factories[kind]
	if !ok {
		return nil, NewUnknownEditorError(kind, property)
	}
	return factory, nil
}

// Kinds lists the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
