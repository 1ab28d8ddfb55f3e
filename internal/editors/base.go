package editors

import (
	"fmt"
	"strconv"

	"github.com/muurk/propsheet/internal/inspector"
	"github.com/muurk/propsheet/internal/schema"
)

// TextEditor is implemented by editors whose value can be typed in.
type TextEditor interface {
	inspector.Editor
	Text() string
	SetText(text string) error
}

// Toggler is implemented by on/off editors.
type Toggler interface {
	inspector.Editor
	Toggle() error
}

// Chooser is implemented by editors with a fixed list of choices.
type Chooser interface {
	inspector.Editor
	Choices() []schema.Option
	Selected() int
	Choose(index int) error
	Open()
	Close()
	IsOpen() bool
}

// Focuser lets a renderer pick up focus requests made by the engine.
type Focuser interface {
	TakeFocus() bool
}

// Marker exposes the invalid marker of an editor.
type Marker interface {
	IsInvalid() bool
}

// base carries the state every editor kind shares.
type base struct {
	surface  *inspector.Surface
	def      schema.Property
	group    *inspector.Group
	row      *inspector.Row
	focus    bool
	invalid  bool
	disposed bool
}

func newBase(ctx inspector.EditorContext) base {
	return base{
		surface: ctx.Surface,
		def:     ctx.Definition,
		group:   ctx.Group,
		row:     ctx.Row,
	}
}

func (b *base) PropertyName() string {
	return b.def.Property
}

func (b *base) Definition() schema.Property {
	return b.def
}

func (b *base) OnInspectorPropertyChanged(name string, value any) {
	if name == b.def.Property {
		b.invalid = false
	}
}

func (b *base) UndefinedValue() any {
	return nil
}

func (b *base) Focus() {
	b.focus = true
}

// TakeFocus reports and clears a pending focus request.
func (b *base) TakeFocus() bool {
	f := b.focus
	b.focus = false
	return f
}

func (b *base) MarkInvalid() {
	b.invalid = true
}

func (b *base) IsInvalid() bool {
	return b.invalid
}

func (b *base) IsGroupedEditor() bool {
	return false
}

func (b *base) SupportsExternalParameterEditor() bool {
	return true
}

func (b *base) Dispose() {
	b.disposed = true
}

// current returns the stored value, falling back to the default.
func (b *base) current() (any, bool) {
	if v, ok := b.surface.Value(b.def.Property); ok {
		return v, true
	}
	if b.def.Default != nil {
		return b.def.Default, true
	}
	return nil, false
}

func (b *base) display(text string) {
	if b.row != nil {
		b.row.Content = text
	}
}

func (b *base) set(value any) error {
	if b.disposed {
		return inspector.ErrDisposed
	}
	return b.surface.SetPropertyValue(b.def.Property, value)
}

// FormatValue renders a value for display.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	default:
		if inspector.IsRemoved(v) {
			return ""
		}
		return fmt.Sprintf("%v", v)
	}
}
