package inspector

import (
	"fmt"
	"testing"
	"time"

	"github.com/muurk/propsheet/internal/schema"
)

// harness records what the fake editors see.
type harness struct {
	reg       *Registry
	editors   map[string]*fakeEditor
	externals map[string]*fakeExternal
	invalid   map[string]bool
	log       []string
}

func newHarness() *harness {
	h := &harness{
		reg:       NewRegistry(),
		editors:   make(map[string]*fakeEditor),
		externals: make(map[string]*fakeExternal),
		invalid:   make(map[string]bool),
	}
	h.reg.Register("string", h.plain)
	h.reg.Register("number", h.plain)
	h.reg.Register("object", h.composite)
	h.reg.RegisterExternal(h.external)
	return h
}

func (h *harness) record(format string, args ...any) {
	h.log = append(h.log, fmt.Sprintf(format, args...))
}

func (h *harness) plain(ctx EditorContext) (Editor, error) {
	e := &fakeEditor{h: h, name: ctx.Definition.Property, row: ctx.Row}
	h.editors[e.name] = e
	return e, nil
}

func (h *harness) composite(ctx EditorContext) (Editor, error) {
	g := ctx.Surface.Groups().CreateGroup(schema.GroupIndex(ctx.Definition.Property), ctx.Group)
	child, err := NewChild(ctx.Surface, ctx.Definition.Properties, nil, g, nil)
	if err != nil {
		return nil, err
	}
	if err := ctx.Surface.MergeChildSurface(child, ctx.Row); err != nil {
		return nil, err
	}
	e := &fakeComposite{fakeEditor: fakeEditor{h: h, name: ctx.Definition.Property, row: ctx.Row}, child: child}
	h.editors[e.name] = &e.fakeEditor
	return e, nil
}

func (h *harness) external(ctx EditorContext, _ Editor) (ExternalParameterEditor, error) {
	name := ctx.Definition.Property
	ext, ok := h.externals[name]
	if !ok {
		ext = &fakeExternal{}
		h.externals[name] = ext
	}
	ext.h = h
	ext.name = name
	return ext, nil
}

func (h *harness) surface(t *testing.T, defs []schema.Property, values map[string]any, opts Options) *Surface {
	t.Helper()
	opts.Registry = h.reg
	s, err := New(nil, defs, values, "inst", opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

type fakeEditor struct {
	h         *harness
	name      string
	row       *Row
	undefined any
	notified  []string
	displayed any
	focused   bool
	invalid   bool
	disposed  bool
}

func (e *fakeEditor) PropertyName() string { return e.name }

func (e *fakeEditor) OnInspectorPropertyChanged(name string, value any) {
	e.notified = append(e.notified, name)
	e.h.record("notify:%s:%s", e.name, name)
}

func (e *fakeEditor) UndefinedValue() any { return e.undefined }
func (e *fakeEditor) Focus() { e.focused = true }
func (e *fakeEditor) MarkInvalid() { e.invalid = true }

func (e *fakeEditor) Validate() bool {
	e.h.record("validate:%s", e.name)
	return !e.h.invalid[e.name]
}

func (e *fakeEditor) UpdateDisplayedValue(value any) { e.displayed = value }
func (e *fakeEditor) IsGroupedEditor() bool { return false }
func (e *fakeEditor) SupportsExternalParameterEditor() bool {
	return true
}

func (e *fakeEditor) Dispose() {
	e.disposed = true
	e.h.record("dispose:editor:%s", e.name)
}

type fakeComposite struct {
	fakeEditor
	child *Surface
}

func (e *fakeComposite) IsGroupedEditor() bool { return true }
func (e *fakeComposite) SupportsExternalParameterEditor() bool { return false }
func (e *fakeComposite) ChildSurface() *Surface { return e.child }

func (e *fakeComposite) Validate() bool {
	e.h.record("validate:%s", e.name)
	return e.child.Validate()
}

func (e *fakeComposite) Dispose() {
	e.fakeEditor.Dispose()
	e.child.Dispose()
}

type fakeExternal struct {
	h        *harness
	name     string
	visible  bool
	value    any
	invalid  bool
	focused  bool
	disposed bool
}

func (e *fakeExternal) PropertyName() string { return e.name }
func (e *fakeExternal) IsEditorVisible() bool { return e.visible }
func (e *fakeExternal) Value() any { return e.value }
func (e *fakeExternal) Focus() { e.focused = true }

func (e *fakeExternal) Validate() bool {
	e.h.record("validate-external:%s", e.name)
	return !e.invalid
}

func (e *fakeExternal) Dispose() {
	e.disposed = true
	e.h.record("dispose:external:%s", e.name)
}

// manualScheduler queues steps until the test runs them.
type manualScheduler struct {
	delays  []time.Duration
	pending []func()
}

func (m *manualScheduler) After(d time.Duration, fn func()) {
	m.delays = append(m.delays, d)
	m.pending = append(m.pending, fn)
}

// runOne runs the oldest pending step and reports whether one ran.
func (m *manualScheduler) runOne() bool {
	if len(m.pending) == 0 {
		return false
	}
	fn := m.pending[0]
	m.pending = m.pending[1:]
	fn()
	return true
}

func (m *manualScheduler) runAll() {
	for m.runOne() {
	}
}

func prop(name string) schema.Property {
	return schema.Property{Property: name, ItemType: schema.ItemProperty, Type: "string"}
}

func group(index, title string) schema.Property {
	return schema.Property{ItemType: schema.ItemGroup, GroupIndex: schema.GroupIndex(index), Title: title}
}

func object(name string, props ...schema.Property) schema.Property {
	return schema.Property{Property: name, ItemType: schema.ItemProperty, Type: "object", Properties: props}
}
