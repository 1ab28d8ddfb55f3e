package editors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muurk/propsheet/internal/inspector"
	"github.com/muurk/propsheet/internal/schema"
)

// BooleanEditor is an on/off switch.
type BooleanEditor struct {
	base
}

// NewBoolean is the factory for the "boolean" kind.
func NewBoolean(ctx inspector.EditorContext) (inspector.Editor, error) {
	e := &BooleanEditor{base: newBase(ctx)}
	v, _ := e.current()
	e.UpdateDisplayedValue(v)
	return e, nil
}

// UndefinedValue reports false for an unset switch unless the schema supplies
// a default.
func (e *BooleanEditor) UndefinedValue() any {
	if e.def.Default != nil {
		return nil
	}
	return false
}

// Checked reports the effective state of the switch.
func (e *BooleanEditor) Checked() bool {
	v, _ := e.current()
	b, _ := toBool(v)
	return b
}

// Toggle flips the switch.
func (e *BooleanEditor) Toggle() error {
	next := !e.Checked()
	e.UpdateDisplayedValue(next)
	return e.set(next)
}

func (e *BooleanEditor) UpdateDisplayedValue(value any) {
	b, _ := toBool(value)
	e.display(strconv.FormatBool(b))
}

func (e *BooleanEditor) Validate() bool {
	v, ok := e.current()
	if !ok {
		return true
	}
	_, ok = toBool(v)
	return ok
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case nil:
		return false, true
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	default:
		return false, false
	}
}

// SelectEditor picks one of the schema's options. Opening the list counts as a
// popup on the surface.
type SelectEditor struct {
	base
	open bool
}

// NewSelect is the factory for the "select" kind.
func NewSelect(ctx inspector.EditorContext) (inspector.Editor, error) {
	if len(ctx.Definition.Options) == 0 {
		return nil, fmt.Errorf("select %q has no options", ctx.Definition.Property)
	}
	e := &SelectEditor{base: newBase(ctx)}
	v, _ := e.current()
	e.UpdateDisplayedValue(v)
	return e, nil
}

func (e *SelectEditor) Choices() []schema.Option {
	return e.def.Options
}

// Selected returns the index of the current option, or -1.
func (e *SelectEditor) Selected() int {
	v, ok := e.current()
	if !ok {
		return -1
	}
	return e.indexOf(v)
}

func (e *SelectEditor) indexOf(v any) int {
	for i, opt := range e.def.Options {
		if inspector.SameValue(opt.Value, v) {
			return i
		}
	}
	return -1
}

// Choose stores the value of the option at index and closes the list.
func (e *SelectEditor) Choose(index int) error {
	if index < 0 || index >= len(e.def.Options) {
		return fmt.Errorf("%s: option %d out of range", e.def.Label(), index)
	}
	e.Close()
	value := e.def.Options[index].Value
	e.UpdateDisplayedValue(value)
	return e.set(value)
}

func (e *SelectEditor) Text() string {
	v, _ := e.current()
	return e.label(v)
}

// SetText chooses the option whose label or value matches text.
func (e *SelectEditor) SetText(text string) error {
	text = strings.TrimSpace(text)
	for i, opt := range e.def.Options {
		if strings.EqualFold(opt.Label, text) || FormatValue(opt.Value) == text {
			return e.Choose(i)
		}
	}
	e.MarkInvalid()
	return fmt.Errorf("%s: %q is not one of the options", e.def.Label(), text)
}

func (e *SelectEditor) Open() {
	if e.open || e.disposed {
		return
	}
	e.open = true
	e.surface.PopupDisplayed()
}

func (e *SelectEditor) Close() {
	if !e.open {
		return
	}
	e.open = false
	e.surface.PopupHidden()
}

func (e *SelectEditor) IsOpen() bool {
	return e.open
}

func (e *SelectEditor) UpdateDisplayedValue(value any) {
	e.display(e.label(value))
}

func (e *SelectEditor) label(v any) string {
	if i := e.indexOf(v); i >= 0 {
		if opt := e.def.Options[i]; opt.Label != "" {
			return opt.Label
		}
	}
	return FormatValue(v)
}

func (e *SelectEditor) Validate() bool {
	v, ok := e.current()
	if !ok {
		return !e.def.Required
	}
	return e.indexOf(v) >= 0
}

// Dispose closes the list. A root surface has already released every popup by
// the time its editors are disposed.
func (e *SelectEditor) Dispose() {
	if e.surface.OpenPopups() > 0 {
		e.Close()
	}
	e.open = false
	e.base.Dispose()
}
