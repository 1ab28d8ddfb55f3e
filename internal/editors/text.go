package editors

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/muurk/propsheet/internal/inspector"
)

// StringEditor edits free text. It also serves the "text" kind.
type StringEditor struct {
	base
	text string
}

// NewString is the factory for the "string" and "text" kinds.
func NewString(ctx inspector.EditorContext) (inspector.Editor, error) {
	e := &StringEditor{base: newBase(ctx)}
	v, _ := e.current()
	e.UpdateDisplayedValue(v)
	return e, nil
}

func (e *StringEditor) Text() string {
	return e.text
}

// SetText stores the text as the property value.
func (e *StringEditor) SetText(text string) error {
	e.text = text
	e.display(text)
	return e.set(text)
}

func (e *StringEditor) UpdateDisplayedValue(value any) {
	e.text = FormatValue(value)
	e.display(e.text)
}

func (e *StringEditor) Validate() bool {
	if !e.def.Required {
		return true
	}
	v, ok := e.current()
	return ok && strings.TrimSpace(FormatValue(v)) != ""
}

// ColorEditor edits hex colors (#rgb or #rrggbb).
type ColorEditor struct {
	StringEditor
}

// NewColor is the factory for the "color" kind.
func NewColor(ctx inspector.EditorContext) (inspector.Editor, error) {
	e := &ColorEditor{StringEditor{base: newBase(ctx)}}
	v, _ := e.current()
	e.UpdateDisplayedValue(v)
	return e, nil
}

func (e *ColorEditor) Validate() bool {
	if !e.StringEditor.Validate() {
		return false
	}
	v, ok := e.current()
	if !ok || FormatValue(v) == "" {
		return true
	}
	return ValidateColor(FormatValue(v)) == nil
}

// ValidateColor checks a hex color string.
func ValidateColor(s string) error {
	if len(s) != 4 && len(s) != 7 {
		return fmt.Errorf("color must be #rgb or #rrggbb, got %q", s)
	}
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("invalid color %q: %w", s, err)
	}
	return nil
}

// NumberEditor edits numeric values within optional bounds.
type NumberEditor struct {
	base
	text string
}

// NewNumber is the factory for the "number" kind.
func NewNumber(ctx inspector.EditorContext) (inspector.Editor, error) {
	e := &NumberEditor{base: newBase(ctx)}
	v, _ := e.current()
	e.UpdateDisplayedValue(v)
	return e, nil
}

func (e *NumberEditor) Text() string {
	return e.text
}

// SetText parses the text as a number. Empty text clears the value. Integral
// numbers are stored as int.
func (e *NumberEditor) SetText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		e.text = ""
		e.display("")
		return e.set(nil)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		e.MarkInvalid()
		return fmt.Errorf("%s: %q is not a number", e.def.Label(), text)
	}

	e.text = text
	e.display(text)
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return e.set(int(f))
	}
	return e.set(f)
}

func (e *NumberEditor) UpdateDisplayedValue(value any) {
	e.text = FormatValue(value)
	e.display(e.text)
}

func (e *NumberEditor) Validate() bool {
	v, ok := e.current()
	if !ok {
		return !e.def.Required
	}

	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	if e.def.Min != nil && f < *e.def.Min {
		return false
	}
	if e.def.Max != nil && f > *e.def.Max {
		return false
	}
	return true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
