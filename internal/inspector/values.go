package inspector

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/muurk/propsheet/internal/logging"
)

type removedValue struct{}

// Removed marks a property as explicitly cleared. Values omits it instead of
// falling back to the default.
var Removed any = removedValue{}

// IsRemoved reports whether v is the Removed marker.
func IsRemoved(v any) bool {
	_, ok := v.(removedValue)
	return ok
}

const (
	externalOpen  = "{{"
	externalClose = "}}"
)

// ExternalValue wraps an expression in the external parameter escape syntax.
func ExternalValue(expr any) string {
	return externalOpen + " " + fmt.Sprint(expr) + " " + externalClose
}

// ParseExternalValue extracts the expression from an escaped value.
func ParseExternalValue(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, externalOpen) || !strings.HasSuffix(s, externalClose) || len(s) < 4 {
		return "", false
	}
	return strings.TrimSpace(s[len(externalOpen) : len(s)-len(externalClose)]), true
}

// SetOptions tunes a single SetPropertyValueWith call.
type SetOptions struct {
	// SuppressEvents skips the changed marker, editor notifications and the
	// change callback.
	SuppressEvents bool

	// ForceRedisplay pushes the value back into the property's own editor.
	ForceRedisplay bool
}

// SetPropertyValue stores a value and notifies every editor, then the change
// callback. A nil value deletes the property.
func (s *Surface) SetPropertyValue(name string, value any) error {
	return s.SetPropertyValueWith(name, value, SetOptions{})
}

// SetPropertyValueWith is SetPropertyValue with options.
func (s *Surface) SetPropertyValueWith(name string, value any, opts SetOptions) error {
	if s.disposed {
		return ErrDisposed
	}

	if value == nil {
		delete(s.values, name)
	} else {
		s.values[name] = value
	}

	if opts.ForceRedisplay {
		if editor := s.editorByName[name]; editor != nil {
			editor.UpdateDisplayedValue(value)
		}
	}

	if opts.SuppressEvents {
		return nil
	}

	changed := s.differsFromOriginal(name)
	if row := s.rows[name]; row != nil {
		row.Changed = changed
	}
	logging.LogPropertyChange(s.shared.id, name, value, changed)

	for _, editor := range s.Editors() {
		if s.disposed {
			return nil
		}
		editor.OnInspectorPropertyChanged(name, value)
	}

	if s.onChange != nil && !s.disposed {
		s.onChange(name, value)
	}
	return nil
}

func (s *Surface) differsFromOriginal(name string) bool {
	current, hasCurrent := s.values[name]
	original, hasOriginal := s.original[name]
	if hasCurrent != hasOriginal {
		return true
	}
	return !SameValue(current, original)
}

// Value returns the stored value of a property.
func (s *Surface) Value(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// StoredValues returns a copy of the value map as stored, without defaults or
// editor substitutes.
func (s *Surface) StoredValues() map[string]any {
	return deepCopyMap(s.values)
}

// Values resolves the value of every schema property. In order of priority: a
// visible external parameter editor (escaped), the resolved values of a
// composite editor's nested surface, the stored value, the editor's
// undefined-value substitute, the schema default. Removed values are omitted.
func (s *Surface) Values() map[string]any {
	out := make(map[string]any)

	for _, name := range s.parsed.PropertyNames() {
		value, ok := s.resolve(name)
		if !ok || IsRemoved(value) {
			continue
		}
		out[name] = value
	}
	return out
}

func (s *Surface) resolve(name string) (any, bool) {
	if ext := s.externalBy[name]; ext != nil && ext.IsEditorVisible() {
		return ExternalValue(ext.Value()), true
	}
	stored, hasStored := s.values[name]
	if c, ok := s.editorByName[name].(CompositeEditor); ok && !IsRemoved(stored) {
		if child := c.ChildSurface(); child != nil && !child.disposed {
			if nested := child.Values(); hasStored || len(nested) > 0 {
				return nested, true
			}
		}
	}
	if hasStored {
		return stored, true
	}
	if editor := s.editorByName[name]; editor != nil {
		if v := editor.UndefinedValue(); v != nil {
			return v, true
		}
	}
	if def, ok := s.byName[name]; ok && def.Default != nil {
		return def.Default, true
	}
	return nil, false
}

// HasChanges reports whether the value map differs from the snapshot taken at
// construction.
func (s *Surface) HasChanges() bool {
	if len(s.values) != len(s.original) {
		return true
	}
	for name := range s.values {
		if s.differsFromOriginal(name) {
			return true
		}
	}
	return false
}

// ChangedProperties lists the properties whose value differs from the snapshot,
// in schema order.
func (s *Surface) ChangedProperties() []string {
	var names []string
	for _, name := range s.parsed.PropertyNames() {
		if s.differsFromOriginal(name) {
			names = append(names, name)
		}
	}
	return names
}

// Validate checks editors in schema order and stops at the first failure, which
// is marked invalid and revealed. A visible external parameter editor is
// validated instead of the property's own editor.
func (s *Surface) Validate() bool {
	if s.disposed {
		return false
	}

	s.shared.groups.UnmarkInvalidGroups(s.container)

	for _, editor := range s.Editors() {
		name := editor.PropertyName()

		if ext := s.externalBy[name]; ext != nil && ext.IsEditorVisible() {
			if !ext.Validate() {
				s.markInvalid(name, editor)
				ext.Focus()
				logging.LogValidation(s.shared.id, name)
				return false
			}
			continue
		}

		if !editor.Validate() {
			s.markInvalid(name, editor)
			editor.Focus()
			logging.LogValidation(s.shared.id, name)
			return false
		}
	}

	logging.LogValidation(s.shared.id, "")
	return true
}

func (s *Surface) markInvalid(name string, editor Editor) {
	editor.MarkInvalid()

	row := s.rows[name]
	if row == nil {
		return
	}
	row.Invalid = true
	s.shared.groups.MarkInvalid(s.container, row.ParentGroupID)
	s.ExpandGroupParents(row.ParentGroupID)
	s.expandNow(row.ParentGroupID)
}

// SameValue compares two property values. Composite values (maps, slices,
// structs) compare by their JSON serialization, numbers by numeric value and
// everything else by equality.
func SameValue(a, b any) bool {
	if IsRemoved(a) || IsRemoved(b) {
		return IsRemoved(a) && IsRemoved(b)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
		return false
	}

	if isComposite(a) || isComposite(b) {
		ja, errA := json.Marshal(a)
		jb, errB := json.Marshal(b)
		if errA != nil || errB != nil {
			return reflect.DeepEqual(a, b)
		}
		return string(ja) == string(jb)
	}

	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

func isComposite(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		return true
	default:
		return false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = deepCopy(inner)
		}
		return out
	default:
		return v
	}
}
