// Package editors provides the concrete editor kinds of the property sheet:
// string, text, number, boolean, select, color and object, plus the expression
// editor used as the external parameter editor.
//
// Editors keep no value of their own. Every edit goes through the owning
// surface's SetPropertyValue, and the surface pushes values back with
// UpdateDisplayedValue. The displayed text is written to the editor's row so a
// renderer only ever reads rows.
//
// Renderers drive editors through the small interfaces defined here:
//
//	switch e := editor.(type) {
//	case editors.Toggler:
//	    err = e.Toggle()
//	case editors.Chooser:
//	    e.Open()
//	case editors.TextEditor:
//	    err = e.SetText(input)
//	}
//
// The object kind builds a nested surface from the property's sub-schema and
// writes the nested values back as a single map.
package editors
