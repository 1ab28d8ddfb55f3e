package editors

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/muurk/propsheet/internal/inspector"
)

// ExpressionEditor is the external parameter editor. It holds an HCL
// expression that is stored escaped (see inspector.ExternalValue) and takes
// over the property while visible.
type ExpressionEditor struct {
	surface  *inspector.Surface
	name     string
	label    string
	expr     string
	visible  bool
	focus    bool
	disposed bool
}

// NewExpression is the external factory. A stored escaped value makes the
// editor visible from the start.
func NewExpression(ctx inspector.EditorContext, _ inspector.Editor) (inspector.ExternalParameterEditor, error) {
	e := &ExpressionEditor{
		surface: ctx.Surface,
		name:    ctx.Definition.Property,
		label:   ctx.Definition.Label(),
	}
	if v, ok := ctx.Value(); ok {
		if expr, ok := inspector.ParseExternalValue(v); ok {
			e.expr = expr
			e.visible = true
		}
	}
	return e, nil
}

func (e *ExpressionEditor) PropertyName() string {
	return e.name
}

func (e *ExpressionEditor) IsEditorVisible() bool {
	return e.visible && !e.disposed
}

func (e *ExpressionEditor) Value() any {
	return e.expr
}

// Expression returns the raw expression text.
func (e *ExpressionEditor) Expression() string {
	return e.expr
}

// Show switches the property to its expression.
func (e *ExpressionEditor) Show() error {
	if e.disposed {
		return inspector.ErrDisposed
	}
	if e.visible {
		return nil
	}
	e.visible = true
	if e.expr == "" {
		return nil
	}
	return e.surface.SetPropertyValue(e.name, inspector.ExternalValue(e.expr))
}

// Hide switches the property back to its own editor. A stored escaped value is
// cleared so the property falls back to its default.
func (e *ExpressionEditor) Hide() error {
	if e.disposed {
		return inspector.ErrDisposed
	}
	if !e.visible {
		return nil
	}
	e.visible = false
	if v, ok := e.surface.Value(e.name); ok {
		if _, escaped := inspector.ParseExternalValue(v); escaped {
			return e.surface.SetPropertyValue(e.name, nil)
		}
	}
	return nil
}

// SetExpression stores a new expression and reports the change through the
// surface.
func (e *ExpressionEditor) SetExpression(expr string) error {
	if e.disposed {
		return inspector.ErrDisposed
	}
	e.expr = strings.TrimSpace(expr)
	e.visible = true
	return e.surface.SetPropertyValue(e.name, inspector.ExternalValue(e.expr))
}

func (e *ExpressionEditor) Validate() bool {
	return ValidateExpression(e.expr) == nil
}

// ValidateExpression checks that expr is a single well-formed HCL expression.
func ValidateExpression(expr string) error {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return fmt.Errorf("expression is empty")
	}
	if strings.Contains(expr, "{{") || strings.Contains(expr, "}}") {
		return fmt.Errorf("expression must not contain escape braces")
	}
	_, diags := hclsyntax.ParseExpression([]byte(expr), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return fmt.Errorf("invalid expression: %s", diags.Error())
	}
	return nil
}

func (e *ExpressionEditor) Focus() {
	e.focus = true
}

// TakeFocus reports and clears a pending focus request.
func (e *ExpressionEditor) TakeFocus() bool {
	f := e.focus
	e.focus = false
	return f
}

func (e *ExpressionEditor) Dispose() {
	e.disposed = true
}
