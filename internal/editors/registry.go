package editors

import "github.com/muurk/propsheet/internal/inspector"

// Editor kinds provided by this package.
const (
	KindString  = "string"
	KindText    = "text"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindSelect  = "select"
	KindColor   = "color"
	KindObject  = "object"
)

// Register adds every kind of this package to reg, along with the expression
// editor as the external parameter editor.
func Register(reg *inspector.Registry) {
	reg.Register(KindString, NewString)
	reg.Register(KindText, NewString)
	reg.Register(KindNumber, NewNumber)
	reg.Register(KindBoolean, NewBoolean)
	reg.Register(KindSelect, NewSelect)
	reg.Register(KindColor, NewColor)
	reg.Register(KindObject, NewObject)
	reg.RegisterExternal(NewExpression)
}

// NewRegistry returns a registry with every kind of this package.
func NewRegistry() *inspector.Registry {
	reg := inspector.NewRegistry()
	Register(reg)
	return reg
}
