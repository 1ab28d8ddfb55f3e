// Package inspector implements the property sheet engine: it turns a schema and a
// value map into rows and editors, keeps one authoritative value map per surface
// in sync with its editors, and reports values, changes and validation results
// back to the host.
//
// # Structure
//
// A Surface is one property sheet. The root surface owns a GroupManager and a
// Container; nested surfaces (built by composite editors) share both:
//
//	root Surface ──owns──▶ GroupManager (groups, expand state)
//	     │          └────▶ Container (ordered rows)
//	     └─ composite Editor ──owns──▶ child Surface (merged rows, same manager)
//
// Groups reference their parent by ID; every lookup goes through the manager.
// Surfaces reference their parent by SurfaceID through the shared instance.
//
// # Usage
//
//	reg := inspector.NewRegistry()
//	editors.Register(reg)
//
//	s, err := inspector.New(nil, defs, values, "target-42", inspector.Options{
//	    Registry: reg,
//	    OnChange: func(name string, v any) { ... },
//	})
//	if err != nil {
//	    return err // configuration errors are fatal
//	}
//	defer s.Dispose()
//
//	_ = s.SetPropertyValue("color", "#000")
//	if s.Validate() && s.HasChanges() {
//	    save(s.Values())
//	}
//
// # Expand and Collapse
//
// ToggleGroup moves the rows of a group one at a time through the configured
// Scheduler so that the whole transition takes AnimationBudget no matter how many
// rows are involved. Without a scheduler the same end state is applied at once.
// Collapsing a group never changes the recorded state of its descendants.
//
// # Threading
//
// Surfaces are not safe for concurrent use. All calls, including scheduled
// animation steps, must happen on one goroutine; the TUI achieves this by
// delivering steps as Bubble Tea messages.
package inspector
