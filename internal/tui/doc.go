// Package tui implements the interactive property sheet editor.
//
// The editor is a Bubble Tea program over an inspector surface. Rows are drawn
// in container order with their nesting level as indentation, and the cursor
// only ever rests on visible rows.
//
// # Editing
//
// What enter does depends on the row's editor:
//   - group headers and composite rows expand or collapse
//   - text, number and color properties open an inline text input
//   - booleans flip
//   - selects open an option list, which counts as an open popup
//
// The x key switches a property between its own editor and an expression.
//
// # Animation
//
// Expand and collapse steps are delivered by Scheduler, which turns each
// inspector step into a tea.Tick. Update returns the queued ticks with every
// message, so steps always run on the program's update goroutine.
//
// # Usage Example
//
//	sched := tui.NewScheduler()
//	surface, err := inspector.New(nil, props, values, "panel", inspector.Options{
//		Registry:        editors.NewRegistry(),
//		Scheduler:       sched,
//		AnimationBudget: 150 * time.Millisecond,
//	})
//	if err != nil {
//		return err
//	}
//	defer surface.Dispose()
//
//	model := tui.NewModel(tui.Config{Surface: surface, Scheduler: sched, OnSave: write})
//	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
package tui
