// Package ui provides the one-shot terminal output used by the non-interactive
// propsheet commands (show, validate, values).
//
// Unlike the interactive editor in package tui, these components render once
// and return a string. Colors are dropped automatically by lipgloss when the
// output is not a terminal.
//
// # Components
//
//   - Header: command banner with the command path and its inputs
//   - Result: success, failure or warning box with ordered details and hints
//   - Confirm: yes/no prompt used before overwriting files
//
// Example:
//
//	fmt.Println(ui.NewHeader("Validate", "propsheet validate",
//	    ui.Param{Key: "Schema", Value: schemaPath},
//	).Render())
//
//	if !surface.Validate() {
//	    fmt.Println(ui.NewFailureResult("Validation failed", err,
//	        "Run 'propsheet edit' to fix the value").Render())
//	}
//
// # Logging Integration
//
// Logging is controlled via the PROPSHEET_LOG_LEVEL environment variable. When
// unset, zap logging is silent so the curated output is displayed cleanly.
package ui
