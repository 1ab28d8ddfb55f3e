// Package config provides user configuration management for propsheet.
//
// This package manages a YAML-based configuration file that stores application
// preferences and, per inspected instance ID, the schema and values files it was
// last opened with. The configuration follows OS-specific conventions for
// storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/propsheet/config.yaml or $HOME/.config/propsheet/config.yaml
//   - macOS: $HOME/.config/propsheet/config.yaml
//   - Windows: %LOCALAPPDATA%\propsheet\config.yaml
//
// Group collapse state is not stored; every session starts with groups expanded.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry.RecordOpened("panel", "panel.hcl", "panel.yaml")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
