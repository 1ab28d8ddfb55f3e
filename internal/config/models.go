package config

import "time"

// Registry represents the entire user configuration file.
// It stores application preferences and the files last used for each inspected
// instance.
type Registry struct {
	Version     int                `yaml:"version"`
	Targets     map[string]*Target `yaml:"targets,omitempty"` // Keyed by instance ID
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Target remembers the files an instance was last edited with, so it can be
// reopened by instance ID alone.
type Target struct {
	SchemaPath string    `yaml:"schema_path"`
	ValuesPath string    `yaml:"values_path,omitempty"`
	LastOpened time.Time `yaml:"last_opened,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AnimationBudgetMS int    `yaml:"animation_budget_ms"` // Total duration of one expand/collapse, 0 disables animation
	ExternalParams    bool   `yaml:"external_params"`     // Offer expression editors on eligible properties
	LogLevel          string `yaml:"log_level,omitempty"` // debug, info, warn or error; empty keeps logging silent
}

// Default preference values
const (
	DefaultAnimationBudgetMS = 150
)

func defaultPreferences() *Preferences {
	return &Preferences{
		AnimationBudgetMS: DefaultAnimationBudgetMS,
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Targets:     make(map[string]*Target),
		Preferences: defaultPreferences(),
	}
}

// GetTarget retrieves the remembered files for an instance.
// Returns nil if the instance is not in the registry.
func (r *Registry) GetTarget(instanceID string) *Target {
	return r.Targets[instanceID]
}

// EnsureTarget ensures a target entry exists in the registry and returns it.
func (r *Registry) EnsureTarget(instanceID string) *Target {
	if r.Targets == nil {
		r.Targets = make(map[string]*Target)
	}

	if target, exists := r.Targets[instanceID]; exists {
		return target
	}

	target := &Target{}
	r.Targets[instanceID] = target
	return target
}

// RecordOpened stores the files an instance was opened with and stamps the time.
// An empty valuesPath keeps the previously remembered one.
func (r *Registry) RecordOpened(instanceID, schemaPath, valuesPath string) {
	target := r.EnsureTarget(instanceID)
	target.SchemaPath = schemaPath
	if valuesPath != "" {
		target.ValuesPath = valuesPath
	}
	target.LastOpened = time.Now()
}

// AnimationBudget returns the configured animation duration.
func (p *Preferences) AnimationBudget() time.Duration {
	if p == nil || p.AnimationBudgetMS <= 0 {
		return 0
	}
	return time.Duration(p.AnimationBudgetMS) * time.Millisecond
}
