package schema

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ItemType distinguishes editable properties from group markers.
type ItemType string

const (
	ItemProperty ItemType = "property"
	ItemGroup    ItemType = "group"
)

// GroupIndex is the opaque identifier a schema uses to tie properties to a group
// marker. The empty value means "no explicit group".
type GroupIndex string

// NoGroup is the zero GroupIndex.
const NoGroup GroupIndex = ""

// IsSet reports whether the index was given.
func (g GroupIndex) IsSet() bool {
	return g != NoGroup
}

// UnmarshalJSON accepts both numbers and strings.
func (g *GroupIndex) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*g = NoGroup
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*g = GroupIndex(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("group index must be a string or number: %w", err)
	}
	*g = GroupIndex(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar.
func (g *GroupIndex) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: group index must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*g = NoGroup
		return nil
	}
	*g = GroupIndex(node.Value)
	return nil
}

// Option is one choice of a select property.
type Option struct {
	Label string `yaml:"label" json:"label"`
	Value any    `yaml:"value" json:"value"`
}

// Property is one item of a schema: either an editable property or a group marker.
type Property struct {
	Property          string     `yaml:"property,omitempty" json:"property,omitempty"`
	ItemType          ItemType   `yaml:"itemType,omitempty" json:"itemType,omitempty"`
	GroupIndex        GroupIndex `yaml:"groupIndex,omitempty" json:"groupIndex,omitempty"`
	Title             string     `yaml:"title,omitempty" json:"title,omitempty"`
	Description       string     `yaml:"description,omitempty" json:"description,omitempty"`
	Type              string     `yaml:"type,omitempty" json:"type,omitempty"`
	Default           any        `yaml:"default,omitempty" json:"default,omitempty"`
	ShowExternalParam bool       `yaml:"showExternalParam,omitempty" json:"showExternalParam,omitempty"`

	// Editor-specific settings.
	Options     []Option   `yaml:"options,omitempty" json:"options,omitempty"`
	Required    bool       `yaml:"required,omitempty" json:"required,omitempty"`
	Placeholder string     `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Min         *float64   `yaml:"min,omitempty" json:"min,omitempty"`
	Max         *float64   `yaml:"max,omitempty" json:"max,omitempty"`
	Properties  []Property `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// IsGroup reports whether the item is a group marker.
func (p Property) IsGroup() bool {
	return p.ItemType == ItemGroup
}

// Label returns the title, falling back to the property name.
func (p Property) Label() string {
	if p.Title != "" {
		return p.Title
	}
	if p.Property != "" {
		return p.Property
	}
	return string(p.GroupIndex)
}

// Document is the on-disk shape of a schema file.
type Document struct {
	Properties []Property `yaml:"properties" json:"properties"`
}

// IndexOf builds a GroupIndex from an integer, for schemas assembled in code.
func IndexOf(n int) GroupIndex {
	return GroupIndex(strconv.Itoa(n))
}
