// Package schema describes the property definitions a property sheet is built from.
//
// A schema is an ordered list of Property items. Ordering is significant: a group
// marker applies to every following property until the next group marker, unless a
// property names its own group index explicitly.
//
// # Loading
//
// Schemas and value maps can be read from YAML, JSON or HCL files:
//
//	defs, err := schema.Load("inspector.yaml")
//	values, err := schema.LoadValues("values.yaml")
//
// HCL schemas use one block per item, in document order:
//
//	group "1" {
//	  title = "Appearance"
//	}
//
//	property "color" {
//	  group   = "1"
//	  type    = "color"
//	  default = "#fff"
//	}
//
// # Parsing
//
// Parse annotates each property with the group index it belongs to and reports
// whether the schema contains any group at all. It never materializes groups;
// that is the inspector's job.
package schema
