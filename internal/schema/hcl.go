package schema

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

const (
	hclBlockProperty = "property"
	hclBlockGroup    = "group"
)

// hclItem holds the attributes shared by property and group blocks. Nested
// property and group blocks of a composite property stay in Remain and are walked
// in source order.
type hclItem struct {
	Title             string      `hcl:"title,optional"`
	Description       string      `hcl:"description,optional"`
	Type              string      `hcl:"type,optional"`
	Group             string      `hcl:"group,optional"`
	Default           cty.Value   `hcl:"default,optional"`
	ShowExternalParam bool        `hcl:"show_external_param,optional"`
	Required          bool        `hcl:"required,optional"`
	Placeholder       string      `hcl:"placeholder,optional"`
	Min               *float64    `hcl:"min,optional"`
	Max               *float64    `hcl:"max,optional"`
	Options           []hclOption `hcl:"option,block"`
	Remain            hcl.Body    `hcl:",remain"`
}

type hclOption struct {
	Label string    `hcl:"label"`
	Value cty.Value `hcl:"value"`
}

func parseHCLBody(data []byte, filename string) (*hclsyntax.Body, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected HCL body type %T", file.Body)
	}
	return body, nil
}

func decodeHCLSchema(data []byte, filename string) ([]Property, error) {
	body, err := parseHCLBody(data, filename)
	if err != nil {
		return nil, err
	}
	for name, attr := range body.Attributes {
		return nil, fmt.Errorf("%s: unexpected top-level attribute %q", attr.SrcRange, name)
	}
	return decodeHCLBlocks(body.Blocks, true)
}

func decodeHCLBlocks(blocks hclsyntax.Blocks, strict bool) ([]Property, error) {
	var defs []Property

	for _, block := range blocks {
		switch block.Type {
		case hclBlockProperty, hclBlockGroup:
		default:
			if strict {
				return nil, fmt.Errorf("%s: unexpected block type %q", block.DefRange(), block.Type)
			}
			continue
		}

		if len(block.Labels) != 1 {
			return nil, fmt.Errorf("%s: %s block needs exactly one label", block.DefRange(), block.Type)
		}

		var item hclItem
		if diags := gohcl.DecodeBody(block.Body, nil, &item); diags.HasErrors() {
			return nil, diags
		}

		def := item.toProperty(block.Type, block.Labels[0])

		nested, err := decodeHCLBlocks(block.Body.Blocks, false)
		if err != nil {
			return nil, err
		}
		def.Properties = nested

		defs = append(defs, def)
	}

	return defs, nil
}

func (item hclItem) toProperty(blockType, label string) Property {
	def := Property{
		Title:             item.Title,
		Description:       item.Description,
		Type:              item.Type,
		ShowExternalParam: item.ShowExternalParam,
		Required:          item.Required,
		Placeholder:       item.Placeholder,
		Min:               item.Min,
		Max:               item.Max,
	}

	if blockType == hclBlockGroup {
		def.ItemType = ItemGroup
		def.GroupIndex = GroupIndex(label)
	} else {
		def.ItemType = ItemProperty
		def.Property = label
		def.GroupIndex = GroupIndex(item.Group)
	}

	def.Default = ctyToNative(item.Default)

	for _, opt := range item.Options {
		def.Options = append(def.Options, Option{Label: opt.Label, Value: ctyToNative(opt.Value)})
	}

	return def
}

func decodeHCLValues(data []byte, filename string) (map[string]any, error) {
	body, err := parseHCLBody(data, filename)
	if err != nil {
		return nil, err
	}

	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	values := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		values[name] = ctyToNative(val)
	}
	return values, nil
}

// ctyToNative converts a cty value to plain Go values: string, bool, int or
// float64, []any and map[string]any. Null and unknown values become nil.
func ctyToNative(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return int(i)
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil
		}
		return f

	case ty == cty.Bool:
		return v.True()

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			out = append(out, ctyToNative(elem))
		}
		return out

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			out[key.AsString()] = ctyToNative(elem)
		}
		return out
	}

	return nil
}
