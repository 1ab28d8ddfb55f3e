package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a schema or values file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q (want .yaml, .yml, .json or .hcl)", filepath.Ext(path))
	}
}

// Load reads a schema file.
func Load(path string) ([]Property, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	defs, err := Decode(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	return defs, nil
}

// Decode parses schema bytes in the given format. The filename is only used in
// HCL diagnostics.
func Decode(data []byte, format Format, filename string) ([]Property, error) {
	var doc Document

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatHCL:
		defs, err := decodeHCLSchema(data, filename)
		if err != nil {
			return nil, err
		}
		doc.Properties = defs
	default:
		return nil, fmt.Errorf("unsupported schema format %q", format)
	}

	normalize(doc.Properties)
	return doc.Properties, nil
}

// normalize fills in the item type, which schema files may leave out for plain
// properties, and converts YAML-decoded defaults into JSON-compatible shapes.
func normalize(defs []Property) {
	for i := range defs {
		if defs[i].ItemType == "" {
			defs[i].ItemType = ItemProperty
		}
		defs[i].Default = normalizeValue(defs[i].Default)
		for j := range defs[i].Options {
			defs[i].Options[j].Value = normalizeValue(defs[i].Options[j].Value)
		}
		normalize(defs[i].Properties)
	}
}

// LoadValues reads a flat value map. A missing file yields an empty map.
func LoadValues(path string) (map[string]any, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}

	values, err := DecodeValues(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse values file %s: %w", path, err)
	}
	return values, nil
}

// DecodeValues parses a value map in the given format.
func DecodeValues(data []byte, format Format, filename string) (map[string]any, error) {
	values := map[string]any{}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, err
		}
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return values, nil
		}
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, err
		}
	case FormatHCL:
		decoded, err := decodeHCLValues(data, filename)
		if err != nil {
			return nil, err
		}
		values = decoded
	default:
		return nil, fmt.Errorf("unsupported values format %q", format)
	}

	if values == nil {
		values = map[string]any{}
	}
	for k, v := range values {
		values[k] = normalizeValue(v)
	}
	return values, nil
}

// EncodeValues renders a value map for output. HCL output is not supported.
func EncodeValues(values map[string]any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(values)
	case FormatJSON:
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("cannot encode values as %q", format)
	}
}

// normalizeValue converts map[any]any style values to map[string]any so values
// from every format compare and serialize the same way.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			t[k] = normalizeValue(inner)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[fmt.Sprint(k)] = normalizeValue(inner)
		}
		return out
	case []any:
		for i, inner := range t {
			t[i] = normalizeValue(inner)
		}
		return t
	default:
		return v
	}
}
