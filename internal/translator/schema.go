package translator

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// buildInputSchema builds the JSON-schema input object for one operation:
// one property per path/query parameter plus a "body" property when the
// operation takes a JSON request body. Returns an error for any parameter
// the translator cannot express, which sends the whole surface to fallback.
func buildInputSchema(op Operation) (map[string]any, error) {
	properties := map[string]any{}
	var required []string

	for _, ref := range op.Parameters {
		p := ref.Value
		if p == nil {
			return nil, fmt.Errorf("operation %s: unresolved parameter reference", op.ID)
		}
		if p.In != openapi3.ParameterInPath && p.In != openapi3.ParameterInQuery {
			// Header and cookie parameters are handled by the transport, not the caller.
			continue
		}
		if p.Schema == nil || p.Schema.Value == nil {
			return nil, fmt.Errorf("operation %s: parameter %q has no schema", op.ID, p.Name)
		}
		prop, err := schemaToProperty(p.Schema.Value)
		if err != nil {
			return nil, fmt.Errorf("operation %s: parameter %q: %w", op.ID, p.Name, err)
		}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		properties[p.Name] = prop
		if p.Required || p.In == openapi3.ParameterInPath {
			required = append(required, p.Name)
		}
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		content := op.RequestBody.Value.Content.Get("application/json")
		if content != nil && content.Schema != nil && content.Schema.Value != nil {
			prop, err := schemaToProperty(content.Schema.Value)
			if err != nil {
				return nil, fmt.Errorf("operation %s: request body: %w", op.ID, err)
			}
			prop["description"] = "JSON request body"
			properties["body"] = prop
			if op.RequestBody.Value.Required {
				required = append(required, "body")
			}
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema, nil
}

// schemaToProperty converts an OpenAPI schema into a JSON-schema property.
// Only the shapes the tool protocol can carry are supported.
func schemaToProperty(s *openapi3.Schema) (map[string]any, error) {
	prop := map[string]any{}

	switch s.Type {
	case "string", "integer", "number", "boolean":
		prop["type"] = s.Type
	case "array":
		if s.Items == nil || s.Items.Value == nil {
			return nil, fmt.Errorf("array schema without items")
		}
		items, err := schemaToProperty(s.Items.Value)
		if err != nil {
			return nil, err
		}
		prop["type"] = "array"
		prop["items"] = items
	case "object", "":
		prop["type"] = "object"
		if len(s.Properties) > 0 {
			nested := map[string]any{}
			for name, ref := range s.Properties {
				if ref.Value == nil {
					return nil, fmt.Errorf("property %q: unresolved schema reference", name)
				}
				np, err := schemaToProperty(ref.Value)
				if err != nil {
					return nil, fmt.Errorf("property %q: %w", name, err)
				}
				nested[name] = np
			}
			prop["properties"] = nested
		}
	default:
		return nil, fmt.Errorf("unsupported schema type %q", s.Type)
	}

	if s.Description != "" {
		prop["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		prop["enum"] = s.Enum
	}
	if s.Format != "" {
		prop["format"] = s.Format
	}
	return prop, nil
}
