package jsonschema

import (
	"reflect"
	"strings"
)

// Schema is a JSON Schema fragment describing the arguments or results of a
// tool. It supports the subset of the standard the tool layer needs:
// objects with typed, described, optionally-required properties, arrays,
// enums, and scalar types.
type Schema struct {
	// Type specifies the data type (e.g. "object", "array", "string", "number").
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of an object, each with its own schema.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items defines the schema of array elements.
	Items *Schema `json:"items,omitempty"`
	// Enum lists the allowed values for the parameter.
	Enum []any `json:"enum,omitempty"`
	// AdditionalProperties controls whether undeclared object keys are allowed.
	AdditionalProperties any `json:"additionalProperties,omitempty"`
}

// GenerateJSONSchema derives a Schema for T via reflection. Struct fields
// use their json tag for naming (fields tagged "-" are skipped) and their
// jsonschema tag for metadata: a leading "description=..." plus the
// markers "required" and "enum=a|b|c".
func GenerateJSONSchema[T any]() *Schema {
	return generate(reflect.TypeFor[T]())
}

func generate(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.Ptr:
		return generate(t.Elem())

	case reflect.Struct:
		return generateStruct(t)

	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: generate(t.Elem())}

	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: generate(t.Elem())}

	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	default:
		// Interfaces and other dynamic kinds carry no static structure.
		return &Schema{}
	}
}

func generateStruct(t reflect.Type) *Schema {
	schema := &Schema{
		Type:       "object",
		Properties: map[string]*Schema{},
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := fieldName(field)
		if name == "" {
			continue
		}

		fieldSchema := generate(field.Type)
		applyTag(fieldSchema, field.Tag.Get("jsonschema"), name, schema)
		schema.Properties[name] = fieldSchema
	}

	return schema
}

// fieldName resolves the JSON property name of a struct field, honoring the
// json tag. Returns "" for skipped fields.
func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// applyTag parses the jsonschema struct tag into the field schema. The tag
// is comma-separated; a "description=" prefix captures everything up to the
// next recognized marker so descriptions may themselves contain commas.
func applyTag(fieldSchema *Schema, tag, name string, parent *Schema) {
	if tag == "" {
		return
	}

	for _, part := range splitTag(tag) {
		switch {
		case strings.HasPrefix(part, "description="):
			fieldSchema.Description = strings.TrimPrefix(part, "description=")
		case part == "required":
			parent.Required = append(parent.Required, name)
		case strings.HasPrefix(part, "enum="):
			for _, v := range strings.Split(strings.TrimPrefix(part, "enum="), "|") {
				fieldSchema.Enum = append(fieldSchema.Enum, v)
			}
		}
	}
}

// splitTag splits a jsonschema tag on commas, keeping commas inside a
// description value attached to the description.
func splitTag(tag string) []string {
	raw := strings.Split(tag, ",")
	parts := make([]string, 0, len(raw))
	for _, piece := range raw {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		isMarker := piece == "required" ||
			strings.HasPrefix(piece, "description=") ||
			strings.HasPrefix(piece, "enum=")
		if !isMarker && len(parts) > 0 && strings.HasPrefix(parts[len(parts)-1], "description=") {
			parts[len(parts)-1] += ", " + piece
			continue
		}
		parts = append(parts, piece)
	}
	return parts
}
