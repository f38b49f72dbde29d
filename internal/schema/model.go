package schema

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Type is a JSON Schema primitive type.
type Type string

// Supported field types.
const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// Field declares one input field.
type Field struct {
	// Name is the canonical snake_case field name.
	Name string
	// Alias is the wire name advertised in the schema, when it differs from Name.
	Alias string
	// Type is the JSON type of the value.
	Type Type
	// Default is applied when the caller omits the field.
	Default any
	// Description is copied into the tool's input schema.
	Description string
	// Enum restricts a string field to a closed set of values.
	Enum []string
	// Nullable accepts an explicit null, which decodes as the zero value.
	Nullable bool
	// Minimum and Maximum bound a numeric field, inclusive.
	Minimum *float64
	Maximum *float64
}

// Key returns the wire name: the alias when set, otherwise the name.
func (f Field) Key() string {
	if f.Alias != "" {
		return f.Alias
	}

	return f.Name
}

func (f Field) schema() (*jsonschema.Schema, error) {
	s := &jsonschema.Schema{Description: f.Description}

	if f.Nullable {
		s.Types = []string{string(f.Type), "null"}
	} else {
		s.Type = string(f.Type)
	}

	s.Minimum = f.Minimum
	s.Maximum = f.Maximum

	if f.Default != nil {
		raw, err := json.Marshal(f.Default)
		if err != nil {
			return nil, fmt.Errorf("field %s: marshal default: %w", f.Name, err)
		}

		s.Default = raw
	}

	if len(f.Enum) > 0 {
		s.Enum = make([]any, 0, len(f.Enum)+1)
		for _, v := range f.Enum {
			s.Enum = append(s.Enum, v)
		}

		if f.Nullable {
			s.Enum = append(s.Enum, nil)
		}
	}

	return s, nil
}

// Model is a validated input structure for one widget.
type Model struct {
	name     string
	fields   []Field
	byKey    map[string]int
	resolved []*jsonschema.Resolved
	schema   *jsonschema.Schema
}

// NewModel builds a Model. It fails on duplicate names or aliases, unsupported
// types, or field schemas that cannot be resolved.
func NewModel(name string, fields ...Field) (*Model, error) {
	m := &Model{
		name:     name,
		fields:   fields,
		byKey:    make(map[string]int, len(fields)*2),
		resolved: make([]*jsonschema.Resolved, len(fields)),
		schema: &jsonschema.Schema{
			Type:                 "object",
			Properties:           make(map[string]*jsonschema.Schema, len(fields)),
			AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
		},
	}

	for i, f := range fields {
		switch f.Type {
		case TypeString, TypeNumber, TypeInteger, TypeBoolean:
		default:
			return nil, fmt.Errorf("model %s: field %s: unsupported type %q", name, f.Name, f.Type)
		}

		for _, key := range []string{f.Name, f.Alias} {
			if key == "" {
				continue
			}

			if j, dup := m.byKey[key]; dup && j != i {
				return nil, fmt.Errorf("model %s: duplicate field key %q", name, key)
			}

			m.byKey[key] = i
		}

		fs, err := f.schema()
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", name, err)
		}

		rs, err := fs.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("model %s: field %s: %w", name, f.Name, err)
		}

		m.resolved[i] = rs
		m.schema.Properties[f.Key()] = fs
	}

	return m, nil
}

// MustModel is like NewModel but panics on error. Use it only for static
// definitions covered by tests.
func MustModel(name string, fields ...Field) *Model {
	m, err := NewModel(name, fields...)
	if err != nil {
		panic(err)
	}

	return m
}

// Name returns the model name.
func (m *Model) Name() string {
	return m.name
}

// Fields returns a copy of the declared fields.
func (m *Model) Fields() []Field {
	return slices.Clone(m.fields)
}

// FieldNames returns the wire names of every field in declaration order.
func (m *Model) FieldNames() []string {
	names := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		names = append(names, f.Key())
	}

	return names
}

// acceptedNames lists every accepted spelling, as "name (alias)" when a
// field has both.
func (m *Model) acceptedNames() []string {
	names := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		if f.Alias != "" && f.Alias != f.Name {
			names = append(names, f.Name+" ("+f.Alias+")")

			continue
		}

		names = append(names, f.Name)
	}

	return names
}

// Schema returns the JSON Schema advertised as the tool's input schema:
// an object with an explicit property list and additionalProperties false.
// The returned schema is shared and must not be modified.
func (m *Model) Schema() *jsonschema.Schema {
	return m.schema
}

// Validate checks args against the model and returns a normalized map keyed
// by wire name with defaults applied. On failure it returns a
// *ValidationError listing every offending field.
func (m *Model) Validate(args map[string]any) (map[string]any, error) {
	var issues []Issue

	values := make(map[string]any, len(m.fields))
	seen := make([]bool, len(m.fields))

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, key := range keys {
		i, ok := m.byKey[key]
		if !ok {
			issues = append(issues, Issue{Field: key, Message: "Extra inputs are not permitted"})

			continue
		}

		f := m.fields[i]

		// The wire name wins when a caller sends both spellings.
		if seen[i] && key != f.Key() {
			continue
		}

		seen[i] = true
		values[f.Key()] = args[key]
	}

	for i, f := range m.fields {
		if !seen[i] {
			values[f.Key()] = f.Default

			continue
		}

		v := coerce(f, values[f.Key()])

		if err := m.resolved[i].Validate(v); err != nil {
			issues = append(issues, Issue{Field: f.Key(), Message: f.complaint(v)})

			continue
		}

		values[f.Key()] = v
	}

	if len(issues) > 0 {
		return nil, &ValidationError{
			Model:       m.name,
			Issues:      issues,
			ValidFields: m.acceptedNames(),
		}
	}

	return values, nil
}

// Decode validates args and unmarshals the normalized values into T. T's
// json tags must match the fields' wire names.
func Decode[T any](m *Model, args map[string]any) (T, error) {
	var out T

	values, err := m.Validate(args)
	if err != nil {
		return out, err
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return out, fmt.Errorf("model %s: encode values: %w", m.name, err)
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("model %s: decode values: %w", m.name, err)
	}

	return out, nil
}

// coerce applies lax conversions for numbers and booleans sent as strings.
func coerce(f Field, v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	s = strings.TrimSpace(s)

	switch f.Type {
	case TypeNumber:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n
		}
	case TypeInteger:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case TypeBoolean:
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}

	return v
}

func (f Field) complaint(v any) string {
	if n, ok := number(v); ok {
		switch {
		case f.Minimum != nil && n < *f.Minimum:
			return "Input should be greater than or equal to " + formatBound(*f.Minimum)
		case f.Maximum != nil && n > *f.Maximum:
			return "Input should be less than or equal to " + formatBound(*f.Maximum)
		}
	}

	if len(f.Enum) > 0 {
		quoted := make([]string, len(f.Enum))
		for i, v := range f.Enum {
			quoted[i] = "'" + v + "'"
		}

		if len(quoted) == 1 {
			return "Input should be " + quoted[0]
		}

		return "Input should be " + strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
	}

	switch f.Type {
	case TypeNumber:
		return "Input should be a valid number"
	case TypeInteger:
		return "Input should be a valid integer"
	case TypeBoolean:
		return "Input should be a valid boolean"
	default:
		return "Input should be a valid string"
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()

		return f, err == nil
	default:
		return 0, false
	}
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
