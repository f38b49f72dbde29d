// Package schema declares widget input models and validates tool arguments
// against them.
//
// A Model is a flat table of fields, each with a JSON type, a default, an
// optional alias (the camelCase wire name), an optional description, and an
// optional closed set of string values. Every field has a default, so a Model
// always accepts an empty argument map. Unknown keys are always rejected.
//
// Per-field type and enum checks are delegated to jsonschema-go; the Model
// collects every failure so the caller can report all of them at once.
package schema
