package schema

import "strings"

// Issue is a single field-level validation complaint.
type Issue struct {
	Field   string
	Message string
}

// ValidationError lists every invalid field along with the accepted field
// names, so a calling agent can correct its arguments.
type ValidationError struct {
	Model       string
	Issues      []Issue
	ValidFields []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder

	b.WriteString("Validation error. Issues:\n")

	for i, issue := range e.Issues {
		if i > 0 {
			b.WriteByte('\n')
		}

		b.WriteString("  - ")
		b.WriteString(issue.Field)
		b.WriteString(": ")
		b.WriteString(issue.Message)
	}

	b.WriteString("\n\nValid fields: ")

	if len(e.ValidFields) == 0 {
		b.WriteString("(none)")
	} else {
		b.WriteString(strings.Join(e.ValidFields, ", "))
	}

	return b.String()
}
