// Package form turns submitted HTML form values into candidate records and
// validates them.  Validation never fails loudly: it returns a Result that
// is either OK or carries per-field errors for redisplay.
package form

import "strings"

// FieldError is a single message attached to a named form field.
type FieldError struct {
	Field   string
	Message string
}

// Errors collects field errors in the order they were found.
type Errors []FieldError

// For returns the messages attached to field.
func (e Errors) For(field string) []string {
	var out []string
	for _, fe := range e {
		if fe.Field == field {
			out = append(out, fe.Message)
		}
	}
	return out
}

// Has reports whether field has at least one error.
func (e Errors) Has(field string) bool {
	return len(e.For(field)) > 0
}

// Message concatenates every message into one human-readable line.
func (e Errors) Message() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Message)
	}
	return strings.Join(parts, " ")
}

// Result is the outcome of validating a form: the candidate record built
// from the submitted values plus any field errors.  Record is populated
// even when the form is invalid so it can be shown back to the user.
type Result[T any] struct {
	Record T
	Errors Errors
}

// OK reports whether validation passed.
func (r Result[T]) OK() bool { return len(r.Errors) == 0 }
