package pkg

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a lookup by id, slug or username matches no row.
	ErrNotFound = errors.New("not found")

	// ErrConstraintViolation is returned when an insert collides with a
	// uniqueness constraint (group title/slug, username, email).
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrNotAuthor marks a mutation attempted by a principal that does not own
	// the post. It is a refusal, not a failure: handlers turn it into a redirect.
	ErrNotAuthor = errors.New("not the author")
)

// FieldError describes a single invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects per-field form errors. A submission that produces
// any of these is never applied, not even partially.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}
