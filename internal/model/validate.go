package model

import (
	"fmt"
	"strings"
)

// FieldError names one rejected input field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("%s %s", p.Field, p.Reason))
	}
	return "invalid book: " + strings.Join(parts, ", ")
}

// Has reports whether field is among the problems.
func (e *ValidationError) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}

// ValidateInput checks the user-editable fields of a book.
// It returns nil or a *ValidationError.
func ValidateInput(title, author string, pages int) error {
	var problems []FieldError
	if strings.TrimSpace(title) == "" {
		problems = append(problems, FieldError{Field: "title", Reason: "is empty"})
	}
	if strings.TrimSpace(author) == "" {
		problems = append(problems, FieldError{Field: "author", Reason: "is empty"})
	}
	if pages <= 0 {
		problems = append(problems, FieldError{Field: "pages", Reason: "must be positive"})
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func (b Book) Validate() error { return ValidateInput(b.Title, b.Author, b.Pages) }
