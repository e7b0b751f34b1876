package domain

import (
	"fmt"
	"strings"
)

// ValidationError lists the form fields that blocked a submission.
type ValidationError struct {
	Fields []FieldError
}

// FieldError describes one rejected field using its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "invalid startup: " + strings.Join(parts, "; ")
}

// Has reports whether field was rejected.
func (e ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate performs the caller-side required-field check that gates a
// submission before it reaches the store. Only presence is enforced: range,
// enum membership and date shape are left to the input controls that produce
// the fields, and the store itself never validates.
func (s StartupFields) Validate() error {
	var errs []FieldError
	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, FieldError{Field: field, Message: "is required"})
		}
	}
	required("name", s.Name)
	required("description", s.Description)
	required("industry", s.Industry)
	required("fundingStage", string(s.FundingStage))
	required("foundedDate", s.FoundedDate)
	required("status", string(s.Status))
	if len(errs) > 0 {
		return ValidationError{Fields: errs}
	}
	return nil
}
