package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
)

// Validation collects per-field input problems so a caller can report
// every offending field in one response.
type Validation struct {
	Fields map[string]string `json:"fields"`
}

func NewValidation() *Validation {
	return &Validation{Fields: make(map[string]string)}
}

// Add records a problem for field. The first problem per field wins.
func (v *Validation) Add(field, problem string) {
	if _, ok := v.Fields[field]; ok {
		return
	}
	v.Fields[field] = problem
}

func (v *Validation) Error() string {
	if v == nil || len(v.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Err returns the collected problems as an error, or nil when the
// input passed every check.
func (v *Validation) Err() error {
	if v == nil || len(v.Fields) == 0 {
		return nil
	}
	return v
}

// AsValidation unwraps err into a Validation when it carries one.
func AsValidation(err error) (*Validation, bool) {
	var v *Validation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// NormalizeEmail folds an address to its canonical stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the address parses per RFC 5322 and has
// no display name attached.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && addr.Name == ""
}
