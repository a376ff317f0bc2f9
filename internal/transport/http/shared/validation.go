package shared

import "strings"

// Validator accumulates field errors so a handler can report every
// problem in one response.
type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: map[string]string{}}
}

func (v *Validator) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Errors[field] = "required"
	}
}

func (v *Validator) OneOf(field, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, candidate := range allowed {
		if value == candidate {
			return
		}
	}
	v.Errors[field] = "invalid"
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}
