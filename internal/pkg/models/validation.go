package models

// ValidationResult accumulates field errors; it never panics. Callers check
// IsValid before proceeding.
type ValidationResult struct {
	Errors []string `json:"errors"`
}

func (v ValidationResult) IsValid() bool {
	return len(v.Errors) == 0
}

func (v *ValidationResult) Add(msg string) {
	v.Errors = append(v.Errors, msg)
}

func (v *ValidationResult) Merge(other ValidationResult) {
	v.Errors = append(v.Errors, other.Errors...)
}
