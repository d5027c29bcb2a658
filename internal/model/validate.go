package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// KeyEnvironment reports which environment a Stripe API key belongs to,
// based on its mode segment ("pk_test_...", "sk_live_...", "rk_test_...").
// It returns "" for keys it cannot classify.
func KeyEnvironment(key string) Environment {
	parts := strings.SplitN(key, "_", 3)
	if len(parts) < 3 {
		return ""
	}
	switch parts[1] {
	case "test":
		return EnvTest
	case "live":
		return EnvLive
	}
	return ""
}

// ValidPublishableKey reports whether key looks like a Stripe publishable key.
func ValidPublishableKey(key string) bool {
	return strings.HasPrefix(key, "pk_test_") || strings.HasPrefix(key, "pk_live_")
}

// ValidSecretKey reports whether key looks like a Stripe secret or restricted key.
func ValidSecretKey(key string) bool {
	for _, prefix := range []string{"sk_test_", "sk_live_", "rk_test_", "rk_live_"} {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// ValidCurrency reports whether code is a 3-letter ASCII currency code.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// ValidateProjectInput checks a candidate project before it reaches the
// config store. Key formats and environment/key-mode agreement are enforced
// here; the store itself treats credentials as opaque.
// It returns a *ValidationError if any rules fail, or nil if the input is valid.
func ValidateProjectInput(p *Project) error {
	var ve ValidationError

	if strings.TrimSpace(p.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	}

	if !p.Environment.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "environment",
			Message: fmt.Sprintf("invalid value %q (want test or live)", p.Environment),
		})
	}

	if !ValidPublishableKey(p.PublishableKey) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "publishableKey",
			Message: "must start with pk_test_ or pk_live_",
		})
	} else if env := KeyEnvironment(p.PublishableKey); p.Environment.IsValid() && env != p.Environment {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "publishableKey",
			Message: fmt.Sprintf("is a %s key but the project environment is %s", env, p.Environment),
		})
	}

	if !ValidSecretKey(p.SecretKey) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "secretKey",
			Message: "must start with sk_test_, sk_live_, rk_test_, or rk_live_",
		})
	} else if env := KeyEnvironment(p.SecretKey); p.Environment.IsValid() && env != p.Environment {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "secretKey",
			Message: fmt.Sprintf("is a %s key but the project environment is %s", env, p.Environment),
		})
	}

	if !ValidCurrency(p.DefaultCurrency) {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "defaultCurrency",
			Message: fmt.Sprintf("invalid code %q (want a 3-letter code like usd)", p.DefaultCurrency),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
