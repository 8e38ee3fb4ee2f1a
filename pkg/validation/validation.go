package validation

import "strings"

// Normalize trims leading and trailing whitespace from a field value.
func Normalize(value string) string {
	return strings.TrimSpace(value)
}

// NormalizeOptional trims an optional field value.
// An absent value normalizes to the empty string.
func NormalizeOptional(value *string) string {
	if value == nil {
		return ""
	}
	return Normalize(*value)
}

// IsBlank reports whether the value is empty once trimmed.
func IsBlank(value string) bool {
	return Normalize(value) == ""
}
