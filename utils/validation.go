// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// Allows + prefix followed by up to 15 digits
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

var phoneReplacer = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phoneReplacer.Replace(phone))
}

// NormalizePhone strips formatting characters, keeping a leading +.
func NormalizePhone(phone string) string {
	return phoneReplacer.Replace(strings.TrimSpace(phone))
}
