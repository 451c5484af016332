package utils

import "strings"

// MaskEmail masks an email address for safe logging.
// Example: "jane@example.com" -> "j***@example.com"
func MaskEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return "***"
	}
	local := parts[0]
	if len(local) <= 1 {
		return local + "***@" + parts[1]
	}
	return string(local[0]) + "***@" + parts[1]
}

// MaskPhone keeps only the last three digits of a phone number.
func MaskPhone(phone string) string {
	if len(phone) <= 3 {
		return "***"
	}
	return strings.Repeat("*", len(phone)-3) + phone[len(phone)-3:]
}
