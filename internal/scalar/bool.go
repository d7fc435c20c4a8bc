package scalar

import "strings"

// ParseBool parses the literals "true" and "false".
func ParseBool(input string) (value bool, status Status, bytesConsumed int) {
	if strings.HasPrefix(input, "true") {
		return true, Success, 4
	}
	if strings.HasPrefix(input, "false") {
		return false, Success, 5
	}
	return false, Failure, 0
}

// FormatBool renders x as "true" or "false".
func FormatBool(x bool) string {
	if x {
		return "true"
	}
	return "false"
}
