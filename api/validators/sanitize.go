package validators

import "strings"

// SanitizeString trims whitespace and strips control characters that have no
// business inside a spreadsheet cell.
func SanitizeString(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, value)
	return strings.TrimSpace(cleaned)
}
