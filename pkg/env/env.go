package env

import (
	"os"
	"strings"
)

// Get reads key from the process environment, falling back to def when the
// variable is unset or blank.
func Get(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}
