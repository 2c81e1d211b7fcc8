package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
)

// ParseQueryInt reads an optional integer query parameter. A missing or
// blank value yields def; a non-numeric value or one outside [lo, hi]
// becomes a validation error naming the parameter.
func ParseQueryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
			WithDetails(map[string]any{"field": key})
	}
	if n < lo || n > hi {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithDetails(map[string]any{"field": key, "min": lo, "max": hi})
	}
	return n, nil
}
