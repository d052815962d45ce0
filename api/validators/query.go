package validators

import (
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
)

// ParseQueryDate returns the optional YYYY-MM-DD query parameter key.
// The second result reports whether the parameter was present.
func ParseQueryDate(r *http.Request, key string) (string, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", false, nil
	}
	if _, err := time.Parse(DateLayout, raw); err != nil {
		return "", false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a date formatted YYYY-MM-DD").WithDetails(map[string]any{"field": key})
	}
	return raw, true, nil
}

// ParseDateTime accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date (midnight UTC).
func ParseDateTime(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{
		field: "must be an RFC 3339 timestamp or a date formatted YYYY-MM-DD",
	})
}
