package validators

import (
	"fmt"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
)

// SanitizeString trims display text and cuts it to at most maxLen characters.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 || utf8.RuneCountInString(trimmed) <= maxLen {
		return trimmed
	}
	return string([]rune(trimmed)[:maxLen])
}

// SanitizeID trims an identifier. Identifiers are never cut, so a blank or
// over-long value is reported against field instead.
func SanitizeID(field, input string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(input)
	switch {
	case trimmed == "":
		return "", fieldError(field, "is required")
	case maxLen > 0 && utf8.RuneCountInString(trimmed) > maxLen:
		return "", fieldError(field, fmt.Sprintf("must be at most %d", maxLen))
	}
	return trimmed, nil
}

func fieldError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{
		field: message,
	})
}
