package sections

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	PlaceholderNotAvailable = "N/A"
	PlaceholderNotAssigned  = "Not assigned"

	DateLayout     = "02/01/2006"
	DateTimeLayout = "02/01/2006 15:04"
)

// FormatDate renders t as dd/MM/yyyy, or N/A for a zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return PlaceholderNotAvailable
	}
	return t.Format(DateLayout)
}

// Capitalize upper-cases the first letter of s and leaves the rest untouched
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
