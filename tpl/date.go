package tpl

import (
	"strings"
	"time"
)

// DateLayout is the Israeli day-first date format used in contracts.
const DateLayout = "02/01/2006"

var dateInputs = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	DateLayout,
}

// IsDateKey reports whether key names a date answer.
func IsDateKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "date")
}

// FormatDate renders value as dd/mm/yyyy. Values that are not recognized
// dates are returned unchanged.
func FormatDate(value string) string {
	v := strings.TrimSpace(value)
	for _, layout := range dateInputs {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(DateLayout)
		}
	}
	return value
}
