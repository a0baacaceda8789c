package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in the local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats a time to YYYY-MM-DD in the local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}
