package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (ISO 8601 date)
const DateLayout = "2006-01-02"

// GetCurrentTimeMillis returns current time in milliseconds since epoch
func GetCurrentTimeMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// MillisToTime converts milliseconds since epoch to time.Time
func MillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}

// TimeToMillis converts time.Time to milliseconds since epoch
func TimeToMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

// FormatTime formats time in ISO 8601 format
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTime parses ISO 8601 formatted time string
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}

// TodayDate returns today's calendar date in DateLayout format
func TodayDate() string {
	return time.Now().Format(DateLayout)
}

// ParseDate parses a calendar date in DateLayout format
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected format %s", dateStr, DateLayout)
	}
	return t, nil
}

// IsPastDate reports whether the given calendar date is strictly before today.
// DateLayout dates compare lexicographically in the same order as their values.
func IsPastDate(dateStr string) bool {
	return dateStr < TodayDate()
}
