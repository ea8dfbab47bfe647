package signature

import (
	"fmt"
	"time"
)

// TimestampLength is the fixed width of a rendered timestamp: 17 digits and the Z marker.
const TimestampLength = 18

// FormatTimestamp renders t as yyyyMMddHHmmssSSS followed by a literal Z.
// The instant is converted to UTC first; milliseconds are truncated, never rounded.
func FormatTimestamp(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%s%03dZ", u.Format("20060102150405"), u.Nanosecond()/int(time.Millisecond))
}

// ParseTimestamp is the inverse of FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	if len(s) != TimestampLength || s[TimestampLength-1] != 'Z' {
		return time.Time{}, fmt.Errorf("timestamp %q does not match yyyyMMddHHmmssSSSZ", s)
	}
	t, err := time.ParseInLocation("20060102150405.000", s[:14]+"."+s[14:17], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
