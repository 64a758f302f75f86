// Package timestamp converts between Unix timestamps and dates.
package timestamp

import (
	"strconv"
	"strings"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

// ErrInvalidTimestamp and ErrInvalidDate carry the user-facing messages.
var (
	ErrInvalidTimestamp = apperr.Validationf("Invalid Timestamp")
	ErrInvalidDate      = apperr.Validationf("Invalid Date")
)

// millisDigits is the length above which input is read as milliseconds.
const millisDigits = 11

// dateLayouts are tried in order by ToUnix.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
}

// FromUnix renders a seconds or milliseconds timestamp as an ISO 8601
// UTC string with millisecond precision.
func FromUnix(ts string) (string, error) {
	ts = strings.TrimSpace(ts)
	v, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", ErrInvalidTimestamp
	}
	var t time.Time
	if len(ts) > millisDigits {
		t = time.UnixMilli(v)
	} else {
		t = time.Unix(v, 0)
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z"), nil
}

// ToUnix parses a date and returns whole seconds since the epoch.
// Dates without a zone are read as UTC.
func ToUnix(date string) (string, error) {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return strconv.FormatInt(t.Unix(), 10), nil
		}
	}
	return "", ErrInvalidDate
}

// Now returns the current Unix time in seconds.
func Now() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}
