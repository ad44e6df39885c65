package content

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var errInvalidDate = errors.New("invalid date")

// dateLayouts are tried in order. Values without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 2 2006",
	"Jan 2 2006",
	"Jan 02 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// CoerceDate turns a frontmatter value into a time.
// Strings are parsed with dateLayouts, numbers are epoch milliseconds.
func CoerceDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d.UTC(), nil
	case string:
		return parseDate(d)
	case int:
		return time.UnixMilli(int64(d)).UTC(), nil
	case int64:
		return time.UnixMilli(d).UTC(), nil
	case uint64:
		if d > math.MaxInt64 {
			return time.Time{}, errInvalidDate
		}
		return time.UnixMilli(int64(d)).UTC(), nil
	case float64:
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return time.Time{}, errInvalidDate
		}
		return time.UnixMilli(int64(d)).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("expected date, received %s", typeName(v))
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errInvalidDate
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errInvalidDate, s)
}
