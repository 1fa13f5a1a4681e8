package xmlcodec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sentinel strings the service uses in place of structured absence.
const (
	notRanked = "Not Ranked"
	noRating  = "N/A"
)

// Date-time layouts the service mixes freely across endpoints.
const (
	// naiveLayout has no zone; values are defined to be UTC.
	naiveLayout = "2006-01-02 15:04:05"
	// compactLayout is RFC 3339 without fractional seconds.
	compactLayout = "2006-01-02T15:04:05-07:00"
	// longLayout spells out the weekday and a numeric zone.
	longLayout = "Mon, 02 Jan 2006 15:04:05 -0700"
)

// Bool10 parses the service's 1/0 boolean encoding.
func Bool10(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	return false, fmt.Errorf("boolean must be %q or %q, got %q", "1", "0", s)
}

// Minutes parses a non-negative whole number of minutes into a Duration.
func Minutes(s string) (time.Duration, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("duration must be whole non-negative minutes, got %q", s)
	}
	return time.Duration(n) * time.Minute, nil
}

// NullableRating parses a rating that may be the no-rating sentinel.
// The sentinel yields nil.
func NullableRating(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == noRating {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("rating must be a number or %q, got %q", noRating, s)
	}
	return &f, nil
}

// Rank parses a ranking position that may be the not-ranked sentinel.
// ranked is false when the sentinel was present, in which case position
// is zero.
func Rank(s string) (position int, ranked bool, err error) {
	s = strings.TrimSpace(s)
	if s == notRanked {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false, fmt.Errorf("rank must be a positive integer or %q, got %q", notRanked, s)
	}
	return int(n), true, nil
}

// Int parses a whitespace-trimmed signed integer.
func Int(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected an integer, got %q", s)
	}
	return int(n), nil
}

// Int64 parses a whitespace-trimmed unsigned identifier.
func Int64(s string) (int64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 63)
	if err != nil {
		return 0, fmt.Errorf("expected a non-negative integer, got %q", s)
	}
	return int64(n), nil
}

// Float parses a whitespace-trimmed float.
func Float(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", s)
	}
	return f, nil
}

// NaiveUTC parses the zone-less date-time grammar. Values carry no offset
// on the wire and are defined to be UTC.
func NaiveUTC(s string) (time.Time, error) {
	t, err := time.Parse(naiveLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %q date-time, got %q", naiveLayout, s)
	}
	return t, nil
}

// Compact parses the zoned compact date-time grammar used on video posts.
func Compact(s string) (time.Time, error) {
	t, err := time.Parse(compactLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %q date-time, got %q", compactLayout, s)
	}
	return t, nil
}

// Long parses the verbose zoned date-time grammar used on marketplace
// listings and guild records.
func Long(s string) (time.Time, error) {
	t, err := time.Parse(longLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %q date-time, got %q", longLayout, s)
	}
	return t, nil
}
