package weather

import (
	"errors"
	"time"
)

// Open-Meteo returns local timestamps without a zone when timezone=auto.
var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"15:04",
}

var errBadTimestamp = errors.New("unrecognized timestamp")

// ParseTimestamp parses an upstream ISO timestamp. Zone-less values are
// read as UTC so that differences between them stay exact.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errBadTimestamp
}

// ClosestIndex returns the index of the timestamp nearest to target. The
// first index reaching the minimum wins ties. Unparseable entries are
// skipped. It returns 0 when the series is empty or target is empty or
// unparseable, which callers must not take as a real alignment.
func ClosestIndex(timestamps []string, target string) int {
	if len(timestamps) == 0 || target == "" {
		return 0
	}
	t, err := ParseTimestamp(target)
	if err != nil {
		return 0
	}

	best := 0
	var bestDiff time.Duration
	found := false
	for i, ts := range timestamps {
		v, err := ParseTimestamp(ts)
		if err != nil {
			continue
		}
		d := v.Sub(t)
		if d < 0 {
			d = -d
		}
		if !found || d < bestDiff {
			best, bestDiff, found = i, d, true
		}
	}
	return best
}
