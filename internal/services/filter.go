package services

import (
	"strings"
	"time"
)

// Filtering is applied in memory after the full table fetch. Fine at this
// scale; if row counts grow these predicates belong in the query layer.

// ContainsFold reports whether s contains substr, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

var filterTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseFilterTime parses a user-supplied date or timestamp bound for the
// transaction-date range filter. A bare date parses to midnight.
func ParseFilterTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var t time.Time
	var err error
	for _, layout := range filterTimeLayouts {
		t, err = time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
