package api

import (
	"church/internal/entity"
	"fmt"
	"strings"
	"time"
)

// eventDateLayouts are tried in order; zone-less values are read as UTC.
var eventDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range eventDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date-time %q", value)
}

// parseSermonDate accepts a calendar date, or a timestamp whose date part is kept.
func parseSermonDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(entity.SermonDateLayout, value); err == nil {
		return parsed, nil
	}
	// the calendar date is taken in the caller's own offset
	for _, layout := range eventDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			y, m, d := parsed.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}
