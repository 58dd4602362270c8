package types

import (
	"fmt"
	"time"
)

// TimeWindow is an inclusive creation-time range used when querying the
// payment processor. Zero bounds mean "unset".
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// NewTimeWindow builds a window from calendar dates formatted as YYYY-MM-DD.
// startDate maps to the start of day and endDate to the end of day, both UTC.
// When neither date is supplied the window covers the last defaultDays days.
func NewTimeWindow(startDate, endDate string, defaultDays int) (TimeWindow, error) {
	if startDate == "" && endDate == "" {
		now := time.Now().UTC()
		return TimeWindow{From: now.AddDate(0, 0, -defaultDays), To: now}, nil
	}

	var w TimeWindow
	if startDate != "" {
		t, err := time.ParseInLocation(time.DateOnly, startDate, time.UTC)
		if err != nil {
			return TimeWindow{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
		}
		w.From = t
	}
	if endDate != "" {
		t, err := time.ParseInLocation(time.DateOnly, endDate, time.UTC)
		if err != nil {
			return TimeWindow{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
		}
		w.To = t.Add(24*time.Hour - time.Second)
	}
	return w, nil
}

// FromUnix returns the lower bound in epoch seconds, 0 when unset.
func (w TimeWindow) FromUnix() int64 {
	if w.From.IsZero() {
		return 0
	}
	return w.From.Unix()
}

// ToUnix returns the upper bound in epoch seconds, 0 when unset.
func (w TimeWindow) ToUnix() int64 {
	if w.To.IsZero() {
		return 0
	}
	return w.To.Unix()
}
