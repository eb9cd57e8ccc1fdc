package controller

import (
	"errors"
	"net/http"
	"time"
)

const (
	intervalLast     = "last"
	intervalHalfHour = "half-hour"
	intervalHour     = "hour"
)

var bucketWidths = map[string]time.Duration{
	intervalHalfHour: 30 * time.Minute,
	intervalHour:     time.Hour,
}

// parseMetricsQuery validates the request before any store access. The day
// parameter is `date` (YYYY-MM-DD, required; `from` accepted as a legacy
// alias); `interval` defaults to "last" and anything outside the enum is
// rejected rather than defaulted.
func parseMetricsQuery(r *http.Request) (day time.Time, interval string, err error) {
	q := r.URL.Query()

	dateStr := q.Get("date")
	if dateStr == "" {
		dateStr = q.Get("from")
	}
	if dateStr == "" {
		return time.Time{}, "", errors.New("missing 'date' query parameter")
	}
	day, err = time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, "", errors.New("invalid 'date' (expected YYYY-MM-DD)")
	}

	interval = q.Get("interval")
	if interval == "" {
		interval = intervalLast
	}
	switch interval {
	case intervalLast, intervalHalfHour, intervalHour:
	default:
		return time.Time{}, "", errors.New("invalid 'interval' (expected last, half-hour or hour)")
	}

	return day, interval, nil
}
