package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func Test_parseMetricsQuery(t *testing.T) {
	t.Run("valid date defaults interval to last", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics?date=2025-03-10", nil)
		day, interval, err := parseMetricsQuery(req)
		if err != nil {
			t.Fatalf("parseMetricsQuery() err = %v; want nil", err)
		}
		want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		if !day.Equal(want) {
			t.Errorf("day = %v; want %v", day, want)
		}
		if interval != intervalLast {
			t.Errorf("interval = %q; want %q", interval, intervalLast)
		}
	})

	t.Run("missing date returns error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
		_, _, err := parseMetricsQuery(req)
		if err == nil {
			t.Fatal("parseMetricsQuery() err = nil; want non-nil")
		}
		if err.Error() != "missing 'date' query parameter" {
			t.Errorf("err = %q; want missing 'date' query parameter", err.Error())
		}
	})

	t.Run("legacy from alias accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics?from=2025-03-10", nil)
		day, _, err := parseMetricsQuery(req)
		if err != nil {
			t.Fatalf("parseMetricsQuery() err = %v; want nil", err)
		}
		want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		if !day.Equal(want) {
			t.Errorf("day = %v; want %v", day, want)
		}
	})

	t.Run("date wins over from", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics?date=2025-03-10&from=2025-01-01", nil)
		day, _, err := parseMetricsQuery(req)
		if err != nil {
			t.Fatalf("parseMetricsQuery() err = %v; want nil", err)
		}
		want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		if !day.Equal(want) {
			t.Errorf("day = %v; want %v", day, want)
		}
	})

	t.Run("malformed dates rejected", func(t *testing.T) {
		bad := []string{
			"2025-3-10",     // missing zero padding
			"2025-13-01",    // no month 13
			"2025-02-30",    // no Feb 30
			"10-03-2025",    // wrong order
			"2025-03-10T00", // trailing time
			"not-a-date",
		}
		for _, d := range bad {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics?date="+d, nil)
			_, _, err := parseMetricsQuery(req)
			if err == nil {
				t.Errorf("date %q: err = nil; want non-nil", d)
				continue
			}
			if err.Error() != "invalid 'date' (expected YYYY-MM-DD)" {
				t.Errorf("date %q: err = %q; want invalid 'date' (expected YYYY-MM-DD)", d, err.Error())
			}
		}
	})

	t.Run("named intervals accepted", func(t *testing.T) {
		for _, iv := range []string{intervalLast, intervalHalfHour, intervalHour} {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics?date=2025-03-10&interval="+iv, nil)
			_, got, err := parseMetricsQuery(req)
			if err != nil {
				t.Errorf("interval %q: err = %v; want nil", iv, err)
				continue
			}
			if got != iv {
				t.Errorf("interval = %q; want %q", got, iv)
			}
		}
	})

	t.Run("unknown interval rejected, not defaulted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics?date=2025-03-10&interval=foo", nil)
		_, _, err := parseMetricsQuery(req)
		if err == nil {
			t.Fatal("parseMetricsQuery() err = nil; want non-nil")
		}
		if err.Error() != "invalid 'interval' (expected last, half-hour or hour)" {
			t.Errorf("err = %q; want invalid 'interval' (expected last, half-hour or hour)", err.Error())
		}
	})
}
