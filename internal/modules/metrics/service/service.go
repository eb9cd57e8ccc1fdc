// Package service holds the read-path semantics of the metrics API: resolving
// a station-local calendar day to a UTC window, averaging readings into
// fixed-width buckets, selecting the raw tail of a day, and deciding whether
// the feed has gone stale.
package service

import (
	"log/slog"
	"sort"
	"time"

	"weatherstation-server/internal/modules/metrics/repository"
	"weatherstation-server/internal/modules/metrics/types"
)

// TailLimit is the number of most-recent rows returned in raw (last) mode.
const TailLimit = 30

type Service struct {
	repository repository.MetricsRepository
	tzOffset   time.Duration
	staleAfter time.Duration
}

func NewService(repo repository.MetricsRepository, tzOffset time.Duration, staleAfter time.Duration) *Service {
	return &Service{
		repository: repo,
		tzOffset:   tzOffset,
		staleAfter: staleAfter,
	}
}

// DayWindow resolves a calendar day in the station's fixed UTC offset to the
// half-open UTC range [start, end) covering it. The offset is a constant, so
// the window is always exactly 24 hours; no DST handling.
func DayWindow(year int, month time.Month, day int, tzOffset time.Duration) (start, end time.Time) {
	utcMidnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	start = utcMidnight.Add(-tzOffset)
	return start, start.Add(24 * time.Hour)
}

// TailForDay returns the most recent TailLimit readings of the given
// station-local day, ascending by time. The repository already orders
// ascending, so this is a pure suffix slice.
func (s *Service) TailForDay(day time.Time) ([]types.Reading, error) {
	start, end := DayWindow(day.Year(), day.Month(), day.Day(), s.tzOffset)
	readings, err := s.repository.GetReadings(start, end)
	if err != nil {
		return nil, err
	}
	if readings == nil {
		readings = []types.Reading{}
	}
	return Tail(readings, TailLimit), nil
}

// BucketsForDay returns the given station-local day's readings averaged into
// width-sized buckets, ascending by bucket start.
func (s *Service) BucketsForDay(day time.Time, width time.Duration) ([]types.AggregatedBucket, error) {
	start, end := DayWindow(day.Year(), day.Month(), day.Day(), s.tzOffset)
	readings, err := s.repository.GetReadings(start, end)
	if err != nil {
		return nil, err
	}
	return AverageByBucket(readings, width), nil
}

// Freshness reports whether the feed looks disconnected as of now, judged
// against the newest reading across the whole store (not the requested day).
// A store error or an empty store both read as stale: a feed we cannot see
// is a feed we cannot vouch for.
func (s *Service) Freshness(now time.Time) types.FreshnessStatus {
	latest, err := s.repository.GetLatestReading()
	if err != nil {
		slog.Error("freshness: latest reading query failed", "error", err)
		return types.FreshnessStatus{Outdated: true}
	}
	if latest == nil {
		return types.FreshnessStatus{Outdated: true}
	}
	return types.FreshnessStatus{
		Outdated:      now.Sub(latest.Time) > s.staleAfter,
		LastReadingAt: &latest.Time,
	}
}

// Tail returns the last n readings of rs, or all of them when len(rs) <= n.
// Input order is preserved.
func Tail(rs []types.Reading, n int) []types.Reading {
	if len(rs) <= n {
		return rs
	}
	return rs[len(rs)-n:]
}

// AverageByBucket groups readings by floor(epochMillis / width) and averages
// each measurement within a bucket. Bucket boundaries align to the Unix
// epoch, not to the day window. A missing measurement counts as 0 in the
// mean — the denominator is always the bucket's row count. That biases
// averages toward zero when a sensor reports gaps, but it is the behavior
// the station dashboard has always shown, so it stays.
func AverageByBucket(rs []types.Reading, width time.Duration) []types.AggregatedBucket {
	if len(rs) == 0 {
		return []types.AggregatedBucket{}
	}

	widthMs := width.Milliseconds()
	groups := make(map[int64]*bucketAccumulator)
	for _, r := range rs {
		key := r.Time.UnixMilli() / widthMs * widthMs
		acc, ok := groups[key]
		if !ok {
			// First reading in the bucket donates its source URL.
			acc = &bucketAccumulator{sourceURL: r.SourceURL}
			groups[key] = acc
		}
		acc.add(r)
	}

	keys := make([]int64, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]types.AggregatedBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, groups[k].bucket(time.UnixMilli(k).UTC()))
	}
	return out
}

type bucketAccumulator struct {
	sourceURL *string
	count     int

	altitude float64
	soilPct  float64
	soilRaw  float64
	pressure float64
	temp     float64
	humidity float64
}

func (a *bucketAccumulator) add(r types.Reading) {
	a.count++
	a.altitude += zeroIfNil(r.AltitudeMeters)
	a.soilPct += zeroIfNil(r.SoilMoisturePercent)
	a.soilRaw += zeroIfNil(r.SoilMoistureRaw)
	a.pressure += zeroIfNil(r.PressureHpa)
	a.temp += zeroIfNil(r.TemperatureC)
	a.humidity += zeroIfNil(r.RelativeHumidity)
}

func (a *bucketAccumulator) bucket(start time.Time) types.AggregatedBucket {
	n := float64(a.count)
	return types.AggregatedBucket{
		Time:                start,
		SourceURL:           a.sourceURL,
		AltitudeMeters:      a.altitude / n,
		SoilMoisturePercent: a.soilPct / n,
		SoilMoistureRaw:     a.soilRaw / n,
		PressureHpa:         a.pressure / n,
		TemperatureC:        a.temp / n,
		RelativeHumidity:    a.humidity / n,
	}
}

func zeroIfNil(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
