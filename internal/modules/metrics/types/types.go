package types

import "time"

// Reading is one stored sensor sample. Time is always set; everything else
// is optional because individual sensors on the station drop out
// independently (a missing value is stored as NULL, not 0).
type Reading struct {
	Time                time.Time `json:"time"`
	SourceURL           *string   `json:"sourceUrl"`
	AltitudeMeters      *float64  `json:"altitudeMeters"`
	SoilMoisturePercent *float64  `json:"soilMoisturePercent"`
	SoilMoistureRaw     *float64  `json:"soilMoistureRaw"`
	PressureHpa         *float64  `json:"pressureHpa"`
	TemperatureC        *float64  `json:"temperatureC"`
	RelativeHumidity    *float64  `json:"relativeHumidity"`
}

// AggregatedBucket is the per-bucket average of a group of readings.
// Time is the epoch-aligned bucket start; SourceURL is copied from the first
// reading that landed in the bucket. Derived on the fly, never persisted.
type AggregatedBucket struct {
	Time                time.Time `json:"time"`
	SourceURL           *string   `json:"sourceUrl"`
	AltitudeMeters      float64   `json:"altitudeMeters"`
	SoilMoisturePercent float64   `json:"soilMoisturePercent"`
	SoilMoistureRaw     float64   `json:"soilMoistureRaw"`
	PressureHpa         float64   `json:"pressureHpa"`
	TemperatureC        float64   `json:"temperatureC"`
	RelativeHumidity    float64   `json:"relativeHumidity"`
}

// FreshnessStatus says whether the feed looks disconnected. LastReadingAt is
// nil when the store holds no rows at all.
type FreshnessStatus struct {
	Outdated      bool
	LastReadingAt *time.Time
}
