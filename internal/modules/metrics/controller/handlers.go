package controller

import (
	"net/http"
	"time"

	"weatherstation-server/internal/utils"
)

const (
	outdatedHeader = "Outdated"
	lastDateHeader = "Last-Date"
)

// handleMetrics serves one station-local day of readings. interval=last
// returns the raw tail of the day; half-hour and hour return bucketed
// averages. Feed freshness rides on the response headers so every mode
// carries it without changing the body shape.
func (c *metricsControllerImpl) handleMetrics(w http.ResponseWriter, r *http.Request) {
	day, interval, err := parseMetricsQuery(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body any
	if interval == intervalLast {
		readings, err := c.service.TailForDay(day)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		body = readings
	} else {
		buckets, err := c.service.BucketsForDay(day, bucketWidths[interval])
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		body = buckets
	}

	// Freshness is judged against the newest row in the whole store, not the
	// requested day; a store failure here reads as stale, never as an error.
	freshness := c.service.Freshness(c.now())
	if freshness.Outdated {
		w.Header().Set(outdatedHeader, "1")
	} else {
		w.Header().Set(outdatedHeader, "0")
	}
	if freshness.LastReadingAt != nil {
		w.Header().Set(lastDateHeader, freshness.LastReadingAt.UTC().Format(time.RFC3339Nano))
	}

	utils.WriteJSON(w, http.StatusOK, body)
}
