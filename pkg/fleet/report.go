package fleet

import "time"

// ReportStats are the aggregate counts handed to the email renderer
// alongside the vessel list.
type ReportStats struct {
	Total       int `json:"total"`
	Sailing     int `json:"sailing"`
	Intercepted int `json:"intercepted"`
	Other       int `json:"other"`

	StatusCounts map[VesselStatus]int `json:"status_counts"`

	MostRecentUpdate *time.Time `json:"most_recent_update,omitempty"`
}

// Report is the output of one full pipeline run.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`

	Vessels []*Vessel   `json:"vessels"`
	Stats   ReportStats `json:"stats"`

	// Records excluded from the run, kept for diagnostics only
	SkippedRecords int `json:"skipped_records"`
	FailedRecords  int `json:"failed_records"`
}

// DataAge gives how stale the freshest vessel data is at the given time,
// for the report header
func (r *Report) DataAge(now time.Time) time.Duration {
	if r.Stats.MostRecentUpdate == nil {
		return 0
	}

	return now.Sub(*r.Stats.MostRecentUpdate)
}

func CalculateReportStats(vessels []*Vessel) ReportStats {
	stats := ReportStats{
		Total:        len(vessels),
		StatusCounts: map[VesselStatus]int{},
	}

	for _, vessel := range vessels {
		stats.StatusCounts[vessel.Status] += 1

		switch vessel.Status {
		case StatusSailing:
			stats.Sailing += 1
		case StatusIntercepted:
			stats.Intercepted += 1
		default:
			stats.Other += 1
		}

		if stats.MostRecentUpdate == nil || vessel.LastUpdated.After(*stats.MostRecentUpdate) {
			lastUpdated := vessel.LastUpdated
			stats.MostRecentUpdate = &lastUpdated
		}
	}

	return stats
}
