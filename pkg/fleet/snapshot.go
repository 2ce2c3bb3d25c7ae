package fleet

import "time"

// Snapshot is the most recent processed vessel report. It fully replaces
// the previous one on disk every run.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`
	Vessels     []*Vessel `json:"vessels"`
}

// VesselSummary is the reduced per-vessel form retained in the history log.
type VesselSummary struct {
	Name       string       `json:"name"`
	Status     VesselStatus `json:"status"`
	DistanceNm *float64     `json:"distance_nm,omitempty"`
	Speed      *float64     `json:"speed,omitempty"`
	ETAHours   *float64     `json:"eta_hours,omitempty"`
}

type HistoryEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Vessels   []VesselSummary `json:"vessels"`
}

func NewHistoryEntry(timestamp time.Time, vessels []*Vessel) HistoryEntry {
	entry := HistoryEntry{
		Timestamp: timestamp,
		Vessels:   []VesselSummary{},
	}

	for _, vessel := range vessels {
		entry.Vessels = append(entry.Vessels, VesselSummary{
			Name:       vessel.Name,
			Status:     vessel.Status,
			DistanceNm: vessel.DistanceNm,
			Speed:      vessel.Speed,
			ETAHours:   vessel.ETAHours,
		})
	}

	return entry
}
