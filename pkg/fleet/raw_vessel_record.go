package fleet

import "time"

// RawVesselRecord is one scraped row exactly as the scraper collaborator
// delivered it. Optional fields are nil when the source page had no value.
type RawVesselRecord struct {
	Name   string `json:"name"`
	Status string `json:"status"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Speed  *float64 `json:"speed,omitempty"`
	Course *float64 `json:"course,omitempty"`

	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

func (r *RawVesselRecord) HasPosition() bool {
	return r.Latitude != nil && r.Longitude != nil
}

func (r *RawVesselRecord) HasMovementData() bool {
	return r.Speed != nil || r.Course != nil
}
