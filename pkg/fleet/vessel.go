package fleet

import (
	"fmt"
	"strings"
	"time"
)

var VesselIDFormat = "flotilla-vessel-%s"

type VesselStatus string

const (
	StatusSailing     VesselStatus = "SAILING"
	StatusIntercepted VesselStatus = "INTERCEPTED"
	StatusDocked      VesselStatus = "DOCKED"
	StatusAnchored    VesselStatus = "ANCHORED"
	StatusOther       VesselStatus = "OTHER"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Vessel struct {
	PrimaryIdentifier string `json:"primary_identifier"`

	Name      string       `json:"name"`
	Status    VesselStatus `json:"status"`
	RawStatus string       `json:"raw_status"`

	LastUpdated        time.Time `json:"last_updated"`
	LastUpdatedLocal   time.Time `json:"last_updated_local"`
	LastUpdatedDisplay string    `json:"last_updated_display"`

	Location *Location `json:"location,omitempty"`
	Speed    *float64  `json:"speed,omitempty"`
	Course   *float64  `json:"course,omitempty"`

	DistanceNm *float64 `json:"distance_nm,omitempty"`

	ETAHours     *float64   `json:"eta_hours,omitempty"`
	ETADays      *float64   `json:"eta_days,omitempty"`
	ETADisplay   string     `json:"eta_display"`
	ETATimestamp *time.Time `json:"eta_timestamp,omitempty"`
}

// VesselIdentifier derives the stable identifier for a vessel name.
// Repeat runs must always map the same name to the same identifier as
// it is the join key across historic snapshots.
func VesselIdentifier(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")

	return fmt.Sprintf(VesselIDFormat, slug)
}
