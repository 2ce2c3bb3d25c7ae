package tracker

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/nyem69/flotilla-freedom-2025/pkg/eta"
	"github.com/nyem69/flotilla-freedom-2025/pkg/fleet"
	"github.com/nyem69/flotilla-freedom-2025/pkg/geo"
	"github.com/rs/zerolog/log"
)

// ErrSkipRecord marks a scraped row that is an incident report rather than
// a vessel. Skipped rows are excluded from the report but counted.
var ErrSkipRecord = errors.New("record is not a vessel")

var statusMappings = map[string]fleet.VesselStatus{
	"sailing":             fleet.StatusSailing,
	"underway":            fleet.StatusSailing,
	"en route":            fleet.StatusSailing,
	"intercepted":         fleet.StatusIntercepted,
	"assumed intercepted": fleet.StatusIntercepted,
	"docked":              fleet.StatusDocked,
	"in port":             fleet.StatusDocked,
	"moored":              fleet.StatusDocked,
	"anchored":            fleet.StatusAnchored,
	"at anchor":           fleet.StatusAnchored,
}

// Rows whose name carries incident wording are live-blog entries the
// scraper sometimes picks up alongside the vessel table
var incidentNamePattern = regexp.MustCompile(`(?i)\b(intercepted|attacked|boarded|emergency|breaking)\b`)

type Normaliser struct {
	TargetLatitude  float64
	TargetLongitude float64

	Location  *time.Location
	Estimator *eta.Estimator

	Now func() time.Time
}

func NewNormaliser(config Config) *Normaliser {
	estimator := eta.NewEstimator()
	estimator.NotMovingThreshold = config.NotMovingThreshold

	return &Normaliser{
		TargetLatitude:  config.TargetLatitude,
		TargetLongitude: config.TargetLongitude,
		Location:        config.Location(),
		Estimator:       estimator,
		Now:             time.Now,
	}
}

// Normalise maps one raw scraped record into the canonical vessel entity,
// returning ErrSkipRecord for rows that do not represent a vessel. The
// scraper filters those upstream but the check is repeated here.
func (n *Normaliser) Normalise(record fleet.RawVesselRecord) (*fleet.Vessel, error) {
	if incidentNamePattern.MatchString(record.Name) && !record.HasPosition() {
		return nil, ErrSkipRecord
	}

	if !record.HasPosition() && !record.HasMovementData() {
		return nil, ErrSkipRecord
	}

	status, rawStatus := normaliseStatus(record.Status)

	lastUpdated := n.Now().UTC()
	if record.LastUpdated != nil {
		lastUpdated = record.LastUpdated.UTC()
	}
	lastUpdatedLocal := lastUpdated.In(n.Location)

	vessel := &fleet.Vessel{
		PrimaryIdentifier: fleet.VesselIdentifier(record.Name),

		Name:      record.Name,
		Status:    status,
		RawStatus: rawStatus,

		LastUpdated:        lastUpdated,
		LastUpdatedLocal:   lastUpdatedLocal,
		LastUpdatedDisplay: lastUpdatedLocal.Format("02 Jan 2006 15:04"),

		Speed:  record.Speed,
		Course: record.Course,
	}

	if record.HasPosition() {
		vessel.Location = &fleet.Location{
			Latitude:  *record.Latitude,
			Longitude: *record.Longitude,
		}

		distance, err := geo.DistanceNm(*record.Latitude, *record.Longitude, n.TargetLatitude, n.TargetLongitude)
		if err != nil {
			return nil, err
		}

		vessel.DistanceNm = &distance
	}

	estimate, err := n.Estimator.Estimate(vessel.DistanceNm, vessel.Speed, vessel.Status)
	if err != nil {
		return nil, err
	}

	vessel.ETADisplay = estimate.Display

	if estimate.Hours != nil {
		hours := *estimate.Hours
		days := hours / 24
		etaTimestamp := lastUpdated.Add(time.Duration(hours * float64(time.Hour)))

		vessel.ETAHours = &hours
		vessel.ETADays = &days
		vessel.ETATimestamp = &etaTimestamp
	}

	return vessel, nil
}

func normaliseStatus(rawStatus string) (fleet.VesselStatus, string) {
	folded := strings.ToLower(strings.TrimSpace(rawStatus))

	if status, known := statusMappings[folded]; known {
		return status, rawStatus
	}

	if rawStatus != "" {
		log.Warn().Str("status", rawStatus).Msg("Unknown vessel status")
	}

	return fleet.StatusOther, rawStatus
}
