package eta

import (
	"errors"
	"fmt"
	"math"

	"github.com/nyem69/flotilla-freedom-2025/pkg/fleet"
)

var ErrInvalidSpeed = errors.New("invalid speed")

// DefaultNotMovingThreshold is the speed in knots below which progress is
// not distinguishable from station-keeping or drift
const DefaultNotMovingThreshold = 0.5

var terminalStatusDisplays = map[fleet.VesselStatus]string{
	fleet.StatusIntercepted: "Intercepted",
	fleet.StatusDocked:      "Docked",
	fleet.StatusAnchored:    "Anchored",
}

// Estimate is the structured time-to-arrival result. Hours is nil whenever
// no arrival is expected or it cannot be computed, with Display carrying
// the reason instead.
type Estimate struct {
	Hours   *float64
	Display string
}

type Estimator struct {
	NotMovingThreshold float64
	TerminalStatuses   map[fleet.VesselStatus]string
}

func NewEstimator() *Estimator {
	return &Estimator{
		NotMovingThreshold: DefaultNotMovingThreshold,
		TerminalStatuses:   terminalStatusDisplays,
	}
}

// Estimate projects the time to arrival from the remaining distance at the
// current speed. Terminal statuses take priority over the speed check as a
// docked or intercepted vessel usually also reports near-zero speed.
func (e *Estimator) Estimate(distanceNm *float64, speed *float64, status fleet.VesselStatus) (Estimate, error) {
	if display, terminal := e.TerminalStatuses[status]; terminal {
		return Estimate{Display: display}, nil
	}

	if distanceNm == nil {
		return Estimate{Display: "Unknown"}, nil
	}

	if speed != nil && (*speed < 0 || math.IsNaN(*speed) || math.IsInf(*speed, 0)) {
		return Estimate{}, fmt.Errorf("%w: %f knots", ErrInvalidSpeed, *speed)
	}

	if speed == nil || *speed < e.NotMovingThreshold {
		return Estimate{Display: "Not moving"}, nil
	}

	hours := *distanceNm / *speed

	return Estimate{
		Hours:   &hours,
		Display: FormatHours(hours),
	}, nil
}

// FormatHours renders an hour count as "2d 22h" once it reaches a full day,
// otherwise as "18 hours" / "4.5 hours"
func FormatHours(hours float64) string {
	if hours >= 24 {
		days := int(hours / 24)
		remainder := int(hours) % 24

		return fmt.Sprintf("%dd %dh", days, remainder)
	}

	if hours == math.Trunc(hours) {
		return fmt.Sprintf("%d hours", int(hours))
	}

	return fmt.Sprintf("%.1f hours", hours)
}
