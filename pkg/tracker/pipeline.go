package tracker

import (
	"errors"
	"sort"

	"github.com/nyem69/flotilla-freedom-2025/pkg/fleet"
	"github.com/nyem69/flotilla-freedom-2025/pkg/history"
	"github.com/rs/zerolog/log"
)

type Pipeline struct {
	Normaliser *Normaliser
	Store      *history.Store
}

func NewPipeline(config Config) *Pipeline {
	return &Pipeline{
		Normaliser: NewNormaliser(config),
		Store:      history.NewStore(config.SnapshotPath, config.HistoryPath, config.HistoryCap),
	}
}

// Process runs one full tracking run over the scraped records. A persistence
// failure is returned alongside the report so a degraded report can still
// reach the email renderer.
func (p *Pipeline) Process(records []fleet.RawVesselRecord) (*fleet.Report, error) {
	generatedAt := p.Normaliser.Now().UTC()

	report := &fleet.Report{
		GeneratedAt: generatedAt,
		Vessels:     []*fleet.Vessel{},
	}

	for _, record := range records {
		vessel, err := p.Normaliser.Normalise(record)
		if err != nil {
			if errors.Is(err, ErrSkipRecord) {
				report.SkippedRecords += 1
				log.Debug().Str("name", record.Name).Msg("Skipping non-vessel record")
			} else {
				report.FailedRecords += 1
				log.Error().Err(err).Str("name", record.Name).Msg("Failed to normalise vessel record")
			}

			continue
		}

		report.Vessels = append(report.Vessels, vessel)
	}

	sortVesselsByDistance(report.Vessels)

	report.Stats = fleet.CalculateReportStats(report.Vessels)

	snapshot := &fleet.Snapshot{
		GeneratedAt: generatedAt,
		Vessels:     report.Vessels,
	}
	if err := p.Store.WriteSnapshot(snapshot); err != nil {
		return report, err
	}

	entries := p.Store.Load()
	entries = history.AppendAndTrim(entries, fleet.NewHistoryEntry(generatedAt, report.Vessels), p.Store.Cap)
	if err := p.Store.WriteHistory(entries); err != nil {
		return report, err
	}

	log.Info().
		Int("vessels", len(report.Vessels)).
		Int("skipped", report.SkippedRecords).
		Int("failed", report.FailedRecords).
		Int("history", len(entries)).
		Msg("Tracking run complete")

	return report, nil
}

// sortVesselsByDistance orders closest first, vessels without a known
// distance after all of those, keeping their original relative order
func sortVesselsByDistance(vessels []*fleet.Vessel) {
	sort.SliceStable(vessels, func(i, j int) bool {
		if vessels[i].DistanceNm == nil {
			return false
		}
		if vessels[j].DistanceNm == nil {
			return true
		}

		return *vessels[i].DistanceNm < *vessels[j].DistanceNm
	})
}
