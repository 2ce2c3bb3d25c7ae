package tracker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nyem69/flotilla-freedom-2025/pkg/fleet"
	"github.com/nyem69/flotilla-freedom-2025/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPipeline(t *testing.T) *Pipeline {
	directory := t.TempDir()

	return &Pipeline{
		Normaliser: testNormaliser(),
		Store: history.NewStore(
			filepath.Join(directory, "snapshot.json"),
			filepath.Join(directory, "history.json"),
			history.DefaultCap,
		),
	}
}

func namedVessel(name string, distanceNm *float64) *fleet.Vessel {
	return &fleet.Vessel{Name: name, DistanceNm: distanceNm}
}

func TestSortVesselsByDistance(t *testing.T) {
	vessels := []*fleet.Vessel{
		namedVessel("far", floatPtr(50)),
		namedVessel("first-unknown", nil),
		namedVessel("near", floatPtr(10)),
		namedVessel("second-unknown", nil),
		namedVessel("middle", floatPtr(30)),
	}

	sortVesselsByDistance(vessels)

	names := []string{}
	for _, vessel := range vessels {
		names = append(names, vessel.Name)
	}

	// Unknown distances sort last, keeping their original relative order
	assert.Equal(t, []string{"near", "middle", "far", "first-unknown", "second-unknown"}, names)
}

func TestProcessEmptyInput(t *testing.T) {
	pipeline := testPipeline(t)

	report, err := pipeline.Process([]fleet.RawVesselRecord{})
	require.NoError(t, err)

	assert.Empty(t, report.Vessels)
	assert.Zero(t, report.Stats.Total)
	assert.Nil(t, report.Stats.MostRecentUpdate)

	// The empty snapshot still gets persisted
	_, err = os.Stat(pipeline.Store.SnapshotPath)
	assert.NoError(t, err)

	entries := pipeline.Store.Load()
	assert.Len(t, entries, 1)
}

func TestProcessNilInput(t *testing.T) {
	pipeline := testPipeline(t)

	report, err := pipeline.Process(nil)
	require.NoError(t, err)

	assert.Empty(t, report.Vessels)
}

func TestProcessExcludesBadRecords(t *testing.T) {
	pipeline := testPipeline(t)

	incident := fleet.RawVesselRecord{Name: "Sirius ATTACKED", Status: ""}
	malformed := sailingRecord()
	malformed.Latitude = floatPtr(200)

	report, err := pipeline.Process([]fleet.RawVesselRecord{sailingRecord(), incident, malformed})
	require.NoError(t, err)

	// One bad record never aborts the run
	assert.Len(t, report.Vessels, 1)
	assert.Equal(t, 1, report.SkippedRecords)
	assert.Equal(t, 1, report.FailedRecords)
}

func TestProcessSortsAndAggregates(t *testing.T) {
	pipeline := testPipeline(t)

	near := sailingRecord()
	near.Name = "Near"
	near.Latitude = floatPtr(31.6)
	near.Longitude = floatPtr(34.0)

	far := sailingRecord()
	far.Name = "Far"

	intercepted := sailingRecord()
	intercepted.Name = "Taken"
	intercepted.Status = "Assumed Intercepted"
	intercepted.LastUpdated = timePtr(time.Date(2025, 9, 15, 11, 0, 0, 0, time.UTC))

	report, err := pipeline.Process([]fleet.RawVesselRecord{far, intercepted, near})
	require.NoError(t, err)

	require.Len(t, report.Vessels, 3)
	assert.Equal(t, "Near", report.Vessels[0].Name)

	assert.Equal(t, 3, report.Stats.Total)
	assert.Equal(t, 2, report.Stats.Sailing)
	assert.Equal(t, 1, report.Stats.Intercepted)
	assert.Equal(t, 2, report.Stats.StatusCounts[fleet.StatusSailing])

	require.NotNil(t, report.Stats.MostRecentUpdate)
	assert.Equal(t, time.Date(2025, 9, 15, 11, 0, 0, 0, time.UTC), *report.Stats.MostRecentUpdate)
}

func TestProcessAppendsHistoryEachRun(t *testing.T) {
	pipeline := testPipeline(t)

	records := []fleet.RawVesselRecord{sailingRecord()}

	_, err := pipeline.Process(records)
	require.NoError(t, err)

	// Identical data still appends a new entry
	_, err = pipeline.Process(records)
	require.NoError(t, err)

	entries := pipeline.Store.Load()
	require.Len(t, entries, 2)
	assert.Equal(t, "Alma", entries[1].Vessels[0].Name)
}

func TestProcessHistoryCap(t *testing.T) {
	pipeline := testPipeline(t)
	pipeline.Store.Cap = 3

	for run := 0; run < 5; run++ {
		_, err := pipeline.Process([]fleet.RawVesselRecord{sailingRecord()})
		require.NoError(t, err)
	}

	entries := pipeline.Store.Load()
	assert.Len(t, entries, 3)
}

func TestProcessPersistenceFailure(t *testing.T) {
	pipeline := testPipeline(t)
	pipeline.Store = history.NewStore("/dev/null/snapshot.json", "/dev/null/history.json", history.DefaultCap)

	report, err := pipeline.Process([]fleet.RawVesselRecord{sailingRecord()})

	assert.ErrorIs(t, err, history.ErrPersistenceUnavailable)

	// The in-memory report is still usable by the email renderer
	require.NotNil(t, report)
	assert.Len(t, report.Vessels, 1)
}
