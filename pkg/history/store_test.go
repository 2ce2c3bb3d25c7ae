package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nyem69/flotilla-freedom-2025/pkg/fleet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(run int) fleet.HistoryEntry {
	return fleet.HistoryEntry{
		Timestamp: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(run) * time.Hour),
		Vessels: []fleet.VesselSummary{
			{Name: fmt.Sprintf("Vessel %d", run), Status: fleet.StatusSailing},
		},
	}
}

func TestAppendAndTrim(t *testing.T) {
	entries := []fleet.HistoryEntry{}

	entries = AppendAndTrim(entries, testEntry(0), 3)
	entries = AppendAndTrim(entries, testEntry(1), 3)
	require.Len(t, entries, 2)

	entries = AppendAndTrim(entries, testEntry(2), 3)
	entries = AppendAndTrim(entries, testEntry(3), 3)
	require.Len(t, entries, 3)

	// Oldest evicted first, order preserved
	assert.Equal(t, testEntry(1).Timestamp, entries[0].Timestamp)
	assert.Equal(t, testEntry(3).Timestamp, entries[2].Timestamp)
}

func TestAppendAndTrimAtFullCap(t *testing.T) {
	entries := []fleet.HistoryEntry{}
	for run := 0; run < DefaultCap; run++ {
		entries = AppendAndTrim(entries, testEntry(run), DefaultCap)
	}
	require.Len(t, entries, DefaultCap)

	for run := DefaultCap; run < DefaultCap+5; run++ {
		entries = AppendAndTrim(entries, testEntry(run), DefaultCap)
	}

	assert.Len(t, entries, DefaultCap)
	assert.Equal(t, testEntry(5).Timestamp, entries[0].Timestamp)
	assert.Equal(t, testEntry(DefaultCap+4).Timestamp, entries[DefaultCap-1].Timestamp)
}

func TestAppendAndTrimDoesNotMutateInput(t *testing.T) {
	original := []fleet.HistoryEntry{testEntry(0), testEntry(1)}

	AppendAndTrim(original, testEntry(2), 2)

	require.Len(t, original, 2)
	assert.Equal(t, testEntry(0).Timestamp, original[0].Timestamp)
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(
		filepath.Join(t.TempDir(), "snapshot.json"),
		filepath.Join(t.TempDir(), "history.json"),
		DefaultCap,
	)

	entries := store.Load()
	assert.Empty(t, entries)
}

func TestLoadCorruptedFile(t *testing.T) {
	directory := t.TempDir()
	historyPath := filepath.Join(directory, "history.json")
	require.NoError(t, os.WriteFile(historyPath, []byte("{not json"), 0644))

	store := NewStore(filepath.Join(directory, "snapshot.json"), historyPath, DefaultCap)

	entries := store.Load()
	assert.Empty(t, entries)
}

func TestWriteHistoryRoundTrip(t *testing.T) {
	directory := t.TempDir()
	store := NewStore(
		filepath.Join(directory, "snapshot.json"),
		filepath.Join(directory, "history.json"),
		DefaultCap,
	)

	written := []fleet.HistoryEntry{testEntry(0), testEntry(1), testEntry(2)}
	require.NoError(t, store.WriteHistory(written))

	loaded := store.Load()
	require.Len(t, loaded, 3)
	assert.Equal(t, written[0].Timestamp, loaded[0].Timestamp)
	assert.Equal(t, written[2].Vessels[0].Name, loaded[2].Vessels[0].Name)
}

func TestWriteSnapshotOverwrites(t *testing.T) {
	directory := t.TempDir()
	store := NewStore(
		filepath.Join(directory, "snapshot.json"),
		filepath.Join(directory, "history.json"),
		DefaultCap,
	)

	first := &fleet.Snapshot{
		GeneratedAt: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Vessels:     []*fleet.Vessel{{Name: "Alma", Status: fleet.StatusSailing}},
	}
	require.NoError(t, store.WriteSnapshot(first))

	second := &fleet.Snapshot{
		GeneratedAt: time.Date(2025, 9, 1, 1, 0, 0, 0, time.UTC),
		Vessels:     []*fleet.Vessel{},
	}
	require.NoError(t, store.WriteSnapshot(second))

	file, err := os.ReadFile(store.SnapshotPath)
	require.NoError(t, err)
	assert.NotContains(t, string(file), "Alma")

	// No temp file should survive the rename
	_, err = os.Stat(fmt.Sprintf("%s.tmp", store.SnapshotPath))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteHistoryUnwritablePath(t *testing.T) {
	store := NewStore("/dev/null/snapshot.json", "/dev/null/history.json", DefaultCap)

	err := store.WriteHistory([]fleet.HistoryEntry{testEntry(0)})
	assert.ErrorIs(t, err, ErrPersistenceUnavailable)
}
