package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nyem69/flotilla-freedom-2025/pkg/fleet"
	"github.com/rs/zerolog/log"
)

var ErrPersistenceUnavailable = errors.New("persistence unavailable")

// DefaultCap keeps 30 days of hourly runs
const DefaultCap = 720

type historyDocument struct {
	Entries []fleet.HistoryEntry `json:"entries"`
}

// Store persists the latest snapshot and the rolling history log as JSON
// documents on disk. The on-disk formats are the compatibility contract
// between runs and must stay stable.
type Store struct {
	SnapshotPath string
	HistoryPath  string
	Cap          int
}

func NewStore(snapshotPath string, historyPath string, cap int) *Store {
	if cap <= 0 {
		cap = DefaultCap
	}

	return &Store{
		SnapshotPath: snapshotPath,
		HistoryPath:  historyPath,
		Cap:          cap,
	}
}

// Load returns the persisted history log, oldest entry first. A missing or
// unreadable log is not an error as the first run starts from nothing and a
// corrupted log should not block the next report.
func (s *Store) Load() []fleet.HistoryEntry {
	file, err := os.ReadFile(s.HistoryPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.HistoryPath).Msg("Failed to read history log, starting empty")
		}

		return []fleet.HistoryEntry{}
	}

	var document historyDocument
	if err := json.Unmarshal(file, &document); err != nil {
		log.Warn().Err(err).Str("path", s.HistoryPath).Msg("Failed to decode history log, starting empty")

		return []fleet.HistoryEntry{}
	}

	return document.Entries
}

// AppendAndTrim appends the new entry then drops from the front until the
// log fits the cap again. Pure with respect to its inputs.
func AppendAndTrim(entries []fleet.HistoryEntry, newEntry fleet.HistoryEntry, cap int) []fleet.HistoryEntry {
	trimmed := make([]fleet.HistoryEntry, 0, len(entries)+1)
	trimmed = append(trimmed, entries...)
	trimmed = append(trimmed, newEntry)

	if len(trimmed) > cap {
		trimmed = trimmed[len(trimmed)-cap:]
	}

	return trimmed
}

// WriteHistory replaces the persisted history log with the given entries
func (s *Store) WriteHistory(entries []fleet.HistoryEntry) error {
	return s.writeDocument(s.HistoryPath, historyDocument{Entries: entries})
}

// WriteSnapshot unconditionally overwrites the latest snapshot
func (s *Store) WriteSnapshot(snapshot *fleet.Snapshot) error {
	return s.writeDocument(s.SnapshotPath, snapshot)
}

func (s *Store) writeDocument(path string, document any) error {
	documentJSON, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPersistenceUnavailable, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %s", ErrPersistenceUnavailable, err)
	}

	// Write then rename so a failed run never leaves a partial document
	temporaryPath := fmt.Sprintf("%s.tmp", path)
	if err := os.WriteFile(temporaryPath, documentJSON, 0644); err != nil {
		return fmt.Errorf("%w: %s", ErrPersistenceUnavailable, err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("%w: %s", ErrPersistenceUnavailable, err)
	}

	return nil
}
