package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nyem69/flotilla-freedom-2025/pkg/fleet"
)

// Source delivers one scrape result. The browser-automation scraper runs as
// a separate process and hands its output over through one of these.
type Source interface {
	Fetch(ctx context.Context) ([]fleet.RawVesselRecord, error)
}

type scrapeDocument struct {
	ScrapedAt time.Time               `json:"scraped_at"`
	Records   []fleet.RawVesselRecord `json:"records"`
}

// FileSource reads the scraper's JSON output document from disk
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(ctx context.Context) ([]fleet.RawVesselRecord, error) {
	file, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scrape result: %w", err)
	}

	var document scrapeDocument
	if err := json.Unmarshal(file, &document); err != nil {
		// Older scraper versions wrote a bare record array
		var records []fleet.RawVesselRecord
		if arrayErr := json.Unmarshal(file, &records); arrayErr == nil {
			return records, nil
		}

		return nil, fmt.Errorf("failed to decode scrape result: %w", err)
	}

	return document.Records, nil
}
