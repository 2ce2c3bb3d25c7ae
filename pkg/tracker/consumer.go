package tracker

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/nyem69/flotilla-freedom-2025/pkg/fleet"
	"github.com/nyem69/flotilla-freedom-2025/pkg/report"
	"github.com/rs/zerolog/log"
)

const ScrapeQueueName = "flotilla-queue-scrape"

type scrapePayload struct {
	Records []fleet.RawVesselRecord `json:"records"`
}

// ScrapeBatchConsumer processes scrape results delivered over the Redis
// queue, one full scrape per delivery. Runs must not overlap as they share
// the snapshot and history files, so it is always registered exactly once
// with a batch size of one.
type ScrapeBatchConsumer struct {
	Pipeline *Pipeline
	Renderer *report.Renderer
	Sender   report.Sender
}

func NewScrapeBatchConsumer(config Config, sender report.Sender) *ScrapeBatchConsumer {
	return &ScrapeBatchConsumer{
		Pipeline: NewPipeline(config),
		Renderer: report.NewRenderer(),
		Sender:   sender,
	}
}

func (consumer *ScrapeBatchConsumer) Consume(batch rmq.Deliveries) {
	for _, payload := range batch.Payloads() {
		var scrape scrapePayload
		if err := json.Unmarshal([]byte(payload), &scrape); err != nil {
			log.Error().Err(err).Msg("Failed to decode scrape payload")

			continue
		}

		vesselReport, err := consumer.Pipeline.Process(scrape.Records)
		if err != nil {
			log.Error().Err(err).Msg("Failed to persist tracking run")

			continue
		}

		email, err := consumer.Renderer.Render(vesselReport)
		if err != nil {
			log.Error().Err(err).Msg("Failed to render report email")

			continue
		}

		if err := report.SendWithRetry(context.Background(), consumer.Sender, email); err != nil {
			log.Error().Err(err).Msg("Failed to send report email")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack scrape delivery")
		}
	}
}
