package report

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// 3 attempts total, delay doubling between them
const sendAttempts = 3

// SendWithRetry delivers the email through the sender with bounded
// exponential backoff. The report itself is already persisted by the time
// this runs, so giving up here loses one email, not the run.
func SendWithRetry(ctx context.Context, sender Sender, email Email) error {
	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = 5 * time.Second
	retryBackoff.Multiplier = 2

	attempt := 0
	operation := func() error {
		attempt += 1

		err := sender.Send(ctx, email)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("Report email delivery failed")
		}

		return err
	}

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(retryBackoff, sendAttempts-1), ctx))
}
