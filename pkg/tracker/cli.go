package tracker

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nyem69/flotilla-freedom-2025/pkg/consumer"
	"github.com/nyem69/flotilla-freedom-2025/pkg/fleet"
	"github.com/nyem69/flotilla-freedom-2025/pkg/redis_client"
	"github.com/nyem69/flotilla-freedom-2025/pkg/report"
	"github.com/nyem69/flotilla-freedom-2025/pkg/scraper"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "tracker",
		Usage: "Vessel tracking engine computes ETAs and maintains the rolling history",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "process one scrape result and send the report email",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Usage:    "path to the scraper output document",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					config := GetConfig()

					source := &scraper.FileSource{Path: c.String("input")}

					var records []fleet.RawVesselRecord
					fetchBackoff := backoff.NewExponentialBackOff()
					fetchBackoff.Multiplier = 2
					err := backoff.Retry(func() error {
						var fetchErr error
						records, fetchErr = source.Fetch(c.Context)

						return fetchErr
					}, backoff.WithMaxRetries(fetchBackoff, 2))
					if err != nil {
						return err
					}

					pipeline := NewPipeline(config)
					vesselReport, err := pipeline.Process(records)
					if err != nil {
						return err
					}

					email, err := report.NewRenderer().Render(vesselReport)
					if err != nil {
						return err
					}

					return report.SendWithRetry(c.Context, newSender(), email)
				},
			},
			{
				Name:  "consumer",
				Usage: "consume scrape results from the redis queue",
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					config := GetConfig()

					redisConsumer := consumer.RedisConsumer{
						QueueName: ScrapeQueueName,

						// One consumer with a batch of one - concurrent runs
						// would race on the history append
						NumberConsumers: 1,
						BatchSize:       1,

						Timeout:  2 * time.Second,
						Consumer: NewScrapeBatchConsumer(config, newSender()),
					}
					redisConsumer.Setup()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
		},
	}
}

func newSender() report.Sender {
	sender, err := report.NewSMTPSenderFromEnv()
	if err != nil {
		log.Info().Msg("SMTP not configured, report emails will only be logged")

		return &report.LogSender{}
	}

	return sender
}
