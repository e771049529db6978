package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/logging"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type Scheduler interface {
	Start()
	Stop()
}

// Job is invoked on the cron schedule in Spec. Jobs with an empty spec are not scheduled.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

type scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

func New(ctx context.Context, jobs []Job) (Scheduler, error) {
	log := logging.GetFromContext(ctx)
	cl := cronLogger{log: log}

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	s := &scheduler{cron: c, ctx: ctx}

	for _, job := range jobs {
		if job.Spec == "" {
			continue
		}

		j := job
		_, err := c.AddFunc(j.Spec, func() { s.run(j) })
		if err != nil {
			return nil, fmt.Errorf("invalid schedule %q for %s: %w", j.Spec, j.Name, err)
		}

		log.Info().Str("job", j.Name).Str("schedule", j.Spec).Msg("job scheduled")
	}

	return s, nil
}

func (s *scheduler) run(job Job) {
	log := logging.GetFromContext(s.ctx).With().Str("job", job.Name).Logger()
	ctx := logging.NewContextWithLogger(s.ctx, log)

	start := time.Now()

	if err := job.Run(ctx); err != nil {
		log.Error().Err(err).Msg("scheduled job failed")
		return
	}

	log.Debug().Dur("elapsed", time.Since(start)).Msg("scheduled job done")
}

func (s *scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling new runs and waits for running jobs to complete.
func (s *scheduler) Stop() {
	<-s.cron.Stop().Done()
}

type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
