package usecases

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/abelzeko/dino-velocity/internal/config"
	"github.com/abelzeko/dino-velocity/internal/entities"
)

// Scheduler re-runs the pipeline on a cron schedule, one run at a time
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
	log  *zap.SugaredLogger
}

// NewScheduler registers a pipeline run for the standard cron spec.
func NewScheduler(spec string, uc *DinosaurUseCase, p config.Pipeline, log *zap.Logger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:  context.Background(),
		log:  log.Sugar(),
	}

	_, err := s.cron.AddFunc(spec, func() {
		res, err := uc.Run(s.ctx, p)
		if err != nil {
			s.log.Errorf("Scheduled run failed: %v", err)
			return
		}
		s.log.Infof("Scheduled run ranked %d dinosaurs", len(res.Ranking))
	})
	if err != nil {
		return nil, entities.NewOpError("usecases.new_scheduler", entities.KindInvalidArgument, "",
			"invalid cron spec %q: %v: %w", spec, err, entities.ErrInvalidArgument)
	}
	return s, nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.ctx = ctx
	s.log.Infof("Scheduler started")
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Infof("Scheduler stopped")
}
