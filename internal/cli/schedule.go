package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abelzeko/dino-velocity/internal/usecases"
)

func (a *app) scheduleCmd() *cobra.Command {
	var runNow bool

	c := &cobra.Command{
		Use:   "schedule",
		Short: "Re-run the ranking pipeline on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateSchedule(); err != nil {
				return err
			}

			uc, cleanup, err := a.buildUseCase(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			log := a.logger.Sugar()
			s, err := usecases.NewScheduler(cfg.Schedule.Cron, uc, cfg.Pipeline, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if runNow {
				if _, err := uc.Run(ctx, cfg.Pipeline); err != nil {
					log.Errorf("Initial run failed: %v", err)
				}
			}

			log.Infof("Pipeline scheduled with %q", cfg.Schedule.Cron)
			s.Run(ctx)
			return nil
		},
	}

	c.Flags().StringVar(&a.cronSpec, "cron", "0 * * * *", "standard cron spec or @every/@hourly descriptor")
	c.Flags().BoolVar(&runNow, "now", true, "run once immediately before waiting for the schedule")
	return c
}
