package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abelzeko/dino-velocity/internal/api"
	"github.com/abelzeko/dino-velocity/internal/config"
	"github.com/abelzeko/dino-velocity/internal/entities"
	"github.com/abelzeko/dino-velocity/internal/integration"
	"github.com/abelzeko/dino-velocity/internal/repository"
	"github.com/abelzeko/dino-velocity/internal/usecases"
)

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the ranking pipeline once",
		Args:  cobra.NoArgs,
		RunE:  a.runPipeline,
	}
}

func (a *app) runPipeline(cmd *cobra.Command, _ []string) error {
	cfg, err := a.resolveConfig(cmd)
	if err != nil {
		return err
	}

	uc, cleanup, err := a.buildUseCase(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := uc.Run(cmd.Context(), cfg.Pipeline)
	if err != nil {
		a.logger.Sugar().Errorf("Run failed: %v", err)
		return err
	}

	printSummary(cmd.OutOrStdout(), cfg.Pipeline, res)
	return nil
}

// buildUseCase wires the loader, exporter and the optional archive and
// notifier. The returned cleanup releases the archive.
func (a *app) buildUseCase(cfg config.Config) (*usecases.DinosaurUseCase, func(), error) {
	log := a.logger
	cleanup := func() {}

	loader := integration.NewTableLoader(
		integration.WithDelimiter(cfg.Pipeline.DelimiterRune()),
		integration.WithLogger(log),
	)
	exporter := repository.NewTextExporter(log)

	var opts []usecases.Option
	if cfg.Archive.DBPath != "" {
		repo, err := repository.NewSQLiteRunRepository(cfg.Archive.DBPath, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize run archive: %w", err)
		}
		cleanup = func() {
			if err := repo.Close(); err != nil {
				log.Sugar().Warnf("Failed to close run archive: %v", err)
			}
		}
		opts = append(opts, usecases.WithArchive(repo))
	}

	if tg := cfg.Notify.Telegram; tg.Token != "" {
		notifier, err := api.NewTelegramNotifier(tg.Token, tg.ChatID, tg.APIEndpoint, log)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to initialize Telegram notifier: %w", err)
		}
		opts = append(opts, usecases.WithNotifier(notifier))
	}

	return usecases.NewDinosaurUseCase(loader, exporter, log, opts...), cleanup, nil
}

func printSummary(w io.Writer, p config.Pipeline, res usecases.RunResult) {
	fmt.Fprintf(w, "Merged rows: %d\n", res.Merged)
	fmt.Fprintf(w, "Stance:      %s (%d matched)\n", p.FilterStance, len(res.Ranking))
	fmt.Fprintf(w, "Output:      %s\n", p.OutputPath)
	if res.RunID != 0 {
		fmt.Fprintf(w, "Run ID:      %d\n", res.RunID)
	}
	fmt.Fprintln(w)
	printRanking(w, res.Ranking)
}

func printRanking(w io.Writer, ranking []entities.Dinosaur) {
	for i, d := range ranking {
		name := d.Name().String
		if !d.Name().Valid {
			name = "(unnamed)"
		}
		fmt.Fprintf(w, "%2d. %-24s %s\n", i+1, name, d.Velocity())
	}
}
