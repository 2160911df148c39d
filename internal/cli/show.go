package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abelzeko/dino-velocity/internal/entities"
	"github.com/abelzeko/dino-velocity/internal/repository"
)

func (a *app) showCmd() *cobra.Command {
	var runID int64

	c := &cobra.Command{
		Use:   "show",
		Short: "Print an archived run, the most recent one by default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.resolveConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Archive.DBPath == "" {
				return entities.NewOpError("cli.show", entities.KindInvalidArgument, "",
					"no run archive configured, set --db or archive.db_path: %w", entities.ErrInvalidArgument)
			}

			repo, err := repository.NewSQLiteRunRepository(cfg.Archive.DBPath, a.logger)
			if err != nil {
				return err
			}
			defer repo.Close()

			var run entities.RunRecord
			if runID > 0 {
				run, err = repo.GetRun(runID)
			} else {
				run, err = repo.GetLastRun()
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if run.ID == 0 {
				fmt.Fprintln(w, "No archived runs.")
				return nil
			}
			fmt.Fprintf(w, "Run ID:      %d\n", run.ID)
			fmt.Fprintf(w, "Started:     %s\n", run.StartedAt.Format(time.RFC3339))
			fmt.Fprintf(w, "Join mode:   %s\n", run.JoinMode)
			fmt.Fprintf(w, "Stance:      %s (%d matched)\n", run.Stance, len(run.Ranking))
			fmt.Fprintf(w, "Output:      %s\n", run.OutputPath)
			fmt.Fprintln(w)
			printRanking(w, run.Ranking)
			return nil
		},
	}

	c.Flags().Int64Var(&runID, "run", 0, "archived run ID (default: most recent)")
	return c
}
