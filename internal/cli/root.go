// Package cli wires configuration, logging and the use cases into the
// dinorank command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abelzeko/dino-velocity/internal/config"
	"github.com/abelzeko/dino-velocity/internal/logging"
)

// Execute runs the dinorank command line and exits non-zero on failure.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by the commands of one invocation.
type app struct {
	logger     *zap.Logger
	ownLogger  bool
	configPath string
	verbose    bool

	pipeline config.Pipeline
	dbPath   string
	cronSpec string
}

// NewRootCmd builds the dinorank command tree with a logger configured from
// --verbose.
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil)
}

// newRootCmd builds the command tree; a non-nil logger replaces the one
// normally built from --verbose.
func newRootCmd(logger *zap.Logger) *cobra.Command {
	a := &app{logger: logger}

	cmd := &cobra.Command{
		Use:   "dinorank",
		Short: "Rank dinosaurs by estimated velocity",
		Long: `dinorank merges two dinosaur datasets on a key column, estimates each
dinosaur's velocity from its leg and stride length, keeps those with the
requested stance and writes their names, fastest first, to a text file.

Run without a subcommand to execute the pipeline once.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.logger != nil {
				return nil
			}
			l, err := logging.New(a.verbose)
			if err != nil {
				return err
			}
			a.logger = l
			a.ownLogger = true
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.ownLogger && a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runPipeline,
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (optional)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	a.bindPipelineFlags(cmd)

	cmd.AddCommand(a.runCmd())
	cmd.AddCommand(a.scheduleCmd())
	cmd.AddCommand(a.showCmd())
	return cmd
}

func (a *app) bindPipelineFlags(cmd *cobra.Command) {
	d := config.Default()
	f := cmd.PersistentFlags()
	f.StringVar(&a.pipeline.File1, "file1", d.Pipeline.File1, "first dataset (CSV or HTML table)")
	f.StringVar(&a.pipeline.File2, "file2", d.Pipeline.File2, "second dataset (CSV or HTML table)")
	f.StringVar(&a.pipeline.JoinKey, "key", d.Pipeline.JoinKey, "column to join the datasets on")
	f.StringVar(&a.pipeline.JoinMode, "how", d.Pipeline.JoinMode, "join mode: inner|left|right|outer")
	f.StringVar(&a.pipeline.FilterStance, "stance", d.Pipeline.FilterStance, "stance to keep")
	f.StringVarP(&a.pipeline.OutputPath, "output", "o", d.Pipeline.OutputPath, "output text file")
	f.StringVar(&a.pipeline.ExportField, "field", d.Pipeline.ExportField, "text field to export: name|diet|stance")
	f.StringVar(&a.pipeline.Delimiter, "delimiter", d.Pipeline.Delimiter, "CSV field delimiter")
	f.StringVar(&a.dbPath, "db", d.Archive.DBPath, "SQLite run archive (optional)")
}

// resolveConfig overlays the config file on the defaults, then explicitly
// set flags on the result.
func (a *app) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("file1", &cfg.Pipeline.File1, a.pipeline.File1)
	override("file2", &cfg.Pipeline.File2, a.pipeline.File2)
	override("key", &cfg.Pipeline.JoinKey, a.pipeline.JoinKey)
	override("how", &cfg.Pipeline.JoinMode, a.pipeline.JoinMode)
	override("stance", &cfg.Pipeline.FilterStance, a.pipeline.FilterStance)
	override("output", &cfg.Pipeline.OutputPath, a.pipeline.OutputPath)
	override("field", &cfg.Pipeline.ExportField, a.pipeline.ExportField)
	override("delimiter", &cfg.Pipeline.Delimiter, a.pipeline.Delimiter)
	override("db", &cfg.Archive.DBPath, a.dbPath)
	override("cron", &cfg.Schedule.Cron, a.cronSpec)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
