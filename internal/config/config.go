// Package config holds the run parameters of the dino-velocity pipeline and
// loads them from an optional YAML file.
package config

import (
	"strings"
	"unicode/utf8"

	"github.com/robfig/cron/v3"

	"github.com/abelzeko/dino-velocity/internal/entities"
	"github.com/abelzeko/dino-velocity/internal/table"
)

// Config is the full application configuration.
type Config struct {
	Pipeline Pipeline
	Archive  ArchiveConfig
	Notify   NotifyConfig
	Schedule ScheduleConfig
}

// Pipeline is one load → merge → rank → export run.
type Pipeline struct {
	File1        string
	File2        string
	JoinKey      string
	JoinMode     string
	FilterStance string
	OutputPath   string
	ExportField  string
	Delimiter    string
}

// ArchiveConfig enables the SQLite run archive when DBPath is set.
type ArchiveConfig struct {
	DBPath string
}

// NotifyConfig holds the ranking notification channels.
type NotifyConfig struct {
	Telegram TelegramConfig
}

// TelegramConfig enables ranking notifications when Token is set.
type TelegramConfig struct {
	Token       string
	ChatID      int64
	APIEndpoint string // Optional: overrides the Bot API endpoint format
}

// ScheduleConfig holds the cron expression used by the schedule command.
type ScheduleConfig struct {
	Cron string
}

// Default mirrors the classic run: outer-join dataset1.csv and dataset2.csv
// on NAME and write the fastest bipedal dinosaurs to output.txt.
func Default() Config {
	return Config{
		Pipeline: Pipeline{
			File1:        "dataset1.csv",
			File2:        "dataset2.csv",
			JoinKey:      "NAME",
			JoinMode:     "outer",
			FilterStance: "bipedal",
			OutputPath:   "output.txt",
			ExportField:  string(entities.FieldName),
			Delimiter:    ",",
		},
		Schedule: ScheduleConfig{
			Cron: "0 * * * *",
		},
	}
}

// DelimiterRune returns the single delimiter character.
func (p Pipeline) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(p.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// Validate checks the pipeline parameters without touching the filesystem.
func (p Pipeline) Validate() error {
	if strings.TrimSpace(p.File1) == "" {
		return invalidField("file1", "input file is required")
	}
	if strings.TrimSpace(p.File2) == "" {
		return invalidField("file2", "input file is required")
	}
	if strings.TrimSpace(p.JoinKey) == "" {
		return invalidField("join_key", "join key is required")
	}
	if _, err := table.ParseJoinMode(p.JoinMode); err != nil {
		return err
	}
	if strings.TrimSpace(p.OutputPath) == "" {
		return invalidField("output_path", "output path is required")
	}
	if _, err := entities.ParseField(p.ExportField); err != nil {
		return err
	}
	if utf8.RuneCountInString(p.Delimiter) != 1 {
		return invalidField("delimiter", "delimiter must be a single character")
	}
	switch p.DelimiterRune() {
	case '"', '\r', '\n', utf8.RuneError:
		return invalidField("delimiter", "delimiter is not usable in delimited text")
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Pipeline.Validate(); err != nil {
		return err
	}
	if c.Notify.Telegram.Token != "" && c.Notify.Telegram.ChatID == 0 {
		return invalidField("notify.telegram.chat_id", "chat id is required when a token is set")
	}
	return nil
}

// ValidateSchedule checks the cron expression used by the schedule command.
func (c Config) ValidateSchedule() error {
	if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
		return invalidField("schedule.cron", err.Error())
	}
	return nil
}

func invalidField(field, msg string) error {
	return entities.NewOpError("config.validate", entities.KindInvalidArgument, "",
		"field %s: %s: %w", field, msg, entities.ErrInvalidArgument)
}
