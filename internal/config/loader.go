package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abelzeko/dino-velocity/internal/entities"
)

// YAMLConfig is the on-disk shape of the configuration file. Absent keys
// keep their defaults.
type YAMLConfig struct {
	Pipeline YAMLPipeline `yaml:"pipeline"`
	Archive  struct {
		DBPath *string `yaml:"db_path"`
	} `yaml:"archive"`
	Notify struct {
		Telegram struct {
			Token       *string `yaml:"token"`
			ChatID      *int64  `yaml:"chat_id"`
			APIEndpoint *string `yaml:"api_endpoint"`
		} `yaml:"telegram"`
	} `yaml:"notify"`
	Schedule struct {
		Cron *string `yaml:"cron"`
	} `yaml:"schedule"`
}

// YAMLPipeline is the pipeline section of the config file. Unset keys keep
// their defaults.
type YAMLPipeline struct {
	File1        *string `yaml:"file1"`
	File2        *string `yaml:"file2"`
	JoinKey      *string `yaml:"join_key"`
	JoinMode     *string `yaml:"join_mode"`
	FilterStance *string `yaml:"filter_stance"`
	OutputPath   *string `yaml:"output_path"`
	ExportField  *string `yaml:"export_field"`
	Delimiter    *string `yaml:"delimiter"`
}

// Load reads a YAML file and overlays it on Default. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &entities.OpError{
			Op:   "config.load",
			Kind: entities.KindFileAccess,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return Config{}, &entities.OpError{
			Op:   "config.load",
			Kind: entities.KindInvalidArgument,
			Path: path,
			Err:  err,
		}
	}

	Apply(&cfg, dto)
	return cfg, nil
}

// Apply copies every key set in dto onto cfg.
func Apply(cfg *Config, dto YAMLConfig) {
	p := &cfg.Pipeline
	set(&p.File1, dto.Pipeline.File1)
	set(&p.File2, dto.Pipeline.File2)
	set(&p.JoinKey, dto.Pipeline.JoinKey)
	set(&p.JoinMode, dto.Pipeline.JoinMode)
	set(&p.FilterStance, dto.Pipeline.FilterStance)
	set(&p.OutputPath, dto.Pipeline.OutputPath)
	set(&p.ExportField, dto.Pipeline.ExportField)
	set(&p.Delimiter, dto.Pipeline.Delimiter)

	set(&cfg.Archive.DBPath, dto.Archive.DBPath)

	tg := &cfg.Notify.Telegram
	set(&tg.Token, dto.Notify.Telegram.Token)
	set(&tg.ChatID, dto.Notify.Telegram.ChatID)
	set(&tg.APIEndpoint, dto.Notify.Telegram.APIEndpoint)

	set(&cfg.Schedule.Cron, dto.Schedule.Cron)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
