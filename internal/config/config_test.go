package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelzeko/dino-velocity/internal/entities"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.NoError(t, cfg.ValidateSchedule())
	assert.Equal(t, "outer", cfg.Pipeline.JoinMode)
	assert.Equal(t, "bipedal", cfg.Pipeline.FilterStance)
	assert.Equal(t, ',', cfg.Pipeline.DelimiterRune())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data/dataset1.csv", cfg.Pipeline.File1)
	assert.Equal(t, "data/dataset2.html", cfg.Pipeline.File2)
	assert.Equal(t, "inner", cfg.Pipeline.JoinMode)
	assert.Equal(t, "quadrupedal", cfg.Pipeline.FilterStance)
	assert.Equal(t, "NAME", cfg.Pipeline.JoinKey, "unset keys keep defaults")
	assert.Equal(t, "output.txt", cfg.Pipeline.OutputPath)
	assert.Equal(t, "data/runs.db", cfg.Archive.DBPath)
	assert.Equal(t, int64(42), cfg.Notify.Telegram.ChatID)
	assert.Equal(t, "*/15 * * * *", cfg.Schedule.Cron)
	require.NoError(t, cfg.Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "absent.yaml"))
	require.Error(t, err)
	assert.True(t, entities.IsKind(err, entities.KindFileAccess))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join("testdata", "invalid.yaml")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, entities.IsKind(err, entities.KindInvalidArgument))
	assert.Contains(t, err.Error(), path)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty key", func(c *Config) { c.Pipeline.JoinKey = " " }, "join_key"},
		{"bad join mode", func(c *Config) { c.Pipeline.JoinMode = "cross" }, "join mode"},
		{"empty output", func(c *Config) { c.Pipeline.OutputPath = "" }, "output_path"},
		{"unknown field", func(c *Config) { c.Pipeline.ExportField = "weight" }, "unknown field"},
		{"long delimiter", func(c *Config) { c.Pipeline.Delimiter = ";;" }, "delimiter"},
		{"quote delimiter", func(c *Config) { c.Pipeline.Delimiter = `"` }, "delimiter"},
		{"token without chat", func(c *Config) { c.Notify.Telegram.Token = "t" }, "chat_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, entities.IsKind(err, entities.KindInvalidArgument))
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestValidateSchedule(t *testing.T) {
	cfg := Default()
	cfg.Schedule.Cron = "every now and then"
	err := cfg.ValidateSchedule()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule.cron")

	cfg.Schedule.Cron = "@every 1h"
	assert.NoError(t, cfg.ValidateSchedule())
}
