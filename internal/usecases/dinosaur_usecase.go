// Package usecases contains the application's business logic
package usecases

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abelzeko/dino-velocity/internal/config"
	"github.com/abelzeko/dino-velocity/internal/entities"
	"github.com/abelzeko/dino-velocity/internal/repository"
	"github.com/abelzeko/dino-velocity/internal/table"
)

// TableLoader reads a dataset file into a table
type TableLoader interface {
	LoadTable(path string) (*table.Table, error)
}

// Notifier publishes a finished ranking
type Notifier interface {
	NotifyRanking(ctx context.Context, stance string, ranking []entities.Dinosaur) error
}

// RunResult summarizes a completed pipeline run
type RunResult struct {
	RunID     int64 // Archive ID, zero when archiving is disabled
	StartedAt time.Time
	Merged    int // Rows after the merge
	Ranking   []entities.Dinosaur
}

// DinosaurUseCase runs the load → merge → build → rank → export pipeline
type DinosaurUseCase struct {
	loader   TableLoader
	exporter repository.Exporter
	archive  repository.RunRepository
	notifier Notifier
	log      *zap.SugaredLogger
	now      func() time.Time
}

// Option customizes a DinosaurUseCase.
type Option func(*DinosaurUseCase)

// WithArchive stores every successful run in repo.
func WithArchive(repo repository.RunRepository) Option {
	return func(uc *DinosaurUseCase) {
		uc.archive = repo
	}
}

// WithNotifier publishes every successful ranking through n.
func WithNotifier(n Notifier) Option {
	return func(uc *DinosaurUseCase) {
		uc.notifier = n
	}
}

// WithClock overrides the time source used to stamp runs.
func WithClock(now func() time.Time) Option {
	return func(uc *DinosaurUseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// NewDinosaurUseCase creates a new dinosaur ranking use case
func NewDinosaurUseCase(loader TableLoader, exporter repository.Exporter, log *zap.Logger, opts ...Option) *DinosaurUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	uc := &DinosaurUseCase{
		loader:   loader,
		exporter: exporter,
		log:      log.Sugar(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run executes one pipeline. Any failure aborts the run and is returned as is.
func (uc *DinosaurUseCase) Run(ctx context.Context, p config.Pipeline) (RunResult, error) {
	result := RunResult{StartedAt: uc.now()}
	uc.log.Infof("Starting dinosaur ranking run (%s join of %s and %s on %s)", p.JoinMode, p.File1, p.File2, p.JoinKey)

	mode, err := table.ParseJoinMode(p.JoinMode)
	if err != nil {
		return result, err
	}
	field, err := entities.ParseField(p.ExportField)
	if err != nil {
		return result, err
	}

	left, err := uc.loader.LoadTable(p.File1)
	if err != nil {
		return result, err
	}
	right, err := uc.loader.LoadTable(p.File2)
	if err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	merged, err := table.Merge(left, right, p.JoinKey, mode)
	if err != nil {
		return result, err
	}
	result.Merged = merged.Len()
	uc.log.Infof("Merged %d + %d rows into %d rows", left.Len(), right.Len(), merged.Len())

	dinosaurs, err := BuildDinosaurs(merged)
	if err != nil {
		return result, err
	}

	result.Ranking = FilterAndRank(dinosaurs, p.FilterStance)
	uc.log.Infof("Ranked %d of %d dinosaurs with stance %q", len(result.Ranking), len(dinosaurs), p.FilterStance)

	if err := uc.exporter.ExportAttribute(result.Ranking, field, p.OutputPath); err != nil {
		return result, err
	}

	if uc.archive != nil {
		id, err := uc.archive.SaveRun(entities.RunRecord{
			StartedAt:  result.StartedAt,
			JoinMode:   mode.String(),
			Stance:     p.FilterStance,
			OutputPath: p.OutputPath,
			Ranking:    result.Ranking,
		})
		if err != nil {
			return result, fmt.Errorf("failed to archive run: %w", err)
		}
		result.RunID = id
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyRanking(ctx, p.FilterStance, result.Ranking); err != nil {
			return result, fmt.Errorf("failed to notify ranking: %w", err)
		}
	}

	uc.log.Infof("Run finished: wrote %d lines to %s", len(result.Ranking), p.OutputPath)
	return result, nil
}
