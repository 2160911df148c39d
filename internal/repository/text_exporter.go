package repository

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abelzeko/dino-velocity/internal/entities"
)

// Exporter writes one attribute of each dinosaur to a destination
type Exporter interface {
	ExportAttribute(dinosaurs []entities.Dinosaur, field entities.Field, path string) error
}

// TextExporter writes one value per line to a plain text file
type TextExporter struct {
	log *zap.SugaredLogger
}

// NewTextExporter creates a new text file exporter
func NewTextExporter(log *zap.Logger) *TextExporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &TextExporter{log: log.Sugar()}
}

// ExportAttribute writes the field of every dinosaur, one per line and in
// order, truncating the file at path. Only text fields can be exported and
// every value must be present; both are checked before the file is opened.
// A failed write removes the partial file.
func (e *TextExporter) ExportAttribute(dinosaurs []entities.Dinosaur, field entities.Field, path string) (err error) {
	const op = "repository.export_attribute"

	if !field.IsText() {
		if _, perr := entities.ParseField(string(field)); perr != nil {
			return perr
		}
		return entities.NewOpError(op, entities.KindTypeMismatch, path,
			"field %s is not string-valued: %w", field, entities.ErrTypeMismatch)
	}

	lines := make([]string, 0, len(dinosaurs))
	for i, d := range dinosaurs {
		v, verr := d.TextValue(field)
		if verr != nil {
			return verr
		}
		if !v.Valid {
			return entities.NewOpError(op, entities.KindTypeMismatch, path,
				"entity %d has no %s value: %w", i, field, entities.ErrTypeMismatch)
		}
		lines = append(lines, v.String)
	}

	e.log.Infof("Writing %d %s values to %s", len(lines), field, path)
	f, err := os.Create(path)
	if err != nil {
		return &entities.OpError{Op: op, Kind: entities.KindFileAccess, Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &entities.OpError{Op: op, Kind: entities.KindFileAccess, Path: path, Err: cerr}
		}
		if err != nil {
			if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				e.log.Warnf("Failed to remove partial export %s: %v", path, rerr)
			}
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return &entities.OpError{Op: op, Kind: entities.KindFileAccess, Path: path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &entities.OpError{Op: op, Kind: entities.KindFileAccess, Path: path, Err: err}
	}

	return nil
}
