package usecases

import (
	"sort"
	"strconv"

	"github.com/abelzeko/dino-velocity/internal/entities"
	"github.com/abelzeko/dino-velocity/internal/table"
)

// Column names read from the merged table.
const (
	ColumnName         = "NAME"
	ColumnLegLength    = "LEG_LENGTH"
	ColumnDiet         = "DIET"
	ColumnStrideLength = "STRIDE_LENGTH"
	ColumnStance       = "STANCE"
)

// RequiredColumns lists the columns every merged table must provide.
var RequiredColumns = []string{ColumnName, ColumnLegLength, ColumnDiet, ColumnStrideLength, ColumnStance}

// BuildDinosaurs creates one dinosaur per table row, in row order. Null
// numeric cells become missing values; non-numeric text is a type mismatch.
func BuildDinosaurs(t *table.Table) ([]entities.Dinosaur, error) {
	const op = "usecases.build_dinosaurs"

	for _, c := range RequiredColumns {
		if !t.HasColumn(c) {
			return nil, entities.NewOpError(op, entities.KindMissingField, "",
				"column %s is missing: %w", c, entities.ErrMissingField)
		}
	}

	dinosaurs := make([]entities.Dinosaur, 0, t.Len())
	for i := range t.Rows {
		name, _ := t.Get(i, ColumnName)
		diet, _ := t.Get(i, ColumnDiet)
		stance, _ := t.Get(i, ColumnStance)

		legLength, err := numberCell(t, i, ColumnLegLength)
		if err != nil {
			return nil, err
		}
		strideLength, err := numberCell(t, i, ColumnStrideLength)
		if err != nil {
			return nil, err
		}

		dinosaurs = append(dinosaurs, entities.NewDinosaur(
			textCell(name),
			legLength,
			textCell(diet),
			strideLength,
			textCell(stance),
		))
	}

	return dinosaurs, nil
}

func textCell(c table.Cell) entities.NullString {
	return entities.NullString{String: c.Value, Valid: c.Valid}
}

func numberCell(t *table.Table, row int, column string) (entities.NullFloat, error) {
	c, _ := t.Get(row, column)
	if !c.Valid {
		return entities.NullFloat{}, nil
	}
	v, err := strconv.ParseFloat(c.Value, 64)
	if err != nil {
		return entities.NullFloat{}, entities.NewOpError("usecases.build_dinosaurs", entities.KindTypeMismatch, "",
			"row %d column %s: %q is not a number: %w", row, column, c.Value, entities.ErrTypeMismatch)
	}
	return entities.Float(v), nil
}

// FilterAndRank keeps the dinosaurs whose stance is exactly stance and orders
// them by velocity, fastest first. Equal velocities keep their input order;
// missing velocities rank last.
func FilterAndRank(dinosaurs []entities.Dinosaur, stance string) []entities.Dinosaur {
	selected := make([]entities.Dinosaur, 0, len(dinosaurs))
	for _, d := range dinosaurs {
		if s := d.Stance(); s.Valid && s.String == stance {
			selected = append(selected, d)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return entities.VelocityRankKey(selected[i].Velocity()) > entities.VelocityRankKey(selected[j].Velocity())
	})
	return selected
}
