package table

import (
	"sort"

	"github.com/abelzeko/dino-velocity/internal/entities"
)

// JoinMode selects which rows survive a merge based on key presence.
type JoinMode int

const (
	JoinInner JoinMode = iota
	JoinLeft
	JoinRight
	JoinOuter
)

var joinModeNames = map[JoinMode]string{
	JoinInner: "inner",
	JoinLeft:  "left",
	JoinRight: "right",
	JoinOuter: "outer",
}

func (m JoinMode) String() string {
	if n, ok := joinModeNames[m]; ok {
		return n
	}
	return "unknown"
}

// ParseJoinMode resolves inner, left, right or outer. Names are matched
// exactly.
func ParseJoinMode(s string) (JoinMode, error) {
	for m, n := range joinModeNames {
		if n == s {
			return m, nil
		}
	}
	return 0, entities.NewOpError("table.parse_join_mode", entities.KindInvalidArgument, "",
		"unsupported join mode %q (expected inner|left|right|outer): %w", s, entities.ErrInvalidArgument)
}

// Suffixes appended to non-key columns present in both tables.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// Merge joins left and right on the key column. Duplicate keys fan out to
// every matching pair. The output holds the key column, then the non-key
// columns of left, then the non-key columns of right; unmatched sides are
// filled with null cells. Outer joins are ordered by key, null keys last.
func Merge(left, right *Table, key string, mode JoinMode) (*Table, error) {
	const op = "table.merge"

	if _, ok := joinModeNames[mode]; !ok {
		return nil, entities.NewOpError(op, entities.KindInvalidArgument, "",
			"unsupported join mode %d: %w", int(mode), entities.ErrInvalidArgument)
	}
	lk, ok := left.ColumnIndex(key)
	if !ok {
		return nil, entities.NewOpError(op, entities.KindMissingColumn, "",
			"join key %q not found in left table: %w", key, entities.ErrMissingColumn)
	}
	rk, ok := right.ColumnIndex(key)
	if !ok {
		return nil, entities.NewOpError(op, entities.KindMissingColumn, "",
			"join key %q not found in right table: %w", key, entities.ErrMissingColumn)
	}

	leftCols := otherColumns(left.Columns, lk)
	rightCols := otherColumns(right.Columns, rk)

	columns := make([]string, 0, 1+len(leftCols)+len(rightCols))
	columns = append(columns, key)
	for _, c := range leftCols {
		name := left.Columns[c]
		if right.HasColumn(name) && name != key {
			name += LeftSuffix
		}
		columns = append(columns, name)
	}
	for _, c := range rightCols {
		name := right.Columns[c]
		if left.HasColumn(name) && name != key {
			name += RightSuffix
		}
		columns = append(columns, name)
	}

	out := New(columns)
	emit := func(k Cell, l, r []Cell) {
		row := make([]Cell, 0, len(columns))
		row = append(row, k)
		for _, c := range leftCols {
			if l == nil {
				row = append(row, Null)
			} else {
				row = append(row, l[c])
			}
		}
		for _, c := range rightCols {
			if r == nil {
				row = append(row, Null)
			} else {
				row = append(row, r[c])
			}
		}
		out.Rows = append(out.Rows, row)
	}

	leftIndex := indexByKey(left, lk)
	rightIndex := indexByKey(right, rk)

	switch mode {
	case JoinInner, JoinLeft:
		for _, l := range left.Rows {
			matches := rightIndex[l[lk]]
			if len(matches) == 0 && mode == JoinLeft {
				emit(l[lk], l, nil)
			}
			for _, j := range matches {
				emit(l[lk], l, right.Rows[j])
			}
		}
	case JoinRight:
		for _, r := range right.Rows {
			matches := leftIndex[r[rk]]
			if len(matches) == 0 {
				emit(r[rk], nil, r)
			}
			for _, i := range matches {
				emit(r[rk], left.Rows[i], r)
			}
		}
	case JoinOuter:
		for _, k := range unionKeys(left, lk, right, rk) {
			ls, rs := leftIndex[k], rightIndex[k]
			switch {
			case len(ls) > 0 && len(rs) > 0:
				for _, i := range ls {
					for _, j := range rs {
						emit(k, left.Rows[i], right.Rows[j])
					}
				}
			case len(ls) > 0:
				for _, i := range ls {
					emit(k, left.Rows[i], nil)
				}
			default:
				for _, j := range rs {
					emit(k, nil, right.Rows[j])
				}
			}
		}
	}

	return out, nil
}

func otherColumns(columns []string, key int) []int {
	out := make([]int, 0, len(columns))
	for i := range columns {
		if i != key {
			out = append(out, i)
		}
	}
	return out
}

func indexByKey(t *Table, key int) map[Cell][]int {
	idx := make(map[Cell][]int, len(t.Rows))
	for i, row := range t.Rows {
		idx[row[key]] = append(idx[row[key]], i)
	}
	return idx
}

// unionKeys returns the distinct keys of both tables sorted by value, null last.
func unionKeys(left *Table, lk int, right *Table, rk int) []Cell {
	seen := make(map[Cell]struct{})
	var keys []Cell
	add := func(rows [][]Cell, k int) {
		for _, row := range rows {
			if _, ok := seen[row[k]]; ok {
				continue
			}
			seen[row[k]] = struct{}{}
			keys = append(keys, row[k])
		}
	}
	add(left.Rows, lk)
	add(right.Rows, rk)

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Value < b.Value
	})
	return keys
}
