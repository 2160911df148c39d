// Package repository provides data access implementations
package repository

import (
	"database/sql"
	"fmt"
	"errors"
	"math"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/abelzeko/dino-velocity/internal/entities"
)

// RunRepository defines the interface for run archive persistence operations
type RunRepository interface {
	SaveRun(run entities.RunRecord) (int64, error)
	GetRun(runID int64) (entities.RunRecord, error)
	GetLastRun() (entities.RunRecord, error)
	Close() error
}

// SQLiteRunRepository implements RunRepository using SQLite
type SQLiteRunRepository struct {
	db     *sql.DB
	DBPath string
	log    *zap.SugaredLogger
}

// NewSQLiteRunRepository creates and initializes a new SQLite run archive
func NewSQLiteRunRepository(dbPath string, log *zap.Logger) (*SQLiteRunRepository, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sugar := log.Sugar()

	if dbPath == "" {
		return nil, entities.NewOpError("repository.open_archive", entities.KindInvalidArgument, "",
			"empty database path: %w", entities.ErrInvalidArgument)
	}

	sugar.Infof("Opening run archive at %s", dbPath)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		join_mode TEXT NOT NULL,
		stance TEXT NOT NULL,
		output_path TEXT NOT NULL,
		count INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS ranked_dinosaurs (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		rank INTEGER NOT NULL,
		name TEXT,
		diet TEXT,
		stance TEXT,
		leg_length REAL,
		stride_length REAL,
		velocity REAL,
		PRIMARY KEY(run_id, rank)
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteRunRepository{
		db:     db,
		DBPath: dbPath,
		log:    sugar,
	}, nil
}

// Close closes the database connection
func (r *SQLiteRunRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveRun stores a run and its ranking in one transaction and returns the run ID
func (r *SQLiteRunRepository) SaveRun(run entities.RunRecord) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	res, err := tx.Exec(
		`INSERT INTO runs(started_at, join_mode, stance, output_path, count) VALUES(?, ?, ?, ?, ?)`,
		run.StartedAt.UTC(), run.JoinMode, run.Stance, run.OutputPath, len(run.Ranking),
	)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO ranked_dinosaurs(run_id, rank, name, diet, stance, leg_length, stride_length, velocity)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, d := range run.Ranking {
		_, err := stmt.Exec(
			runID,
			i+1,
			nullString(d.Name()),
			nullString(d.Diet()),
			nullString(d.Stance()),
			nullFloat(d.LegLength()),
			nullFloat(d.StrideLength()),
			nullFloat(d.Velocity()),
		)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert rank %d of run %d: %w", i+1, runID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Infof("Archived run %d with %d ranked dinosaurs", runID, len(run.Ranking))
	return runID, nil
}

// GetRun retrieves an archived run with its ranking, fastest first
func (r *SQLiteRunRepository) GetRun(runID int64) (entities.RunRecord, error) {
	run := entities.RunRecord{ID: runID}
	err := r.db.QueryRow(`
		SELECT started_at, join_mode, stance, output_path
		FROM runs
		WHERE id = ?`, runID).Scan(&run.StartedAt, &run.JoinMode, &run.Stance, &run.OutputPath)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.RunRecord{}, entities.NewOpError("repository.get_run", entities.KindInvalidArgument, "",
			"no archived run %d: %w", runID, entities.ErrInvalidArgument)
	}
	if err != nil {
		return entities.RunRecord{}, fmt.Errorf("failed to query run %d: %w", runID, err)
	}

	rows, err := r.db.Query(`
		SELECT name, leg_length, diet, stride_length, stance
		FROM ranked_dinosaurs
		WHERE run_id = ?
		ORDER BY rank`, runID)
	if err != nil {
		return entities.RunRecord{}, fmt.Errorf("failed to query ranking of run %d: %w", runID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name, diet, stance sql.NullString
			legLength, stride  sql.NullFloat64
		)
		if err := rows.Scan(&name, &legLength, &diet, &stride, &stance); err != nil {
			return entities.RunRecord{}, fmt.Errorf("failed to scan row: %w", err)
		}
		run.Ranking = append(run.Ranking, entities.NewDinosaur(
			entities.NullString{String: name.String, Valid: name.Valid},
			entities.NullFloat{Float64: legLength.Float64, Valid: legLength.Valid},
			entities.NullString{String: diet.String, Valid: diet.Valid},
			entities.NullFloat{Float64: stride.Float64, Valid: stride.Valid},
			entities.NullString{String: stance.String, Valid: stance.Valid},
		))
	}

	if err := rows.Err(); err != nil {
		return entities.RunRecord{}, fmt.Errorf("error during row iteration: %w", err)
	}

	return run, nil
}

// GetLastRun returns the most recently started run. The zero record (ID 0)
// means the archive is empty.
func (r *SQLiteRunRepository) GetLastRun() (entities.RunRecord, error) {
	var id int64
	err := r.db.QueryRow("SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT 1").Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.RunRecord{}, nil
		}
		return entities.RunRecord{}, fmt.Errorf("failed to get last run: %w", err)
	}
	return r.GetRun(id)
}

func nullString(s entities.NullString) sql.NullString {
	return sql.NullString{String: s.String, Valid: s.Valid}
}

// nullFloat stores NaN as NULL; SQLite has no NaN.
func nullFloat(f entities.NullFloat) sql.NullFloat64 {
	if !f.Valid || math.IsNaN(f.Float64) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f.Float64, Valid: true}
}
