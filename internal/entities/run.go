package entities

import "time"

// RunRecord represents one completed pipeline run and its ranking
type RunRecord struct {
	ID         int64
	StartedAt  time.Time  // When the run started
	JoinMode   string     // Join mode used to merge the datasets
	Stance     string     // Stance the ranking was filtered on
	OutputPath string     // Where the exported field was written
	Ranking    []Dinosaur // Ranked dinosaurs, fastest first
}
