// Package models defines the data structures for the helper match engine.
package models

import (
	"time"
)

// Match pairs a helper with its similarity score against a job and the
// human-readable reasons shown in the UI.
type Match struct {
	Helper       HelperSummary `json:"helper"`
	Similarity   float64       `json:"similarity"`
	MatchReasons []string      `json:"match_reasons"`
}

// MatchPage is one page of ranked matches for a job.
type MatchPage struct {
	Matches      []Match `json:"matches"`
	TotalMatches int     `json:"total_matches"`
	HasMore      bool    `json:"has_more"`
}

// MatchRow is a persisted match as read back from the database.
type MatchRow struct {
	ID           int64     `json:"id" db:"id"`
	RunID        string    `json:"run_id" db:"run_id"`
	JobID        string    `json:"job_id" db:"job_id"`
	HelperID     string    `json:"helper_id" db:"helper_id"`
	Similarity   float64   `json:"similarity" db:"similarity"`
	MatchReasons []string  `json:"match_reasons,omitempty" db:"match_reasons"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// MatchRunSummary reports the outcome of a persisted matching run.
type MatchRunSummary struct {
	RunID             string        `json:"run_id"`
	JobID             string        `json:"job_id"`
	TotalHelpers      int           `json:"total_helpers"`
	ScoredHelpers     int           `json:"scored_helpers"`
	SkippedHelpers    int           `json:"skipped_helpers"`
	PersistedMatches  int           `json:"persisted_matches"`
	UsedFallbackJob   bool          `json:"used_fallback_job"`
	ProcessingTime    time.Duration `json:"-"`
	ProcessingTimeMs  int64         `json:"processing_ms"`
	TopSimilarity     float64       `json:"top_similarity"`
	AverageSimilarity float64       `json:"average_similarity"`
}
