// Package database provides database operations for the helper match engine.
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"helper-match-engine/internal/models"
)

// MatchRepository persists computed matches. It satisfies the matcher's
// match sink.
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a new match repository.
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// BulkInsert upserts all matches of one run inside a transaction and
// returns the number of rows written.
func (r *MatchRepository) BulkInsert(ctx context.Context, runID, jobID string, matches []models.Match) (int, error) {
	if len(matches) == 0 {
		return 0, nil
	}

	inserted := 0
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		now := time.Now().UTC()

		for _, match := range matches {
			reasons, err := json.Marshal(match.MatchReasons)
			if err != nil {
				return fmt.Errorf("failed to encode match reasons: %w", err)
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO matches (
					run_id, job_id, helper_id, similarity, match_reasons, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $6)
				ON CONFLICT (job_id, helper_id) DO UPDATE SET
					run_id = EXCLUDED.run_id,
					similarity = EXCLUDED.similarity,
					match_reasons = EXCLUDED.match_reasons,
					updated_at = EXCLUDED.updated_at`,
				runID,
				jobID,
				match.Helper.ID,
				match.Similarity,
				reasons,
				now,
			)
			if err != nil {
				return fmt.Errorf("failed to insert match for helper %s: %w", match.Helper.ID, err)
			}
			inserted++
		}
		return nil
	})

	if err != nil {
		return inserted, fmt.Errorf("bulk insert failed: %w", err)
	}

	return inserted, nil
}

// GetByJobID retrieves the persisted matches for a job, best first.
func (r *MatchRepository) GetByJobID(ctx context.Context, jobID string, limit int) ([]*models.MatchRow, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, run_id, job_id, helper_id, similarity, match_reasons, created_at, updated_at
		FROM matches
		WHERE job_id = $1
		ORDER BY similarity DESC, id ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, jobID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.MatchRow
	for rows.Next() {
		var match models.MatchRow
		var reasons []byte

		err := rows.Scan(
			&match.ID,
			&match.RunID,
			&match.JobID,
			&match.HelperID,
			&match.Similarity,
			&reasons,
			&match.CreatedAt,
			&match.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}

		if len(reasons) > 0 {
			if err := json.Unmarshal(reasons, &match.MatchReasons); err != nil {
				return nil, fmt.Errorf("failed to decode match reasons: %w", err)
			}
		}

		matches = append(matches, &match)
	}

	return matches, nil
}

// DeleteByJobID removes persisted matches for a job, returning the count.
func (r *MatchRepository) DeleteByJobID(ctx context.Context, jobID string) (int64, error) {
	affected, err := r.db.ExecContext(ctx, "DELETE FROM matches WHERE job_id = $1", jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches: %w", err)
	}
	return affected, nil
}
