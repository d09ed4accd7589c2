// Package database provides database operations for the helper match engine.
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"helper-match-engine/internal/models"
)

// HelperRepository handles helper profile database operations.
type HelperRepository struct {
	db *DB
}

// NewHelperRepository creates a new helper repository.
func NewHelperRepository(db *DB) *HelperRepository {
	return &HelperRepository{db: db}
}

const helperColumns = `id, name, date_of_birth, nationality, religion, birth_city,
	skills_text, has_been_helper_before, experience_years,
	previous_jobs, specializations, education_level, marital_status,
	number_of_children, languages, profile_completeness,
	created_at, updated_at, is_active, is_verified`

// Create inserts a new helper profile and returns its id.
func (r *HelperRepository) Create(ctx context.Context, helper *models.HelperCreate) (string, error) {
	previousJobs, err := json.Marshal(helper.PreviousJobs)
	if err != nil {
		return "", fmt.Errorf("failed to encode previous jobs: %w", err)
	}
	specializations, err := json.Marshal(helper.Specializations)
	if err != nil {
		return "", fmt.Errorf("failed to encode specializations: %w", err)
	}
	languages, err := json.Marshal(helper.Languages)
	if err != nil {
		return "", fmt.Errorf("failed to encode languages: %w", err)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO helpers (
			id, name, date_of_birth, nationality, religion, birth_city,
			skills_text, has_been_helper_before, experience_years,
			previous_jobs, specializations, education_level, marital_status,
			number_of_children, languages, profile_completeness,
			created_at, updated_at, is_active, is_verified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17, true, $18)
		RETURNING id`

	err = r.db.QueryRowContext(ctx, query,
		id,
		helper.Name,
		helper.DateOfBirth,
		helper.Nationality,
		helper.Religion,
		helper.BirthCity,
		helper.SkillsText,
		helper.HasBeenHelperBefore,
		helper.ExperienceYears,
		previousJobs,
		specializations,
		helper.EducationLevel,
		helper.MaritalStatus,
		helper.NumberOfChildren,
		languages,
		helper.ProfileCompleteness,
		time.Now().UTC(),
		helper.IsVerified,
	).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create helper: %w", err)
	}

	return id, nil
}

// GetByID retrieves a helper profile by id. Returns (nil, nil) when no row
// exists.
func (r *HelperRepository) GetByID(ctx context.Context, id string) (*models.HelperRecord, error) {
	query := `SELECT ` + helperColumns + ` FROM helpers WHERE id = $1 AND is_active = true`

	helper, err := scanHelper(r.db.QueryRowContext(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get helper: %w", err)
	}

	return helper, nil
}

// GetAllActive retrieves all active helper profiles.
func (r *HelperRepository) GetAllActive(ctx context.Context) ([]*models.HelperRecord, error) {
	query := `SELECT ` + helperColumns + ` FROM helpers WHERE is_active = true ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query helpers: %w", err)
	}
	defer rows.Close()

	var helpers []*models.HelperRecord
	for rows.Next() {
		helper, err := scanHelper(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan helper: %w", err)
		}
		helpers = append(helpers, helper)
	}

	return helpers, nil
}

// Deactivate marks a helper profile as inactive.
func (r *HelperRepository) Deactivate(ctx context.Context, id string) error {
	affected, err := r.db.ExecContext(ctx,
		"UPDATE helpers SET is_active = false, updated_at = $2 WHERE id = $1",
		id, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate helper: %w", err)
	}
	if affected == 0 {
		return models.ErrHelperNotFound
	}
	return nil
}

// CountActive returns the number of active helper profiles.
func (r *HelperRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM helpers WHERE is_active = true").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count helpers: %w", err)
	}
	return count, nil
}

// scanHelper scans one helper row, decoding the JSONB list columns.
func scanHelper(row pgx.Row) (*models.HelperRecord, error) {
	var helper models.HelperRecord
	var previousJobs, specializations, languages []byte

	err := row.Scan(
		&helper.ID,
		&helper.Name,
		&helper.DateOfBirth,
		&helper.Nationality,
		&helper.Religion,
		&helper.BirthCity,
		&helper.SkillsText,
		&helper.HasBeenHelperBefore,
		&helper.ExperienceYears,
		&previousJobs,
		&specializations,
		&helper.EducationLevel,
		&helper.MaritalStatus,
		&helper.NumberOfChildren,
		&languages,
		&helper.ProfileCompleteness,
		&helper.CreatedAt,
		&helper.UpdatedAt,
		&helper.IsActive,
		&helper.IsVerified,
	)
	if err != nil {
		return nil, err
	}

	if len(previousJobs) > 0 {
		if err := json.Unmarshal(previousJobs, &helper.PreviousJobs); err != nil {
			return nil, fmt.Errorf("failed to decode previous jobs: %w", err)
		}
	}
	if len(specializations) > 0 {
		if err := json.Unmarshal(specializations, &helper.Specializations); err != nil {
			return nil, fmt.Errorf("failed to decode specializations: %w", err)
		}
	}
	if len(languages) > 0 {
		if err := json.Unmarshal(languages, &helper.Languages); err != nil {
			return nil, fmt.Errorf("failed to decode languages: %w", err)
		}
	}

	return &helper, nil
}
