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

// JobRepository handles job posting database operations. It satisfies the
// matcher's job source.
type JobRepository struct {
	db *DB
}

// NewJobRepository creates a new job repository.
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, employer_id, title, description, city, country,
	household_size, children_count, pets_count, house_type,
	working_days, rest_days, salary_amount, salary_currency, urgency,
	start_date, religion_preference, nationality_preferences,
	age_min_preference, age_max_preference, created_at, updated_at, is_active`

// Create inserts a new job posting and returns its id.
func (r *JobRepository) Create(ctx context.Context, job *models.JobCreate) (string, error) {
	nationalities, err := json.Marshal(job.NationalityPreferences)
	if err != nil {
		return "", fmt.Errorf("failed to encode nationality preferences: %w", err)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO jobs (
			id, employer_id, title, description, city, country,
			household_size, children_count, pets_count, house_type,
			working_days, rest_days, salary_amount, salary_currency, urgency,
			start_date, religion_preference, nationality_preferences,
			age_min_preference, age_max_preference, created_at, updated_at, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $21, true)
		RETURNING id`

	err = r.db.QueryRowContext(ctx, query,
		id,
		job.EmployerID,
		job.Title,
		job.Description,
		job.City,
		job.Country,
		job.HouseholdSize,
		job.ChildrenCount,
		job.PetsCount,
		job.HouseType,
		job.WorkingDays,
		job.RestDays,
		job.SalaryAmount,
		job.SalaryCurrency,
		job.Urgency,
		job.StartDate,
		job.ReligionPreference,
		nationalities,
		job.AgeMinPreference,
		job.AgeMaxPreference,
		time.Now().UTC(),
	).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create job: %w", err)
	}

	return id, nil
}

// GetByID retrieves a job posting by id. Returns (nil, nil) when no row
// exists.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.JobRecord, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND is_active = true`

	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return job, nil
}

// GetAllActive retrieves all active job postings.
func (r *JobRepository) GetAllActive(ctx context.Context) ([]*models.JobRecord, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE is_active = true ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.JobRecord
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// Deactivate marks a job posting as inactive.
func (r *JobRepository) Deactivate(ctx context.Context, id string) error {
	affected, err := r.db.ExecContext(ctx,
		"UPDATE jobs SET is_active = false, updated_at = $2 WHERE id = $1",
		id, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate job: %w", err)
	}
	if affected == 0 {
		return models.ErrJobNotFound
	}
	return nil
}

// scanJob scans one job row, decoding the JSONB nationality list.
func scanJob(row pgx.Row) (*models.JobRecord, error) {
	var job models.JobRecord
	var nationalities []byte

	err := row.Scan(
		&job.ID,
		&job.EmployerID,
		&job.Title,
		&job.Description,
		&job.City,
		&job.Country,
		&job.HouseholdSize,
		&job.ChildrenCount,
		&job.PetsCount,
		&job.HouseType,
		&job.WorkingDays,
		&job.RestDays,
		&job.SalaryAmount,
		&job.SalaryCurrency,
		&job.Urgency,
		&job.StartDate,
		&job.ReligionPreference,
		&nationalities,
		&job.AgeMinPreference,
		&job.AgeMaxPreference,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if len(nationalities) > 0 {
		if err := json.Unmarshal(nationalities, &job.NationalityPreferences); err != nil {
			return nil, fmt.Errorf("failed to decode nationality preferences: %w", err)
		}
	}

	return &job, nil
}
