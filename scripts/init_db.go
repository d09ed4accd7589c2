package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("=== Database Initialization Script ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Could not load .env file: %v\n", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "5432")
		name := envOr("DB_NAME", "helper_marketplace")
		user := envOr("DB_USER", "postgres")
		password := os.Getenv("DB_PASSWORD")
		databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	fmt.Println("Connected to database")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			employer_id TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			household_size INT,
			children_count INT,
			pets_count INT,
			house_type TEXT NOT NULL DEFAULT '',
			working_days INT,
			rest_days INT,
			salary_amount DOUBLE PRECISION,
			salary_currency TEXT NOT NULL DEFAULT '',
			urgency TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			religion_preference TEXT NOT NULL DEFAULT '',
			nationality_preferences JSONB NOT NULL DEFAULT '[]',
			age_min_preference INT,
			age_max_preference INT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			is_active BOOLEAN NOT NULL DEFAULT true
		)`,
		`CREATE TABLE IF NOT EXISTS helpers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			date_of_birth TEXT NOT NULL DEFAULT '',
			nationality TEXT NOT NULL DEFAULT '',
			religion TEXT NOT NULL DEFAULT '',
			birth_city TEXT NOT NULL DEFAULT '',
			skills_text TEXT NOT NULL DEFAULT '',
			has_been_helper_before TEXT NOT NULL DEFAULT '',
			experience_years INT,
			previous_jobs JSONB NOT NULL DEFAULT '[]',
			specializations JSONB NOT NULL DEFAULT '[]',
			education_level TEXT NOT NULL DEFAULT '',
			marital_status TEXT NOT NULL DEFAULT '',
			number_of_children INT,
			languages JSONB NOT NULL DEFAULT '[]',
			profile_completeness INT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			is_active BOOLEAN NOT NULL DEFAULT true,
			is_verified BOOLEAN NOT NULL DEFAULT false
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			job_id TEXT NOT NULL REFERENCES jobs(id),
			helper_id TEXT NOT NULL REFERENCES helpers(id),
			similarity DOUBLE PRECISION NOT NULL,
			match_reasons JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (job_id, helper_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_job_similarity ON matches (job_id, similarity DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_helpers_active ON helpers (is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_active ON jobs (is_active)`,
	}

	for i, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			fmt.Printf("Statement %d failed: %v\n", i+1, err)
			os.Exit(1)
		}
	}

	fmt.Println("Schema created")

	// Seed sample data for local development
	seed := []string{
		`INSERT INTO jobs (id, title, description, city, country, children_count, salary_amount, salary_currency, urgency)
		 VALUES ('job-seed-1', 'Live-in helper for young family',
		         'Need an experienced helper, 3+ years, for childcare and cooking',
		         'Singapore', 'Singapore', 2, 650, 'SGD', 'within_month')
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO helpers (id, name, date_of_birth, nationality, religion, birth_city, skills_text,
		                      has_been_helper_before, experience_years, profile_completeness, is_verified)
		 VALUES ('helper-seed-1', 'Maria Santos', '1992-04-15', 'Philippines', 'Catholic', 'Singapore',
		         'Childcare, cooking, cleaning', 'yes', 6, 95, true)
		 ON CONFLICT (id) DO NOTHING`,
	}

	for i, stmt := range seed {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			fmt.Printf("Seed statement %d failed: %v\n", i+1, err)
			os.Exit(1)
		}
	}

	fmt.Println("Sample data seeded")
	fmt.Println()
	fmt.Println("=== Done ===")
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
