// Package models defines the data structures for the helper match engine.
package models

import (
	"time"
)

// Urgency represents how soon an employer needs a helper to start.
type Urgency string

const (
	UrgencyFlexible    Urgency = "flexible"
	UrgencyWithinMonth Urgency = "within_month"
	UrgencyWithinWeek  Urgency = "within_week"
	UrgencyImmediate   Urgency = "immediate"
)

// ValidUrgencies returns all valid urgency values.
func ValidUrgencies() []Urgency {
	return []Urgency{
		UrgencyFlexible,
		UrgencyWithinMonth,
		UrgencyWithinWeek,
		UrgencyImmediate,
	}
}

// IsValid checks if the urgency value is valid.
func (u Urgency) IsValid() bool {
	for _, valid := range ValidUrgencies() {
		if u == valid {
			return true
		}
	}
	return false
}

// JobRecord represents a raw job posting as stored or received from the API.
// Every field may be absent; the feature extractor applies documented defaults.
type JobRecord struct {
	ID                     string    `json:"id" db:"id"`
	EmployerID             string    `json:"employer_id,omitempty" db:"employer_id"`
	Title                  string    `json:"title" db:"title"`
	Description            string    `json:"description" db:"description"`
	City                   string    `json:"city" db:"city"`
	Country                string    `json:"country" db:"country"`
	HouseholdSize          *int      `json:"household_size,omitempty" db:"household_size"`
	ChildrenCount          *int      `json:"children_count,omitempty" db:"children_count"`
	PetsCount              *int      `json:"pets_count,omitempty" db:"pets_count"`
	HouseType              string    `json:"house_type,omitempty" db:"house_type"`
	WorkingDays            *int      `json:"working_days,omitempty" db:"working_days"`
	RestDays               *int      `json:"rest_days,omitempty" db:"rest_days"`
	SalaryAmount           *float64  `json:"salary_amount,omitempty" db:"salary_amount"`
	SalaryCurrency         string    `json:"salary_currency,omitempty" db:"salary_currency"`
	Urgency                string    `json:"urgency,omitempty" db:"urgency"`
	StartDate              string    `json:"start_date,omitempty" db:"start_date"`
	ReligionPreference     string    `json:"religion_preference,omitempty" db:"religion_preference"`
	NationalityPreferences []string  `json:"nationality_preferences,omitempty" db:"nationality_preferences"`
	AgeMinPreference       *int      `json:"age_min_preference,omitempty" db:"age_min_preference"`
	AgeMaxPreference       *int      `json:"age_max_preference,omitempty" db:"age_max_preference"`
	CreatedAt              time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt              time.Time `json:"updated_at,omitempty" db:"updated_at"`
	IsActive               bool      `json:"is_active" db:"is_active"`
}

// JobCreate represents the data needed to create a new job posting.
type JobCreate struct {
	EmployerID             string   `json:"employer_id,omitempty" validate:"max=50"`
	Title                  string   `json:"title" validate:"required,min=1,max=200"`
	Description            string   `json:"description" validate:"max=5000"`
	City                   string   `json:"city" validate:"max=100"`
	Country                string   `json:"country" validate:"max=100"`
	HouseholdSize          *int     `json:"household_size,omitempty" validate:"omitempty,gte=0"`
	ChildrenCount          *int     `json:"children_count,omitempty" validate:"omitempty,gte=0"`
	PetsCount              *int     `json:"pets_count,omitempty" validate:"omitempty,gte=0"`
	HouseType              string   `json:"house_type,omitempty" validate:"max=50"`
	WorkingDays            *int     `json:"working_days,omitempty" validate:"omitempty,gte=0,lte=7"`
	RestDays               *int     `json:"rest_days,omitempty" validate:"omitempty,gte=0,lte=7"`
	SalaryAmount           *float64 `json:"salary_amount,omitempty" validate:"omitempty,gte=0"`
	SalaryCurrency         string   `json:"salary_currency,omitempty" validate:"max=10"`
	Urgency                string   `json:"urgency,omitempty"`
	StartDate              string   `json:"start_date,omitempty"`
	ReligionPreference     string   `json:"religion_preference,omitempty" validate:"max=50"`
	NationalityPreferences []string `json:"nationality_preferences,omitempty"`
	AgeMinPreference       *int     `json:"age_min_preference,omitempty" validate:"omitempty,gte=18"`
	AgeMaxPreference       *int     `json:"age_max_preference,omitempty" validate:"omitempty,lte=120"`
}

// ToRecord converts a JobCreate to a JobRecord with the given ID.
func (j *JobCreate) ToRecord(id string, now time.Time) *JobRecord {
	return &JobRecord{
		ID:                     id,
		EmployerID:             j.EmployerID,
		Title:                  j.Title,
		Description:            j.Description,
		City:                   j.City,
		Country:                j.Country,
		HouseholdSize:          j.HouseholdSize,
		ChildrenCount:          j.ChildrenCount,
		PetsCount:              j.PetsCount,
		HouseType:              j.HouseType,
		WorkingDays:            j.WorkingDays,
		RestDays:               j.RestDays,
		SalaryAmount:           j.SalaryAmount,
		SalaryCurrency:         j.SalaryCurrency,
		Urgency:                j.Urgency,
		StartDate:              j.StartDate,
		ReligionPreference:     j.ReligionPreference,
		NationalityPreferences: j.NationalityPreferences,
		AgeMinPreference:       j.AgeMinPreference,
		AgeMaxPreference:       j.AgeMaxPreference,
		CreatedAt:              now,
		UpdatedAt:              now,
		IsActive:               true,
	}
}

// JobSummary is a lightweight view of a job for listing endpoints.
type JobSummary struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	City           string   `json:"city"`
	Country        string   `json:"country"`
	SalaryAmount   *float64 `json:"salary_amount,omitempty"`
	SalaryCurrency string   `json:"salary_currency,omitempty"`
	Urgency        string   `json:"urgency,omitempty"`
}

// ToSummary converts a JobRecord to JobSummary.
func (j *JobRecord) ToSummary() JobSummary {
	return JobSummary{
		ID:             j.ID,
		Title:          j.Title,
		City:           j.City,
		Country:        j.Country,
		SalaryAmount:   j.SalaryAmount,
		SalaryCurrency: j.SalaryCurrency,
		Urgency:        j.Urgency,
	}
}
