// Package models defines the data structures for the helper match engine.
package models

import (
	"time"
)

// Language is one spoken language with its proficiency level.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// HelperRecord represents a raw helper profile as stored or received from the
// API. Every field may be absent; the feature extractor applies documented
// defaults.
type HelperRecord struct {
	ID                  string     `json:"id" db:"id"`
	Name                string     `json:"name" db:"name"`
	DateOfBirth         string     `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Nationality         string     `json:"nationality,omitempty" db:"nationality"`
	Religion            string     `json:"religion,omitempty" db:"religion"`
	BirthCity           string     `json:"birth_city,omitempty" db:"birth_city"`
	SkillsText          string     `json:"skills_text,omitempty" db:"skills_text"`
	HasBeenHelperBefore string     `json:"has_been_helper_before,omitempty" db:"has_been_helper_before"`
	ExperienceYears     *int       `json:"experience_years,omitempty" db:"experience_years"`
	PreviousJobs        []string   `json:"previous_jobs,omitempty" db:"previous_jobs"`
	Specializations     []string   `json:"specializations,omitempty" db:"specializations"`
	EducationLevel      string     `json:"education_level,omitempty" db:"education_level"`
	MaritalStatus       string     `json:"marital_status,omitempty" db:"marital_status"`
	NumberOfChildren    *int       `json:"number_of_children,omitempty" db:"number_of_children"`
	Languages           []Language `json:"languages,omitempty" db:"languages"`
	ProfileCompleteness *int       `json:"profile_completeness,omitempty" db:"profile_completeness"`
	CreatedAt           time.Time  `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at,omitempty" db:"updated_at"`
	IsActive            bool       `json:"is_active" db:"is_active"`
	IsVerified          bool       `json:"is_verified" db:"is_verified"`
}

// HelperCreate represents the data needed to create a new helper profile.
type HelperCreate struct {
	Name                string     `json:"name" validate:"required,min=1,max=200"`
	DateOfBirth         string     `json:"date_of_birth,omitempty"`
	Nationality         string     `json:"nationality,omitempty" validate:"max=100"`
	Religion            string     `json:"religion,omitempty" validate:"max=50"`
	BirthCity           string     `json:"birth_city,omitempty" validate:"max=100"`
	SkillsText          string     `json:"skills_text,omitempty" validate:"max=2000"`
	HasBeenHelperBefore string     `json:"has_been_helper_before,omitempty" validate:"omitempty,oneof=yes no"`
	ExperienceYears     *int       `json:"experience_years,omitempty" validate:"omitempty,gte=0,lte=60"`
	PreviousJobs        []string   `json:"previous_jobs,omitempty"`
	Specializations     []string   `json:"specializations,omitempty"`
	EducationLevel      string     `json:"education_level,omitempty" validate:"max=100"`
	MaritalStatus       string     `json:"marital_status,omitempty" validate:"max=50"`
	NumberOfChildren    *int       `json:"number_of_children,omitempty" validate:"omitempty,gte=0"`
	Languages           []Language `json:"languages,omitempty"`
	ProfileCompleteness *int       `json:"profile_completeness,omitempty" validate:"omitempty,gte=0,lte=100"`
	IsVerified          bool       `json:"is_verified"`
}

// ToRecord converts a HelperCreate to a HelperRecord with the given ID.
func (h *HelperCreate) ToRecord(id string, now time.Time) *HelperRecord {
	return &HelperRecord{
		ID:                  id,
		Name:                h.Name,
		DateOfBirth:         h.DateOfBirth,
		Nationality:         h.Nationality,
		Religion:            h.Religion,
		BirthCity:           h.BirthCity,
		SkillsText:          h.SkillsText,
		HasBeenHelperBefore: h.HasBeenHelperBefore,
		ExperienceYears:     h.ExperienceYears,
		PreviousJobs:        h.PreviousJobs,
		Specializations:     h.Specializations,
		EducationLevel:      h.EducationLevel,
		MaritalStatus:       h.MaritalStatus,
		NumberOfChildren:    h.NumberOfChildren,
		Languages:           h.Languages,
		ProfileCompleteness: h.ProfileCompleteness,
		CreatedAt:           now,
		UpdatedAt:           now,
		IsActive:            true,
		IsVerified:          h.IsVerified,
	}
}

// HelperSummary is the helper subset returned inside a match.
type HelperSummary struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Nationality         string `json:"nationality,omitempty"`
	SkillsText          string `json:"skills_text,omitempty"`
	ExperienceYears     int    `json:"experience_years"`
	IsVerified          bool   `json:"is_verified"`
	ProfileCompleteness int    `json:"profile_completeness"`
}

// ToSummary converts a HelperRecord to HelperSummary.
func (h *HelperRecord) ToSummary() HelperSummary {
	years := 0
	if h.ExperienceYears != nil {
		years = *h.ExperienceYears
	}
	completeness := 0
	if h.ProfileCompleteness != nil {
		completeness = *h.ProfileCompleteness
	}
	return HelperSummary{
		ID:                  h.ID,
		Name:                h.Name,
		Nationality:         h.Nationality,
		SkillsText:          h.SkillsText,
		ExperienceYears:     years,
		IsVerified:          h.IsVerified,
		ProfileCompleteness: completeness,
	}
}
