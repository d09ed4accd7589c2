// Package models defines the data structures for the helper match engine.
package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrJobNotFound      = errors.New("job not found")
	ErrHelperNotFound   = errors.New("helper not found")
	ErrNilHelperRecord  = errors.New("helper record is nil")
	ErrEmptyJobID       = errors.New("job id cannot be empty")
	ErrInvalidAgeRange  = errors.New("age preference min cannot exceed max")
	ErrInvalidWorkWeek  = errors.New("working days and rest days cannot exceed 7")
	ErrInvalidStartDate = errors.New("start date must be YYYY-MM-DD")
	ErrInvalidBirthDate = errors.New("date of birth must be YYYY-MM-DD")
)

// NormalizeUrgency converts various urgency spellings to standard values.
func NormalizeUrgency(urgency string) Urgency {
	normalized := strings.ToLower(strings.TrimSpace(urgency))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	urgencyMap := map[string]Urgency{
		"flexible":     UrgencyFlexible,
		"anytime":      UrgencyFlexible,
		"no_rush":      UrgencyFlexible,
		"within_month": UrgencyWithinMonth,
		"this_month":   UrgencyWithinMonth,
		"1_month":      UrgencyWithinMonth,
		"one_month":    UrgencyWithinMonth,
		"within_week":  UrgencyWithinWeek,
		"this_week":    UrgencyWithinWeek,
		"1_week":       UrgencyWithinWeek,
		"one_week":     UrgencyWithinWeek,
		"immediate":    UrgencyImmediate,
		"immediately":  UrgencyImmediate,
		"asap":         UrgencyImmediate,
		"urgent":       UrgencyImmediate,
	}

	if mapped, ok := urgencyMap[normalized]; ok {
		return mapped
	}

	// Return as-is if no mapping found (will fail validation)
	return Urgency(normalized)
}

// ValidateJobCreate validates job creation data beyond struct tags.
func ValidateJobCreate(j *JobCreate) error {
	if j.AgeMinPreference != nil && j.AgeMaxPreference != nil && *j.AgeMinPreference > *j.AgeMaxPreference {
		return ErrInvalidAgeRange
	}

	if j.WorkingDays != nil && j.RestDays != nil && *j.WorkingDays+*j.RestDays > 7 {
		return ErrInvalidWorkWeek
	}

	if j.StartDate != "" && !isValidDate(j.StartDate) {
		return ErrInvalidStartDate
	}

	return nil
}

// ValidateHelperCreate validates helper creation data beyond struct tags.
func ValidateHelperCreate(h *HelperCreate) error {
	if h.DateOfBirth != "" && !isValidDate(h.DateOfBirth) {
		return ErrInvalidBirthDate
	}
	return nil
}

// isValidDate performs a basic YYYY-MM-DD shape check.
func isValidDate(date string) bool {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return false
	}
	if len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return false
	}
	for _, part := range parts {
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
