package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUrgency(t *testing.T) {
	tests := []struct {
		input    string
		expected Urgency
	}{
		{"immediate", UrgencyImmediate},
		{"Immediately", UrgencyImmediate},
		{"ASAP", UrgencyImmediate},
		{"urgent", UrgencyImmediate},
		{"within_week", UrgencyWithinWeek},
		{"within-week", UrgencyWithinWeek},
		{"This Week", UrgencyWithinWeek},
		{"within_month", UrgencyWithinMonth},
		{"one month", UrgencyWithinMonth},
		{"flexible", UrgencyFlexible},
		{"Anytime", UrgencyFlexible},
		{"  flexible  ", UrgencyFlexible},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, NormalizeUrgency(tc.input), "input: %q", tc.input)
	}

	// Unknown values pass through and fail validation
	unknown := NormalizeUrgency("whenever you like")
	assert.False(t, unknown.IsValid())
}

func TestUrgencyIsValid(t *testing.T) {
	for _, urgency := range ValidUrgencies() {
		assert.True(t, urgency.IsValid())
	}
	assert.False(t, Urgency("soon").IsValid())
	assert.False(t, Urgency("").IsValid())
}

func TestValidateJobCreate(t *testing.T) {
	min, max := 30, 25
	job := &JobCreate{Title: "Helper", AgeMinPreference: &min, AgeMaxPreference: &max}
	assert.ErrorIs(t, ValidateJobCreate(job), ErrInvalidAgeRange)

	working, rest := 6, 2
	job = &JobCreate{Title: "Helper", WorkingDays: &working, RestDays: &rest}
	assert.ErrorIs(t, ValidateJobCreate(job), ErrInvalidWorkWeek)

	job = &JobCreate{Title: "Helper", StartDate: "01/05/2026"}
	assert.ErrorIs(t, ValidateJobCreate(job), ErrInvalidStartDate)

	okMin, okMax := 21, 45
	okWorking, okRest := 6, 1
	job = &JobCreate{
		Title:            "Helper",
		AgeMinPreference: &okMin,
		AgeMaxPreference: &okMax,
		WorkingDays:      &okWorking,
		RestDays:         &okRest,
		StartDate:        "2026-05-01",
	}
	assert.NoError(t, ValidateJobCreate(job))
}

func TestValidateHelperCreate(t *testing.T) {
	helper := &HelperCreate{Name: "Maria", DateOfBirth: "15-04-1992"}
	assert.ErrorIs(t, ValidateHelperCreate(helper), ErrInvalidBirthDate)

	helper = &HelperCreate{Name: "Maria", DateOfBirth: "1992-04-15"}
	assert.NoError(t, ValidateHelperCreate(helper))

	helper = &HelperCreate{Name: "Maria"}
	assert.NoError(t, ValidateHelperCreate(helper))
}

func TestHelperToSummary(t *testing.T) {
	years := 6
	completeness := 95

	helper := &HelperRecord{
		ID:                  "h1",
		Name:                "Maria Santos",
		Nationality:         "Philippines",
		SkillsText:          "Cooking, childcare",
		ExperienceYears:     &years,
		ProfileCompleteness: &completeness,
		IsVerified:          true,
	}

	summary := helper.ToSummary()
	assert.Equal(t, "h1", summary.ID)
	assert.Equal(t, "Maria Santos", summary.Name)
	assert.Equal(t, 6, summary.ExperienceYears)
	assert.Equal(t, 95, summary.ProfileCompleteness)
	assert.True(t, summary.IsVerified)
}

func TestHelperToSummary_Defaults(t *testing.T) {
	summary := (&HelperRecord{ID: "h2", Name: "New Helper"}).ToSummary()
	assert.Equal(t, 0, summary.ExperienceYears)
	assert.Equal(t, 0, summary.ProfileCompleteness)
	assert.False(t, summary.IsVerified)
}

func TestJobCreateToRecord(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	children := 2

	record := (&JobCreate{
		Title:         "Live-in helper",
		City:          "Singapore",
		ChildrenCount: &children,
	}).ToRecord("job-1", now)

	assert.Equal(t, "job-1", record.ID)
	assert.Equal(t, "Live-in helper", record.Title)
	assert.Equal(t, 2, *record.ChildrenCount)
	assert.Equal(t, now, record.CreatedAt)
	assert.True(t, record.IsActive)
}

func TestHelperCreateToRecord(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	record := (&HelperCreate{
		Name:        "Maria Santos",
		DateOfBirth: "1992-04-15",
		IsVerified:  true,
	}).ToRecord("helper-1", now)

	assert.Equal(t, "helper-1", record.ID)
	assert.Equal(t, "1992-04-15", record.DateOfBirth)
	assert.True(t, record.IsActive)
	assert.True(t, record.IsVerified)
}
