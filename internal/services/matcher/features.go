// Package matcher implements the job-helper matching engine: feature
// extraction, weighted similarity scoring and ranked match finding.
package matcher

import (
	"regexp"
	"strings"
	"time"

	"helper-match-engine/internal/models"
)

// Defaults applied when a raw record omits a field.
const (
	defaultHelperAge      = 25
	defaultWorkingDays    = 7
	defaultRestDays       = 0
	defaultSalaryCurrency = "sgd"
	defaultAgeMin         = 18
	defaultAgeMax         = 65
)

// skillsVocabulary is the fixed set of known skill phrases scanned for in
// job descriptions and helper skill text. Matching is plain substring
// containment over normalized text, no stemming or synonyms.
var skillsVocabulary = []string{
	"cooking",
	"baking",
	"childcare",
	"infant care",
	"newborn care",
	"elderly care",
	"special needs care",
	"first aid",
	"housekeeping",
	"cleaning",
	"laundry",
	"ironing",
	"washing",
	"sewing",
	"driving",
	"pet care",
	"gardening",
	"tutoring",
	"grocery shopping",
	"caregiving",
}

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Location is a normalized city/country pair.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// AgeRange is an inclusive helper age preference.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// JobFeatures is the normalized representation of a job posting used for
// scoring. Immutable once computed.
type JobFeatures struct {
	Title                  string
	Description            string
	Location               Location
	RequiredSkills         []string
	ExperienceRequired     int
	HouseholdSize          int
	ChildrenCount          int
	PetsCount              int
	HouseType              string
	WorkingDays            int
	RestDays               int
	SalaryAmount           float64
	SalaryCurrency         string
	Urgency                int
	StartDate              time.Time
	ReligionPreference     string
	NationalityPreferences []string
	AgePreference          AgeRange
}

// HelperFeatures is the normalized representation of a helper profile used
// for scoring. Immutable once computed.
type HelperFeatures struct {
	Name                string
	Age                 int
	Nationality         string
	Religion            string
	Location            Location
	Skills              []string
	HasExperience       bool
	ExperienceYears     int
	PreviousJobs        []string
	Specializations     []string
	EducationLevel      string
	MaritalStatus       string
	NumberOfChildren    int
	IsActive            bool
	IsVerified          bool
	Languages           []models.Language
	ProfileCompleteness int
}

// Extractor converts raw job and helper records into feature sets. The clock
// and the experience classifier are injectable so extraction stays
// deterministic under test.
type Extractor struct {
	now        func() time.Time
	classifier ExperienceClassifier
}

// NewExtractor creates an extractor with the wall clock and the keyword
// experience classifier.
func NewExtractor() *Extractor {
	return &Extractor{
		now:        time.Now,
		classifier: KeywordClassifier{},
	}
}

// NewExtractorWithClock creates an extractor with a fixed clock, for tests.
func NewExtractorWithClock(now func() time.Time) *Extractor {
	return &Extractor{
		now:        now,
		classifier: KeywordClassifier{},
	}
}

// NormalizeText lowercases, strips characters outside word/space and
// collapses consecutive whitespace to a single space.
func NormalizeText(text string) string {
	normalized := strings.ToLower(text)
	normalized = nonWordRe.ReplaceAllString(normalized, "")
	normalized = whitespaceRe.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// ExtractSkills scans a free-text blob for known skill phrases.
func ExtractSkills(text string) []string {
	normalized := NormalizeText(text)
	if normalized == "" {
		return []string{}
	}

	skills := make([]string, 0)
	for _, skill := range skillsVocabulary {
		if strings.Contains(normalized, skill) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// ExtractJobFeatures derives the normalized feature set of a job posting.
// Missing fields never fail; each gets its documented default.
func (e *Extractor) ExtractJobFeatures(job *models.JobRecord) JobFeatures {
	if job == nil {
		job = &models.JobRecord{}
	}

	features := JobFeatures{
		Title:       NormalizeText(job.Title),
		Description: NormalizeText(job.Description),
		Location: Location{
			City:    NormalizeText(job.City),
			Country: NormalizeText(job.Country),
		},
		RequiredSkills:     ExtractSkills(job.Description),
		ExperienceRequired: e.classifier.Classify(job.Description),
		HouseholdSize:      intOrZero(job.HouseholdSize),
		ChildrenCount:      intOrZero(job.ChildrenCount),
		PetsCount:          intOrZero(job.PetsCount),
		HouseType:          NormalizeText(job.HouseType),
		WorkingDays:        intOrDefault(job.WorkingDays, defaultWorkingDays),
		RestDays:           intOrDefault(job.RestDays, defaultRestDays),
		SalaryCurrency:     defaultSalaryCurrency,
		Urgency:            urgencyRank(job.Urgency),
		StartDate:          e.now(),
		ReligionPreference: NormalizeText(job.ReligionPreference),
		AgePreference:      AgeRange{Min: defaultAgeMin, Max: defaultAgeMax},
	}

	if job.SalaryAmount != nil {
		features.SalaryAmount = *job.SalaryAmount
	}
	if job.SalaryCurrency != "" {
		features.SalaryCurrency = strings.ToLower(strings.TrimSpace(job.SalaryCurrency))
	}
	if job.StartDate != "" {
		if parsed, err := time.Parse("2006-01-02", job.StartDate); err == nil {
			features.StartDate = parsed
		}
	}
	for _, nationality := range job.NationalityPreferences {
		if normalized := NormalizeText(nationality); normalized != "" {
			features.NationalityPreferences = append(features.NationalityPreferences, normalized)
		}
	}
	if job.AgeMinPreference != nil {
		features.AgePreference.Min = *job.AgeMinPreference
	}
	if job.AgeMaxPreference != nil {
		features.AgePreference.Max = *job.AgeMaxPreference
	}

	return features
}

// ExtractHelperFeatures derives the normalized feature set of a helper
// profile. Missing fields never fail; each gets its documented default.
func (e *Extractor) ExtractHelperFeatures(helper *models.HelperRecord) HelperFeatures {
	if helper == nil {
		helper = &models.HelperRecord{}
	}

	features := HelperFeatures{
		Name:        NormalizeText(helper.Name),
		Age:         e.ageFromBirthDate(helper.DateOfBirth),
		Nationality: NormalizeText(helper.Nationality),
		Religion:    NormalizeText(helper.Religion),
		Location: Location{
			City:    NormalizeText(helper.BirthCity),
			Country: NormalizeText(helper.Nationality),
		},
		Skills:              ExtractSkills(helper.SkillsText),
		HasExperience:       strings.EqualFold(strings.TrimSpace(helper.HasBeenHelperBefore), "yes"),
		ExperienceYears:     intOrZero(helper.ExperienceYears),
		PreviousJobs:        helper.PreviousJobs,
		Specializations:     helper.Specializations,
		EducationLevel:      NormalizeText(helper.EducationLevel),
		MaritalStatus:       NormalizeText(helper.MaritalStatus),
		NumberOfChildren:    intOrZero(helper.NumberOfChildren),
		IsActive:            helper.IsActive,
		IsVerified:          helper.IsVerified,
		ProfileCompleteness: intOrZero(helper.ProfileCompleteness),
	}

	for _, lang := range helper.Languages {
		features.Languages = append(features.Languages, models.Language{
			Language:    NormalizeText(lang.Language),
			Proficiency: strings.ToLower(strings.TrimSpace(lang.Proficiency)),
		})
	}

	return features
}

// ageFromBirthDate computes whole years between a YYYY-MM-DD birth date and
// now, decrementing when the birthday has not yet occurred this year.
func (e *Extractor) ageFromBirthDate(dateOfBirth string) int {
	if dateOfBirth == "" {
		return defaultHelperAge
	}

	born, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return defaultHelperAge
	}

	now := e.now()
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age
}

// urgencyRank maps an urgency value to its integer rank. Unknown values
// rank as flexible.
func urgencyRank(urgency string) int {
	switch models.NormalizeUrgency(urgency) {
	case models.UrgencyImmediate:
		return 4
	case models.UrgencyWithinWeek:
		return 3
	case models.UrgencyWithinMonth:
		return 2
	default:
		return 1
	}
}

func intOrZero(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func intOrDefault(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
