package matcher

import (
	"fmt"
	"math"
	"strings"
)

// Sub-score weights. They sum to 1.0 so the weighted sum is already
// normalized; the final value is still clamped defensively.
const (
	skillsWeight      = 0.30
	locationWeight    = 0.20
	experienceWeight  = 0.25
	ageWeight         = 0.10
	religionWeight    = 0.05
	nationalityWeight = 0.10
)

// maxExperienceLevel caps the helper's effective experience level.
const maxExperienceLevel = 5

// ageDecayYears is the distance outside the preferred age range at which
// the age sub-score reaches zero.
const ageDecayYears = 10.0

// CalculateSimilarity returns the weighted compatibility of a helper with a
// job, in [0,1].
func CalculateSimilarity(job JobFeatures, helper HelperFeatures) float64 {
	score := skillsScore(job, helper)*skillsWeight +
		locationScore(job, helper)*locationWeight +
		experienceScore(job, helper)*experienceWeight +
		ageScore(job, helper)*ageWeight +
		religionScore(job, helper)*religionWeight +
		nationalityScore(job, helper)*nationalityWeight

	return clamp01(score)
}

// MatchReasons produces the short human-readable strings shown next to a
// match. Independent of CalculateSimilarity; relevant sub-scores are
// recomputed against fixed thresholds.
func MatchReasons(job JobFeatures, helper HelperFeatures) []string {
	reasons := []string{}

	if s := skillsScore(job, helper); s > 0.7 {
		reasons = append(reasons, fmt.Sprintf("Strong skills match (%.0f%%)", s*100))
	}
	if helper.HasExperience && helper.ExperienceYears > 0 {
		reasons = append(reasons, fmt.Sprintf("%d years of experience", helper.ExperienceYears))
	}
	if l := locationScore(job, helper); l > 0.8 {
		reasons = append(reasons, "Same location")
	} else if l > 0.6 {
		reasons = append(reasons, "Same country")
	}
	if helper.IsVerified {
		reasons = append(reasons, "Verified profile")
	}
	if helper.ProfileCompleteness > 80 {
		reasons = append(reasons, "Complete profile")
	}

	return reasons
}

// skillsScore is the fraction of required skills the helper covers. A skill
// counts as covered when either phrase contains the other. An empty
// requirement set is trivially satisfied.
func skillsScore(job JobFeatures, helper HelperFeatures) float64 {
	if len(job.RequiredSkills) == 0 {
		return 1
	}

	matched := 0
	for _, required := range job.RequiredSkills {
		for _, skill := range helper.Skills {
			if strings.Contains(skill, required) || strings.Contains(required, skill) {
				matched++
				break
			}
		}
	}

	return float64(matched) / float64(len(job.RequiredSkills))
}

// locationScore rewards a city match over a country match. A helper from
// elsewhere scores a neutral 0.5, not a penalty.
func locationScore(job JobFeatures, helper HelperFeatures) float64 {
	if job.Location.City == helper.Location.City {
		return 1.0
	}
	if job.Location.Country == helper.Location.Country {
		return 0.7
	}
	return 0.5
}

// experienceScore compares the helper's effective level against the
// required level. A required level of zero is auto-satisfied; a shortfall
// scores proportionally.
func experienceScore(job JobFeatures, helper HelperFeatures) float64 {
	if job.ExperienceRequired == 0 {
		return 1
	}

	level := helperExperienceLevel(helper)
	if level >= job.ExperienceRequired {
		return 1
	}
	return float64(level) / float64(job.ExperienceRequired)
}

// helperExperienceLevel is the helper's years of experience capped at the
// ladder maximum, or zero without prior helper work.
func helperExperienceLevel(helper HelperFeatures) int {
	if !helper.HasExperience {
		return 0
	}
	if helper.ExperienceYears > maxExperienceLevel {
		return maxExperienceLevel
	}
	return helper.ExperienceYears
}

// ageScore is 1 inside the preferred range and decays linearly outside it,
// reaching 0 at ageDecayYears outside the bound.
func ageScore(job JobFeatures, helper HelperFeatures) float64 {
	min, max := job.AgePreference.Min, job.AgePreference.Max
	if min <= 0 && max <= 0 {
		return 1
	}
	if helper.Age >= min && helper.Age <= max {
		return 1
	}

	var distance float64
	if helper.Age < min {
		distance = float64(min - helper.Age)
	} else {
		distance = float64(helper.Age - max)
	}

	return math.Max(0, 1-distance/ageDecayYears)
}

// religionScore treats a mismatch as a soft penalty rather than a zero.
func religionScore(job JobFeatures, helper HelperFeatures) float64 {
	if job.ReligionPreference == "" {
		return 1
	}
	if job.ReligionPreference == helper.Religion {
		return 1
	}
	return 0.5
}

// nationalityScore treats a mismatch as a soft penalty rather than a zero.
func nationalityScore(job JobFeatures, helper HelperFeatures) float64 {
	if len(job.NationalityPreferences) == 0 {
		return 1
	}
	for _, preferred := range job.NationalityPreferences {
		if preferred == helper.Nationality {
			return 1
		}
	}
	return 0.3
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
