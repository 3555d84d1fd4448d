package parsing

import (
	"math"
	"unicode/utf8"

	"github.com/jonathan/resume-importer/internal/types"
)

// Field weights out of maxScore
const (
	weightName     = 15.0
	weightEmail    = 12.0
	weightRole     = 8.0
	weightPhone    = 3.0
	weightLocation = 3.0
	weightSummary  = 10.0

	experienceBase    = 5.0
	experiencePerItem = 4.0
	experienceMax     = 25.0

	educationPerItem = 5.0
	educationMax     = 10.0

	skillsBase    = 5.0
	skillsPerItem = 1.5
	skillsMax     = 20.0

	// summaryMinLength is the summary length that earns full credit
	summaryMinLength = 50

	maxScore = 100.0
)

// Score returns the weighted completeness of r in [0,1], rounded to two
// decimals. It measures which fields were found, not whether they are right.
func Score(r *types.ParsedResume) float64 {
	if r == nil {
		return 0
	}

	var achieved float64
	if p := r.PersonalInfo; p != nil {
		if p.Name != "" {
			achieved += weightName
		}
		if p.Email != "" {
			achieved += weightEmail
		}
		if p.Role != "" {
			achieved += weightRole
		}
		if p.Phone != "" {
			achieved += weightPhone
		}
		if p.Location != "" {
			achieved += weightLocation
		}
	}

	if r.Summary != nil && utf8.RuneCountInString(r.Summary.Content) > summaryMinLength {
		achieved += weightSummary
	}
	if n := len(r.Experiences); n > 0 {
		achieved += math.Min(experienceMax, experienceBase+experiencePerItem*float64(n))
	}
	if n := len(r.Education); n > 0 {
		achieved += math.Min(educationMax, educationPerItem*float64(n))
	}
	if n := len(r.Skills); n > 0 {
		achieved += math.Min(skillsMax, skillsBase+skillsPerItem*float64(n))
	}

	score := achieved / maxScore
	score = math.Max(0, math.Min(1, score))
	return math.Round(score*100) / 100
}
