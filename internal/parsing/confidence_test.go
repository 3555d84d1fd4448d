package parsing

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-importer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestScore_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Score(nil))
	assert.Equal(t, 0.0, Score(types.NewParsedResume()))
}

func TestScore_PersonalInfoOnly(t *testing.T) {
	r := types.NewParsedResume()
	r.PersonalInfo = &types.PersonalInfo{Name: "Jane Smith", Email: "jane@example.com"}
	assert.Equal(t, 0.27, Score(r))
}

func TestScore_ShortSummaryEarnsNothing(t *testing.T) {
	r := types.NewParsedResume()
	r.Summary = &types.Summary{Content: "Engineer."}
	assert.Equal(t, 0.0, Score(r))

	r.Summary.Content = strings.Repeat("a", 51)
	assert.Equal(t, 0.1, Score(r))
}

func TestScore_ListsAreCapped(t *testing.T) {
	r := types.NewParsedResume()
	r.PersonalInfo = &types.PersonalInfo{
		Name: "Jane Smith", Email: "jane@example.com", Role: "Engineer",
		Phone: "+1 415 555 0100", Location: "Austin, TX",
	}
	r.Summary = &types.Summary{Content: strings.Repeat("word ", 20)}
	for i := 0; i < 10; i++ {
		r.Experiences = append(r.Experiences, types.Experience{Company: "Acme", Role: "Engineer", Order: i})
	}
	for i := 0; i < 5; i++ {
		r.Education = append(r.Education, types.Education{Institution: "MIT", Degree: "BS", Order: i})
	}
	for i := 0; i < 50; i++ {
		r.Skills = append(r.Skills, types.Skill{Name: "Go", Category: "General", Order: i})
	}

	assert.Equal(t, 1.0, Score(r))
}

func TestScore_Partial(t *testing.T) {
	r := types.NewParsedResume()
	r.Experiences = []types.Experience{{Company: "Acme", Role: "Engineer"}, {Company: "Globex", Role: "Engineer", Order: 1}}
	r.Education = []types.Education{{Institution: "MIT", Degree: "BS"}}
	r.Skills = []types.Skill{{Name: "Go", Category: "General"}, {Name: "SQL", Category: "General", Order: 1}}

	// 13 + 5 + 8
	assert.Equal(t, 0.26, Score(r))
}
