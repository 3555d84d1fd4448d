package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractExperiences_DelimitedEntries(t *testing.T) {
	lines := strings.Split(`Experience
Senior Backend Engineer at Acme Corp | Jan 2020 - Present
- Built payment services handling millions of requests per day.
Software Engineer | Globex | 06/2016 - 12/2019
- Maintained the billing platform and on-call rotation.

Education`, "\n")

	exps := ExtractExperiences(lines, 10)
	require.Len(t, exps, 2)

	assert.Equal(t, "Senior Backend Engineer", exps[0].Role)
	assert.Equal(t, "Acme Corp", exps[0].Company)
	require.NotNil(t, exps[0].StartDate)
	assert.Equal(t, "2020-01", *exps[0].StartDate)
	assert.True(t, exps[0].IsCurrent)
	assert.Nil(t, exps[0].EndDate)
	assert.Equal(t, "Built payment services handling millions of requests per day.", exps[0].Description)
	assert.Equal(t, 0, exps[0].Order)

	assert.Equal(t, "Software Engineer", exps[1].Role)
	assert.Equal(t, "Globex", exps[1].Company)
	require.NotNil(t, exps[1].StartDate)
	require.NotNil(t, exps[1].EndDate)
	assert.Equal(t, "2016-06", *exps[1].StartDate)
	assert.Equal(t, "2019-12", *exps[1].EndDate)
	assert.False(t, exps[1].IsCurrent)
	assert.Equal(t, 1, exps[1].Order)
}

func TestExtractExperiences_StackedHeaderLines(t *testing.T) {
	lines := strings.Split(`Work History
Platform Engineer
Initech
2018 - 2020
Kept the deploy pipeline green for forty services.`, "\n")

	exps := ExtractExperiences(lines, 0)
	require.Len(t, exps, 1)
	assert.Equal(t, "Platform Engineer", exps[0].Role)
	assert.Equal(t, "Initech", exps[0].Company)
	require.NotNil(t, exps[0].StartDate)
	require.NotNil(t, exps[0].EndDate)
	assert.Equal(t, "2018-01", *exps[0].StartDate)
	assert.Equal(t, "2020-01", *exps[0].EndDate)
	assert.Equal(t, "Kept the deploy pipeline green for forty services.", exps[0].Description)
}

func TestExtractExperiences_CompanyFirstPipe(t *testing.T) {
	lines := []string{"Experience", "Hooli | Staff Engineer | Palo Alto, CA | 2015 - 2018"}

	exps := ExtractExperiences(lines, 0)
	require.Len(t, exps, 1)
	assert.Equal(t, "Staff Engineer", exps[0].Role)
	assert.Equal(t, "Hooli", exps[0].Company)
	assert.Equal(t, "Palo Alto, CA", exps[0].Location)
}

func TestExtractExperiences_AchievementBulletIsNotAnEntry(t *testing.T) {
	lines := strings.Split(`Experience
Backend Engineer at Acme | 2019 - 2021
- Presented the caching design at GopherCon
- Led the migration at scale`, "\n")

	exps := ExtractExperiences(lines, 0)
	require.Len(t, exps, 1)
	assert.Equal(t, "Acme", exps[0].Company)
	assert.Contains(t, exps[0].Description, "Presented the caching design at GopherCon")
	assert.Contains(t, exps[0].Description, "Led the migration at scale")
}

func TestExtractExperiences_IncompleteEntryDropped(t *testing.T) {
	lines := []string{"Experience", "Jan 2019 - Present", "Did many things over the years."}
	assert.Empty(t, ExtractExperiences(lines, 0))
}

func TestExtractExperiences_Limit(t *testing.T) {
	var lines []string
	lines = append(lines, "Experience")
	for i := 0; i < 5; i++ {
		lines = append(lines, "Engineer at Company | 2010 - 2011")
	}

	exps := ExtractExperiences(lines, 3)
	assert.Len(t, exps, 3)
	for i, exp := range exps {
		assert.Equal(t, i, exp.Order)
	}
}

func TestExtractExperiences_NoSection(t *testing.T) {
	exps := ExtractExperiences([]string{"Jane Smith", "Skills", "Go"}, 10)
	assert.NotNil(t, exps)
	assert.Empty(t, exps)
}

func TestExtractExperiences_InlineHeaderEndsSection(t *testing.T) {
	lines := strings.Split(`Experience
Software Engineer at Acme Corp | 2020 - Present
- Built internal tooling for the payments team.
Skills: Go, Python, Docker, Kubernetes
Education: B.S. Computer Science, Stanford University`, "\n")

	exps := ExtractExperiences(lines, 0)
	require.Len(t, exps, 1)
	assert.Equal(t, "Acme Corp", exps[0].Company)
	assert.Equal(t, "Built internal tooling for the payments team.", exps[0].Description)
}

func TestExtractExperiences_DatedBulletStaysInDescription(t *testing.T) {
	lines := strings.Split(`Experience
Backend Engineer at Acme | 2018 - 2022
- Led the billing migration from 2019 - 2021 across teams
- Cut invoice latency in half with batched writes
Data Engineer | Globex | 2016 - 2018`, "\n")

	exps := ExtractExperiences(lines, 0)
	require.Len(t, exps, 2)
	assert.Equal(t, "Acme", exps[0].Company)
	assert.Equal(t, "Led the billing migration from 2019 - 2021 across teams\nCut invoice latency in half with batched writes", exps[0].Description)
	assert.Equal(t, "Globex", exps[1].Company)
}

func TestIsEntryDelimiter(t *testing.T) {
	assert.True(t, isEntryDelimiter("Acme | Jan 2020 - Present"))
	assert.True(t, isEntryDelimiter("Senior Engineer at Google"))
	assert.True(t, isEntryDelimiter("Acme Corp | Engineer"))
	assert.False(t, isEntryDelimiter("Spoke at GopherCon"))
	assert.False(t, isEntryDelimiter("worked with the team at night on incidents"))
	assert.False(t, isEntryDelimiter("Just a sentence."))
	assert.False(t, isEntryDelimiter("- Led the billing migration from 2019 - 2021 across teams"))
	assert.False(t, isEntryDelimiter("- Shipped v2 | cut costs by a third across regions"))
	assert.True(t, isEntryDelimiter("- Senior Engineer | Acme | 2019 - 2021"))
}

func TestParseEntryHeader(t *testing.T) {
	tests := []struct {
		line     string
		role     string
		company  string
		location string
	}{
		{"Senior Engineer at Google | Mountain View, CA", "Senior Engineer", "Google", "Mountain View, CA"},
		{"Senior Engineer - Google", "Senior Engineer", "Google", ""},
		{"Google, Senior Engineer", "Senior Engineer", "Google", ""},
		{"Product Manager", "Product Manager", "", ""},
		{"Acme Corp", "", "Acme Corp", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			h := parseEntryHeader(tt.line)
			assert.Equal(t, tt.role, h.role)
			assert.Equal(t, tt.company, h.company)
			assert.Equal(t, tt.location, h.location)
		})
	}
}

func TestIsLocation(t *testing.T) {
	assert.True(t, isLocation("Austin, TX"))
	assert.True(t, isLocation("Remote"))
	assert.False(t, isLocation("Senior Engineer, Google"))
	assert.False(t, isLocation("Acme"))
}
