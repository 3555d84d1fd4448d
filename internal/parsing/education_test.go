package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEducation_DegreeThenInstitution(t *testing.T) {
	lines := strings.Split(`Education
B.S. in Computer Science
Stanford University, Stanford, CA 2016
Skills`, "\n")

	edu := ExtractEducation(lines, 5)
	require.Len(t, edu, 1)
	assert.Equal(t, "Stanford University", edu[0].Institution)
	assert.Equal(t, "B.S.", edu[0].Degree)
	assert.Equal(t, "Computer Science", edu[0].Field)
	assert.Equal(t, "2016-05", edu[0].GraduationDate)
	assert.Equal(t, "Stanford, CA", edu[0].Location)
	assert.Equal(t, 0, edu[0].Order)
}

func TestExtractEducation_SingleLine(t *testing.T) {
	lines := []string{"Education", "B.S. in Computer Science, Stanford University, 2018"}

	edu := ExtractEducation(lines, 5)
	require.Len(t, edu, 1)
	assert.Equal(t, "Stanford University", edu[0].Institution)
	assert.Equal(t, "B.S.", edu[0].Degree)
	assert.Equal(t, "Computer Science", edu[0].Field)
	assert.Equal(t, "2018-05", edu[0].GraduationDate)
}

func TestExtractEducation_InstitutionBeforeDegree(t *testing.T) {
	lines := []string{"Education", "University of Washington", "Master of Science in Data Science 2021"}

	edu := ExtractEducation(lines, 5)
	require.Len(t, edu, 1)
	assert.Equal(t, "University of Washington", edu[0].Institution)
	assert.Equal(t, "Master of Science", edu[0].Degree)
	assert.Equal(t, "Data Science", edu[0].Field)
	assert.Equal(t, "2021-05", edu[0].GraduationDate)
}

func TestExtractEducation_DetailLines(t *testing.T) {
	lines := strings.Split(`Education
BS in Mathematics
MIT Institute of Technology
- Thesis on graph coloring
MBA
Wharton School, 2020`, "\n")

	edu := ExtractEducation(lines, 5)
	require.Len(t, edu, 2)
	assert.Equal(t, "BS", edu[0].Degree)
	assert.Equal(t, "Mathematics", edu[0].Field)
	assert.Equal(t, "Thesis on graph coloring", edu[0].Description)
	assert.Equal(t, "MBA", edu[1].Degree)
	assert.Equal(t, "Wharton School", edu[1].Institution)
	assert.Equal(t, "2020-05", edu[1].GraduationDate)
	assert.Equal(t, 1, edu[1].Order)
}

func TestExtractEducation_DegreeWithoutInstitutionSkipped(t *testing.T) {
	lines := []string{"Education", "Bachelor of Arts", "Graduated with honors in 2010"}

	edu := ExtractEducation(lines, 5)
	assert.NotNil(t, edu)
	assert.Empty(t, edu)
}

func TestExtractEducation_Limit(t *testing.T) {
	lines := []string{
		"Education",
		"BA in History, Yale University",
		"MA in History, Brown University",
		"PhD in History, Columbia University",
	}

	edu := ExtractEducation(lines, 2)
	require.Len(t, edu, 2)
	assert.Equal(t, "Yale University", edu[0].Institution)
	assert.Equal(t, "Brown University", edu[1].Institution)
}

func TestDegreePattern(t *testing.T) {
	assert.True(t, DegreePattern.MatchString("Bachelor's in Economics"))
	assert.True(t, DegreePattern.MatchString("Ph.D. Physics"))
	assert.True(t, DegreePattern.MatchString("MSc Robotics"))
	assert.False(t, DegreePattern.MatchString("ms word expert"))
	assert.False(t, DegreePattern.MatchString("Boston University"))
}

func TestSplitDegree(t *testing.T) {
	tests := []struct {
		seg    string
		degree string
		field  string
	}{
		{"Bachelor of Arts", "Bachelor of Arts", ""},
		{"Bachelor of Science", "Bachelor of Science", ""},
		{"Master of Business Administration", "Master of Business Administration", ""},
		{"Bachelor of Science in Computer Science", "Bachelor of Science", "Computer Science"},
		{"Master of Computer Science", "Master of Computer Science", "Computer Science"},
		{"BS in Mathematics", "BS", "Mathematics"},
		{"MBA", "MBA", ""},
	}

	for _, tt := range tests {
		t.Run(tt.seg, func(t *testing.T) {
			degree, field := splitDegree(tt.seg)
			assert.Equal(t, tt.degree, degree)
			assert.Equal(t, tt.field, field)
		})
	}
}
