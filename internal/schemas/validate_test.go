package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-importer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func validRecord() *types.ParsedResume {
	r := types.NewParsedResume()
	r.PersonalInfo = &types.PersonalInfo{
		Name:        "Jane Smith",
		Email:       "jane@example.com",
		LinkedInURL: "https://linkedin.com/in/janesmith",
	}
	r.Summary = &types.Summary{Content: "Backend engineer."}
	r.Experiences = []types.Experience{
		{Company: "Acme", Role: "Engineer", StartDate: strPtr("2020-01"), IsCurrent: true},
		{Company: "Globex", Role: "Engineer", StartDate: strPtr("2016-06"), EndDate: strPtr("2019-12"), Order: 1},
	}
	r.Education = []types.Education{{Institution: "MIT", Degree: "BS", GraduationDate: "2016-05"}}
	r.Skills = []types.Skill{{Name: "Go", Category: "General"}}
	r.Confidence = 0.7
	return r
}

func TestValidateRecord_Valid(t *testing.T) {
	assert.NoError(t, ValidateRecord(validRecord()))
}

func TestValidateRecord_EmptyRecord(t *testing.T) {
	assert.NoError(t, ValidateRecord(types.NewParsedResume()))
}

func TestValidateRecord_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *types.ParsedResume)
		field  string
	}{
		{
			name:   "Confidence above one",
			mutate: func(r *types.ParsedResume) { r.Confidence = 1.5 },
			field:  "confidence",
		},
		{
			name:   "Current position with end date",
			mutate: func(r *types.ParsedResume) { r.Experiences[0].EndDate = strPtr("2021-01") },
			field:  "experiences.0.endDate",
		},
		{
			name:   "Malformed start date",
			mutate: func(r *types.ParsedResume) { r.Experiences[1].StartDate = strPtr("June 2016") },
			field:  "experiences.1.startDate",
		},
		{
			name:   "Missing company",
			mutate: func(r *types.ParsedResume) { r.Experiences[0].Company = "" },
			field:  "experiences.0.company",
		},
		{
			name:   "Invalid email",
			mutate: func(r *types.ParsedResume) { r.PersonalInfo.Email = "not-an-email" },
			field:  "personalInfo.email",
		},
		{
			name: "Too many skills",
			mutate: func(r *types.ParsedResume) {
				for i := 0; i < 51; i++ {
					r.Skills = append(r.Skills, types.Skill{Name: "Go", Category: "General", Order: i})
				}
			},
			field: "skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(r)

			err := ValidateRecord(r)
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateRecordJSON_MissingArrays(t *testing.T) {
	err := ValidateRecordJSON([]byte(`{"confidence": 0.5}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Len(t, validationErr.Errors, 3)
}

func TestValidateRecordJSON_Malformed(t *testing.T) {
	err := ValidateRecordJSON([]byte(`{ invalid json }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load record JSON")
}

func TestValidateRecordFile(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"experiences": [], "education": [], "skills": [], "confidence": 0}`), 0644))

	assert.NoError(t, ValidateRecordFile(valid))

	err := ValidateRecordFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`
	assert.NoError(t, ValidateJSONString(schema, `{"name": "Go"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	err := ValidateJSONString(schema, `{"name": 5}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "confidence", Message: "Must be less than or equal to 1"},
		{Field: "(root)", Message: "skills is required"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. confidence: Must be less than or equal to 1")
	assert.Contains(t, msg, "2. (root): skills is required")
}
