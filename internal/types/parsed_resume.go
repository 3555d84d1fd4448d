// Package types provides type definitions for structured data used throughout the resume-importer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultSkillCategory is assigned to skills found outside a labelled category
const DefaultSkillCategory = "General"

// ParsedResume is the structured record reconstructed from resume text
type ParsedResume struct {
	PersonalInfo *PersonalInfo `json:"personalInfo,omitempty" validate:"omitempty"`
	Summary      *Summary      `json:"summary,omitempty" validate:"omitempty"`
	Experiences  []Experience  `json:"experiences" validate:"max=10,dive"`
	Education    []Education   `json:"education" validate:"max=5,dive"`
	Skills       []Skill       `json:"skills" validate:"max=50,dive"`
	Confidence   float64       `json:"confidence" validate:"gte=0,lte=1"`
}

// PersonalInfo holds contact and identity fields; every field is optional
type PersonalInfo struct {
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
	LinkedInURL  string `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	PortfolioURL string `json:"portfolioUrl,omitempty" validate:"omitempty,url"`
}

// IsEmpty reports whether no field is populated
func (p *PersonalInfo) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Name == "" && p.Role == "" && p.Email == "" && p.Phone == "" &&
		p.Location == "" && p.LinkedInURL == "" && p.PortfolioURL == ""
}

// Summary is the free-text professional summary
type Summary struct {
	Content string `json:"content" validate:"required"`
}

// Experience is a single work history entry.
// StartDate and EndDate use the "YYYY-MM" format; nil means unknown.
type Experience struct {
	Company     string  `json:"company" validate:"required"`
	Role        string  `json:"role" validate:"required"`
	Location    string  `json:"location,omitempty"`
	StartDate   *string `json:"startDate" validate:"omitempty,datetime=2006-01"`
	EndDate     *string `json:"endDate" validate:"omitempty,datetime=2006-01"`
	IsCurrent   bool    `json:"isCurrent"`
	Description string  `json:"description"`
	Order       int     `json:"order" validate:"gte=0"`
}

// Education is a single education entry
type Education struct {
	Institution    string `json:"institution" validate:"required"`
	Degree         string `json:"degree" validate:"required"`
	Field          string `json:"field,omitempty"`
	GraduationDate string `json:"graduationDate,omitempty" validate:"omitempty,datetime=2006-01"`
	Location       string `json:"location,omitempty"`
	Description    string `json:"description,omitempty"`
	Order          int    `json:"order" validate:"gte=0"`
}

// Skill is a single validated skill token
type Skill struct {
	Name     string `json:"name" validate:"required,max=50"`
	Category string `json:"category" validate:"required"`
	Order    int    `json:"order" validate:"gte=0"`
}

// SkillKey returns the uniqueness key used to deduplicate skills
func SkillKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewParsedResume returns an empty record with non-nil slices so it serializes as arrays
func NewParsedResume() *ParsedResume {
	return &ParsedResume{
		Experiences: []Experience{},
		Education:   []Education{},
		Skills:      []Skill{},
	}
}

// Validate checks struct constraints and the current-position invariant
func (r *ParsedResume) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	for i, exp := range r.Experiences {
		if exp.IsCurrent && exp.EndDate != nil {
			return &InvariantError{Field: "experiences", Index: i, Message: "current position must not have an end date"}
		}
	}
	return nil
}

// InvariantError reports a record that violates a cross-field rule
type InvariantError struct {
	Field   string
	Index   int
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s[%d]: %s", e.Field, e.Index, e.Message)
}
