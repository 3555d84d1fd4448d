// Package parsing reconstructs a structured resume record from the plain text
// of a resume document using line and keyword heuristics.
package parsing

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options tunes limits and heuristics of the parser
type Options struct {
	MinTextLength          int
	MaxExperiences         int
	MaxEducation           int
	MaxSkills              int
	SummaryMaxLength       int
	SkillFallbackThreshold int
	ExperienceScanLines    int
	SkillTiers             SkillTiers
}

// DefaultOptions returns the default parser options
func DefaultOptions() Options {
	return Options{
		MinTextLength:          100,
		MaxExperiences:         10,
		MaxEducation:           5,
		MaxSkills:              50,
		SummaryMaxLength:       1000,
		SkillFallbackThreshold: 5,
		ExperienceScanLines:    50,
		SkillTiers:             DefaultSkillTiers(),
	}
}

// Option configures a Parser
type Option func(*Options)

// WithMinTextLength sets the shortest normalized text accepted for parsing
func WithMinTextLength(n int) Option {
	return func(o *Options) {
		o.MinTextLength = n
	}
}

// WithLimits caps the number of experiences, education entries and skills
func WithLimits(experiences, education, skills int) Option {
	return func(o *Options) {
		o.MaxExperiences = experiences
		o.MaxEducation = education
		o.MaxSkills = skills
	}
}

// WithSummaryMaxLength caps the summary in runes
func WithSummaryMaxLength(n int) Option {
	return func(o *Options) {
		o.SummaryMaxLength = n
	}
}

// WithSkillFallbackThreshold sets the skill count below which the summary
// and experience text are scanned for known technologies
func WithSkillFallbackThreshold(n int) Option {
	return func(o *Options) {
		o.SkillFallbackThreshold = n
	}
}

// WithSkillTiers sets the skill validator word-count tiers
func WithSkillTiers(tiers SkillTiers) Option {
	return func(o *Options) {
		o.SkillTiers = tiers
	}
}

// Parser turns resume text into a ParsedResume. It holds no per-call state
// and is safe for concurrent use.
type Parser struct {
	opts Options
}

// New creates a parser with DefaultOptions modified by opts
func New(opts ...Option) *Parser {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Parser{opts: o}
}

// Options returns the parser's effective options
func (p *Parser) Options() Options {
	return p.opts
}

// Parse normalizes text and extracts every field. It fails only when the text
// is too short to be a resume or ctx is done; missing fields are left empty.
func (p *Parser) Parse(ctx context.Context, text string) (*types.ParsedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	normalized := ingestion.NormalizeText(text)
	if n := utf8.RuneCountInString(normalized); n < p.opts.MinTextLength {
		return nil, &EmptyDocumentError{Length: n, Minimum: p.opts.MinTextLength}
	}
	lines := strings.Split(normalized, "\n")

	var (
		info        types.PersonalInfo
		summary     *types.Summary
		experiences []types.Experience
		education   []types.Education
		skills      []types.Skill
	)

	// each extractor owns its result slot, so no locking is needed
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		info.Email = ExtractEmail(normalized)
		info.Phone = ExtractPhone(normalized)
		info.LinkedInURL = ExtractLinkedIn(normalized)
		info.PortfolioURL = ExtractPortfolio(normalized)
		info.Name = ExtractName(lines, info.Email)
		return nil
	})
	var role, location string
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		role = ExtractRole(lines)
		location = ExtractLocation(normalized)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		experiences = ExtractExperiences(lines, p.opts.MaxExperiences)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		education = ExtractEducation(lines, p.opts.MaxEducation)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		summary = ExtractSummary(lines, p.opts.SummaryMaxLength)
		var summaryText string
		if summary != nil {
			summaryText = summary.Content
		}
		skills = ExtractSkills(lines, summaryText, sectionLines(lines, SectionExperience), p.opts)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, &ParseError{Message: "extraction interrupted", Cause: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info.Role = role
	info.Location = location

	resume := types.NewParsedResume()
	if !info.IsEmpty() {
		resume.PersonalInfo = &info
	}
	resume.Summary = summary
	resume.Experiences = experiences
	resume.Education = education
	resume.Skills = skills
	resume.Confidence = Score(resume)

	zerolog.Ctx(ctx).Debug().
		Int("chars", len(normalized)).
		Bool("name", info.Name != "").
		Bool("email", info.Email != "").
		Bool("phone", info.Phone != "").
		Bool("role", info.Role != "").
		Int("experiences", len(experiences)).
		Int("education", len(education)).
		Int("skills", len(skills)).
		Float64("confidence", resume.Confidence).
		Dur("elapsed", time.Since(start)).
		Msg("resume parsed")

	return resume, nil
}

// ParseText parses text with default options and a background context
func ParseText(text string) (*types.ParsedResume, error) {
	return New().Parse(context.Background(), text)
}
