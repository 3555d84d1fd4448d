package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-importer/internal/types"
)

const (
	// maxCategoryHeaderLength bounds "Languages:" style category lines
	maxCategoryHeaderLength = 50
	// proseLineLength is the length above which a comma-free line may be prose
	proseLineLength = 80
)

var skillSplitPattern = regexp.MustCompile(`\s*[,|;•]\s*|\s+[-–/]\s+`)

// skillAccumulator collects skills under the current category, deduplicating
// by key and stopping at the cap.
type skillAccumulator struct {
	validator SkillValidator
	limit     int
	pending   []string
	skills    []types.Skill
	seen      map[string]bool
}

func newSkillAccumulator(validator SkillValidator, limit int) *skillAccumulator {
	return &skillAccumulator{
		validator: validator,
		limit:     limit,
		skills:    []types.Skill{},
		seen:      make(map[string]bool),
	}
}

func (a *skillAccumulator) full() bool {
	return a.limit > 0 && len(a.skills) >= a.limit
}

// flush validates pending tokens and emits them under category
func (a *skillAccumulator) flush(category string) {
	for _, token := range a.pending {
		a.add(token, category, true)
	}
	a.pending = a.pending[:0]
}

func (a *skillAccumulator) add(token, category string, validate bool) {
	if a.full() {
		return
	}
	token = strings.Trim(strings.TrimSpace(token), "*-·")
	token = strings.TrimSpace(token)
	if validate && !a.validator.IsSkill(token) {
		return
	}
	name := NormalizeSkillName(token)
	key := types.SkillKey(name)
	if name == "" || a.seen[key] {
		return
	}
	if category == "" {
		category = types.DefaultSkillCategory
	}
	a.seen[key] = true
	a.skills = append(a.skills, types.Skill{Name: name, Category: category, Order: len(a.skills)})
}

// ExtractSkills reads the skills section and, when it yields fewer than
// opts.SkillFallbackThreshold skills, adds vocabulary terms found in the
// summary and the head of the experience section.
func ExtractSkills(lines []string, summary string, experienceLines []string, opts Options) []types.Skill {
	acc := newSkillAccumulator(NewSkillValidator(opts.SkillTiers), opts.MaxSkills)
	category := types.DefaultSkillCategory

	for _, line := range sectionLines(lines, SectionSkills) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if looksLikeProse(line) {
			break
		}

		if isCategoryHeader(line) {
			acc.flush(category)
			category = strings.TrimSpace(strings.TrimSuffix(line, ":"))
			continue
		}
		if name, rest, ok := inlineCategory(line); ok {
			acc.flush(category)
			acc.pending = append(acc.pending, splitSkillTokens(rest)...)
			acc.flush(name)
			continue
		}
		acc.pending = append(acc.pending, splitSkillTokens(line)...)
	}
	acc.flush(category)

	if len(acc.skills) < opts.SkillFallbackThreshold {
		for _, hit := range findTechTerms(summary) {
			acc.add(hit.name, types.DefaultSkillCategory, false)
		}
		scan := experienceLines
		if opts.ExperienceScanLines > 0 && len(scan) > opts.ExperienceScanLines {
			scan = scan[:opts.ExperienceScanLines]
		}
		for _, hit := range findTechTerms(strings.Join(scan, "\n")) {
			acc.add(hit.name, types.DefaultSkillCategory, false)
		}
	}

	return acc.skills
}

// looksLikeProse reports a long comma-free line with sentence connectives,
// typically summary text running into the skills block.
func looksLikeProse(line string) bool {
	if utf8.RuneCountInString(line) <= proseLineLength || strings.Contains(line, ",") {
		return false
	}
	for _, w := range wordsOf(line) {
		if connectiveSet[w] {
			return true
		}
	}
	return false
}

func isCategoryHeader(line string) bool {
	return strings.HasSuffix(line, ":") && utf8.RuneCountInString(line) < maxCategoryHeaderLength
}

// inlineCategory splits "Languages: Go, Python" into its category and list
func inlineCategory(line string) (name, rest string, ok bool) {
	i := strings.Index(line, ":")
	if i <= 0 || i >= maxCategoryHeaderLength-10 {
		return "", "", false
	}
	name = strings.TrimSpace(line[:i])
	rest = strings.TrimSpace(line[i+1:])
	if rest == "" || strings.HasPrefix(rest, "/") || strings.ContainsAny(name, "/@") || len(strings.Fields(name)) > 4 {
		return "", "", false
	}
	return name, rest, true
}

func splitSkillTokens(line string) []string {
	parts := skillSplitPattern.Split(line, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
