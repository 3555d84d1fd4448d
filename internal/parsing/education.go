package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-importer/internal/types"
)

var (
	// DegreePattern matches degree names; short abbreviations are case sensitive
	DegreePattern = regexp.MustCompile(`(?i:\b(?:bachelor|master|doctor(?:ate)?|associate|diploma)(?:'?s)?\b|\bph\.?\s?d\b|\b[bm]\.\s?(?:s|a|sc|eng|tech)\b\.?)|\b(?:BS|BA|MS|BSc|MSc|MBA|PhD|BEng|MEng|BTech|MTech|BBA|BFA|MFA)\b`)

	// InstitutionPattern matches lines naming a school
	InstitutionPattern = regexp.MustCompile(`(?i)\b(?:university|college|institute|school|academy|polytechnic|universit[éy]|universidad)\b`)

	degreeFieldPattern = regexp.MustCompile(`(?i)\s(?:in|of)\s+(.+)$`)
	segmentSeparator   = regexp.MustCompile(`\s*(?:,|\||\s-\s|\s–\s|\s—\s)\s*`)
	fieldTerminator    = regexp.MustCompile(`\s*(?:,|\||\(|\s-\s|\s–\s|\s—\s|\b(?:19|20)\d{2}\b|\bGPA\b).*$`)
)

// degreeTypes complete a degree name after "of" and are not fields of study
var degreeTypes = newKeywordSet([]string{
	"arts", "science", "sciences", "applied science", "fine arts", "liberal arts",
	"engineering", "technology", "business administration", "laws", "philosophy",
	"education", "music", "commerce", "architecture", "public health", "public administration",
})

// educationEntry is an education record being assembled
type educationEntry struct {
	degree      string
	field       string
	institution string
	location    string
	graduation  string
	description []string
}

// ExtractEducation parses the education section into at most limit entries.
// An entry needs both a degree line and an institution.
func ExtractEducation(lines []string, limit int) []types.Education {
	body := nonEmpty(sectionLines(lines, SectionEducation))
	out := []types.Education{}
	used := make(map[int]bool)

	for i := 0; i < len(body); i++ {
		if limit > 0 && len(out) >= limit {
			break
		}
		line := body[i]
		if !DegreePattern.MatchString(line) || used[i] {
			continue
		}

		entry := parseDegreeLine(line)
		next := i + 1
		switch {
		case entry.institution != "":
		case next < len(body) && isInstitutionLine(body[next]):
			applyInstitutionLine(&entry, body[next])
			used[next] = true
			next++
		case i > 0 && !used[i-1] && isInstitutionLine(body[i-1]):
			applyInstitutionLine(&entry, body[i-1])
			used[i-1] = true
		}
		if entry.institution == "" || entry.degree == "" {
			continue
		}

		// trailing detail lines up to the next degree or institution
		for ; next < len(body); next++ {
			if DegreePattern.MatchString(body[next]) || isInstitutionLine(body[next]) {
				break
			}
			if utf8.RuneCountInString(body[next]) >= minDescriptionLength {
				entry.description = append(entry.description, strings.TrimSpace(bulletPrefix.ReplaceAllString(body[next], "")))
			}
			used[next] = true
		}

		out = append(out, types.Education{
			Institution:    entry.institution,
			Degree:         entry.degree,
			Field:          entry.field,
			GraduationDate: entry.graduation,
			Location:       entry.location,
			Description:    strings.Join(entry.description, "\n"),
			Order:          len(out),
		})
	}
	return out
}

func isInstitutionLine(line string) bool {
	return InstitutionPattern.MatchString(line) && !DegreePattern.MatchString(line)
}

// parseDegreeLine reads degree, field, year and an inline institution from a
// line such as "B.S. in Computer Science, Stanford University, 2018".
func parseDegreeLine(line string) educationEntry {
	var entry educationEntry
	entry.graduation = graduationDate(line)

	segments := segmentSeparator.Split(stripDates(line), -1)
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		switch {
		case entry.degree == "" && DegreePattern.MatchString(seg):
			entry.degree, entry.field = splitDegree(seg)
		case entry.institution == "" && InstitutionPattern.MatchString(seg):
			entry.institution = seg
		case entry.degree != "" && entry.field == "" && entry.institution == "" && !isLocation(seg) && !strings.EqualFold(seg, "GPA"):
			// "B.S., Computer Science"
			entry.field = seg
		}
	}
	return entry
}

// splitDegree separates "Bachelor of Science in Computer Science" into the
// degree and its field of study.
func splitDegree(seg string) (degree, field string) {
	lower := strings.ToLower(seg)
	if i := strings.Index(lower, " in "); i >= 0 {
		return strings.TrimSpace(seg[:i]), cleanField(seg[i+len(" in "):])
	}
	if m := degreeFieldPattern.FindStringSubmatchIndex(seg); m != nil {
		field := cleanField(seg[m[2]:m[3]])
		if degreeTypes[strings.ToLower(field)] {
			// "Bachelor of Arts" names the degree, not a field
			return strings.TrimSpace(seg), ""
		}
		return strings.TrimSpace(seg), field
	}
	return strings.TrimSpace(seg), ""
}

func cleanField(s string) string {
	s = fieldTerminator.ReplaceAllString(s, "")
	return strings.Trim(strings.TrimSpace(s), ".,;:-")
}

// applyInstitutionLine reads "Stanford University, Stanford, CA 2018"
func applyInstitutionLine(entry *educationEntry, line string) {
	if entry.graduation == "" {
		entry.graduation = graduationDate(line)
	}
	parts := segmentSeparator.Split(stripDates(line), -1)
	var rest []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if entry.institution == "" && InstitutionPattern.MatchString(p) {
			entry.institution = p
			continue
		}
		rest = append(rest, p)
	}
	if entry.institution != "" && len(rest) > 0 && len(rest) <= 3 {
		entry.location = strings.Join(rest, ", ")
	}
}

func nonEmpty(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
