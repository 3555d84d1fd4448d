package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SectionKind identifies a resume section
type SectionKind int

const (
	SectionNone SectionKind = iota
	SectionSummary
	SectionExperience
	SectionEducation
	SectionSkills
	SectionProjects
	SectionCertifications
	SectionAwards
	SectionLanguages
	SectionReferences
	SectionInterests
)

var sectionNames = map[SectionKind]string{
	SectionNone:           "none",
	SectionSummary:        "summary",
	SectionExperience:     "experience",
	SectionEducation:      "education",
	SectionSkills:         "skills",
	SectionProjects:       "projects",
	SectionCertifications: "certifications",
	SectionAwards:         "awards",
	SectionLanguages:      "languages",
	SectionReferences:     "references",
	SectionInterests:      "interests",
}

func (k SectionKind) String() string {
	if name, ok := sectionNames[k]; ok {
		return name
	}
	return "unknown"
}

// SectionKeywords lists the header phrases of each section. The first phrase
// is the primary keyword and may also close a short header ("Relevant Experience").
var SectionKeywords = map[SectionKind][]string{
	SectionSummary: {
		"summary", "professional summary", "career summary", "profile",
		"professional profile", "objective", "career objective", "about me", "about",
		"overview",
	},
	SectionExperience: {
		"experience", "work experience", "professional experience", "employment",
		"employment history", "work history", "career history", "relevant experience",
	},
	SectionEducation: {
		"education", "academic background", "academic", "academics",
		"education and training", "degree", "degrees",
	},
	SectionSkills: {
		"skills", "technical skills", "core competencies", "competencies",
		"technologies", "tech stack", "key skills", "tools", "expertise",
	},
	SectionProjects: {"projects", "personal projects", "side projects", "key projects"},
	SectionCertifications: {
		"certifications", "certificates", "certification", "licenses",
		"licenses and certifications",
	},
	SectionAwards:     {"awards", "honors", "achievements", "honors and awards"},
	SectionLanguages:  {"languages", "spoken languages"},
	SectionReferences: {"references"},
	SectionInterests:  {"interests", "hobbies", "volunteering", "volunteer experience"},
}

// sectionOrder fixes the lookup order so header matching is deterministic
var sectionOrder = []SectionKind{
	SectionSummary, SectionExperience, SectionEducation, SectionSkills,
	SectionProjects, SectionCertifications, SectionAwards, SectionLanguages,
	SectionReferences, SectionInterests,
}

const maxHeaderLength = 40

// matchHeader reports whether line is a section header. rest is any content
// that followed the header on the same line after a colon.
func matchHeader(line string) (kind SectionKind, rest string, ok bool) {
	head := strings.TrimSpace(line)
	if i := strings.Index(head, ":"); i >= 0 {
		rest = strings.TrimSpace(head[i+1:])
		head = head[:i]
	}
	head = strings.TrimSpace(strings.Trim(head, "-=*#_ "))
	if head == "" || utf8.RuneCountInString(head) > maxHeaderLength {
		return SectionNone, "", false
	}
	if strings.ContainsAny(head, "@0123456789.,|") {
		return SectionNone, "", false
	}

	lower := strings.ToLower(strings.ReplaceAll(head, "&", "and"))
	lower = strings.Join(strings.Fields(lower), " ")
	words := strings.Fields(lower)
	if len(words) > 5 {
		return SectionNone, "", false
	}

	for _, kind := range sectionOrder {
		phrases := SectionKeywords[kind]
		for i, phrase := range phrases {
			if lower == phrase {
				return kind, rest, true
			}
			if strings.HasPrefix(lower, phrase+" and ") || strings.HasPrefix(lower, phrase+" (") ||
				strings.HasPrefix(lower, phrase+" /") {
				return kind, rest, true
			}
			if i == 0 && len(words) <= 3 && strings.HasSuffix(lower, " "+phrase) && isHeadingCase(head) {
				return kind, rest, true
			}
		}
	}
	return SectionNone, "", false
}

// isHeadingCase reports whether every word starts with an upper-case letter
func isHeadingCase(s string) bool {
	for _, w := range strings.Fields(s) {
		r, _ := utf8.DecodeRuneInString(w)
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// isSectionHeader reports whether line is a bare section header
func isSectionHeader(line string) bool {
	_, rest, ok := matchHeader(line)
	return ok && rest == ""
}

// segmentState is the section segmenter state
type segmentState int

const (
	stateOutside segmentState = iota
	stateInSection
)

// sectionLines returns the body lines of the first section of the given
// kind. The section ends at a header of any other section, with or without
// inline content. Inline content ("Skills: Go, SQL") becomes the first body
// line of the section it opens. A repeated header of the section being read
// is kept as a body line when it carries content.
func sectionLines(lines []string, kind SectionKind) []string {
	state := stateOutside
	var body []string

	for _, line := range lines {
		header, rest, isHeader := matchHeader(line)

		switch state {
		case stateOutside:
			if isHeader && header == kind {
				state = stateInSection
				if rest != "" {
					body = append(body, rest)
				}
			}
		case stateInSection:
			// "Languages:" inside a skills block is a category, not a new section
			nested := kind == SectionSkills && header == SectionLanguages
			if isHeader && header != kind && !nested {
				return body
			}
			if isHeader && header == kind && rest == "" {
				// repeated header of the same section ("Skills" then "Tools:")
				if strings.HasSuffix(strings.TrimSpace(line), ":") {
					body = append(body, line)
				}
				continue
			}
			body = append(body, line)
		}
	}
	return body
}
