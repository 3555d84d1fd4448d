package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-importer/internal/types"
)

const (
	// minDescriptionLength is the shortest line kept as entry description
	minDescriptionLength = 10
	// maxHeaderFieldLength bounds lines that may fill a role or company
	maxHeaderFieldLength = 60
)

var (
	atSeparator      = regexp.MustCompile(`(?i)\s+at\s+`)
	pipeSeparator    = regexp.MustCompile(`\s+\|\s+`)
	bulletPrefix     = regexp.MustCompile(`^\s*(?:[-*>+~]|\d{1,2}[.)])\s+`)
	locationShape    = regexp.MustCompile(`^[A-Z][a-zA-Z.]+(?:[ \-][A-Z][a-zA-Z.]+)*,\s*(?:[A-Z]{2,}|[A-Z][a-z]+(?:\s[A-Z][a-z]+)*)$|^(?i:remote|hybrid|on-?site)$`)
	sentenceEnd      = regexp.MustCompile(`[.!?]$`)
	companySeparator = regexp.MustCompile(`\s+(?:-|–|—)\s+|,\s+`)
)

// entryHeader is what an entry delimiter line says about a job
type entryHeader struct {
	role     string
	company  string
	location string
	dates    dateRange
}

// isEntryDelimiter reports whether line starts a new experience entry
func isEntryDelimiter(line string) bool {
	if bulletPrefix.MatchString(line) && !bulletedTitleLine(line) {
		return false
	}
	if hasDatePattern(line) {
		return true
	}
	if pipeSeparator.MatchString(line) {
		return true
	}
	if loc := atSeparator.FindStringIndex(line); loc != nil {
		before := strings.TrimSpace(bulletPrefix.ReplaceAllString(line[:loc[0]], ""))
		words := wordsOf(before)
		if len(words) == 0 || len(words) > 6 || utf8.RuneCountInString(line) > 100 || sentenceEnd.MatchString(line) {
			return false
		}
		if pastTenseVerbSet[words[0]] {
			return false
		}
		return hasKeyword(before, roleKeywordSet) || isHeadingCase(before)
	}
	return false
}

// bulletedTitleLine reports whether a bullet line reads like a job title
// rather than an achievement that happens to mention dates or a separator.
func bulletedTitleLine(line string) bool {
	text := stripDates(bulletPrefix.ReplaceAllString(line, ""))
	words := wordsOf(text)
	if len(words) == 0 || len(words) > 6 || sentenceEnd.MatchString(text) || pastTenseVerbSet[words[0]] {
		return false
	}
	return hasKeyword(text, roleKeywordSet) || isHeadingCase(text)
}

// parseEntryHeader splits a delimiter line into role, company, location and dates
func parseEntryHeader(line string) entryHeader {
	h := entryHeader{dates: parseDateRange(line)}

	if loc := atSeparator.FindStringIndex(line); loc != nil && !pipeSeparator.MatchString(line[:loc[0]]) {
		h.role = stripDates(line[:loc[0]])
		company := stripDates(line[loc[1]:])
		// "Google | Mountain View, CA" or "Google, Mountain View, CA"
		if parts := pipeSeparator.Split(company, -1); len(parts) > 1 {
			company = strings.TrimSpace(parts[0])
			for _, p := range parts[1:] {
				if p = strings.TrimSpace(p); isLocation(p) {
					h.location = p
				}
			}
		}
		h.company = company
		return h
	}

	if pipeSeparator.MatchString(line) {
		var fields []string
		for _, part := range pipeSeparator.Split(line, -1) {
			part = stripDates(part)
			if part == "" {
				continue
			}
			if h.location == "" && isLocation(part) {
				h.location = part
				continue
			}
			fields = append(fields, part)
		}
		switch len(fields) {
		case 0:
		case 1:
			assignByKeyword(&h, fields[0])
		default:
			first, second := fields[0], fields[1]
			if !hasKeyword(first, roleKeywordSet) && hasKeyword(second, roleKeywordSet) {
				h.role, h.company = second, first
			} else {
				h.role, h.company = first, second
			}
		}
		return h
	}

	rest := stripDates(line)
	if rest == "" {
		return h
	}
	// "Senior Engineer - Google" or "Senior Engineer, Google"
	if parts := companySeparator.Split(rest, 2); len(parts) == 2 {
		left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		switch {
		case hasKeyword(left, roleKeywordSet) && !hasKeyword(right, roleKeywordSet):
			h.role, h.company = left, right
			return h
		case hasKeyword(right, roleKeywordSet) && !hasKeyword(left, roleKeywordSet):
			h.role, h.company = right, left
			return h
		case isLocation(rest):
			h.location = rest
			return h
		}
	}
	assignByKeyword(&h, rest)
	return h
}

// isLocation reports whether s is shaped like "City, ST" and names no role or organization
func isLocation(s string) bool {
	return locationShape.MatchString(s) && !hasKeyword(s, roleKeywordSet) && !hasKeyword(s, institutionKeywordSet)
}

// assignByKeyword treats text as a role when it has a role keyword, else a company
func assignByKeyword(h *entryHeader, text string) {
	if hasKeyword(text, roleKeywordSet) {
		h.role = text
	} else {
		h.company = text
	}
}

// entryState is the experience builder state
type entryState int

const (
	noEntry entryState = iota
	buildingEntry
)

// experienceBuilder holds completed entries and at most one entry in flight
type experienceBuilder struct {
	state       entryState
	current     types.Experience
	description []string
	hasDates    bool
	done        []types.Experience
	limit       int
}

func newExperienceBuilder(limit int) *experienceBuilder {
	return &experienceBuilder{limit: limit, done: []types.Experience{}}
}

func (b *experienceBuilder) full() bool {
	return b.limit > 0 && len(b.done) >= b.limit
}

// start begins a new in-flight entry from a delimiter line
func (b *experienceBuilder) start(h entryHeader) {
	b.flush()
	b.state = buildingEntry
	b.current = types.Experience{Role: h.role, Company: h.company, Location: h.location}
	b.description = nil
	b.hasDates = false
	b.setDates(h.dates)
}

func (b *experienceBuilder) setDates(d dateRange) {
	if d.empty() {
		return
	}
	b.current.StartDate = d.Start
	b.current.EndDate = d.End
	b.current.IsCurrent = d.Current
	if d.Current {
		b.current.EndDate = nil
	}
	b.hasDates = true
}

// canMerge reports whether h only fills gaps in the in-flight entry
func (b *experienceBuilder) canMerge(h entryHeader) bool {
	if b.state != buildingEntry || len(b.description) > 0 {
		return false
	}
	if h.role != "" && b.current.Role != "" {
		return false
	}
	if h.company != "" && b.current.Company != "" {
		return false
	}
	if !h.dates.empty() && b.hasDates {
		return false
	}
	return true
}

func (b *experienceBuilder) merge(h entryHeader) {
	if h.role != "" {
		b.current.Role = h.role
	}
	if h.company != "" {
		b.current.Company = h.company
	}
	if h.location != "" && b.current.Location == "" {
		b.current.Location = h.location
	}
	if !b.hasDates {
		b.setDates(h.dates)
	}
}

// addLine handles a non-delimiter line: it fills a missing header field while
// the entry has no description yet, otherwise it becomes description.
func (b *experienceBuilder) addLine(line string) {
	text := strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
	if text == "" {
		return
	}
	headerLike := (utf8.RuneCountInString(text) <= maxHeaderFieldLength && !sentenceEnd.MatchString(text) && !strings.Contains(text, ",")) ||
		isLocation(text)

	if b.state == noEntry {
		if headerLike && !isLocation(text) {
			var h entryHeader
			assignByKeyword(&h, text)
			b.start(h)
		}
		return
	}

	if len(b.description) == 0 && headerLike {
		switch {
		case b.current.Location == "" && isLocation(text):
			b.current.Location = text
			return
		case b.current.Role == "" && (hasKeyword(text, roleKeywordSet) || b.current.Company != ""):
			b.current.Role = text
			return
		case b.current.Company == "":
			b.current.Company = text
			return
		}
	}

	if utf8.RuneCountInString(text) >= minDescriptionLength {
		b.description = append(b.description, text)
	}
}

// flush commits the in-flight entry when it has both role and company
func (b *experienceBuilder) flush() {
	if b.state != buildingEntry {
		return
	}
	b.state = noEntry
	if b.full() {
		return
	}
	exp := b.current
	exp.Role = strings.TrimSpace(exp.Role)
	exp.Company = strings.TrimSpace(exp.Company)
	if exp.Role == "" || exp.Company == "" {
		return
	}
	exp.Description = strings.Join(b.description, "\n")
	exp.Order = len(b.done)
	b.done = append(b.done, exp)
}

// ExtractExperiences parses the experience section into at most limit
// entries in document order. A limit of zero or less means no cap.
func ExtractExperiences(lines []string, limit int) []types.Experience {
	b := newExperienceBuilder(limit)

	for _, line := range sectionLines(lines, SectionExperience) {
		if b.full() {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !isEntryDelimiter(line) {
			b.addLine(line)
			continue
		}

		h := parseEntryHeader(line)
		if h.role == "" && h.company == "" {
			// date-only line, usually under a "Title / Company" pair
			if b.state == buildingEntry && !b.hasDates {
				b.merge(h)
				continue
			}
			if b.state == buildingEntry && len(b.description) == 0 && h.location != "" && b.current.Location == "" {
				b.current.Location = h.location
				continue
			}
			b.start(h)
			continue
		}
		if b.canMerge(h) {
			b.merge(h)
			continue
		}
		b.start(h)
	}
	b.flush()

	return b.done
}
