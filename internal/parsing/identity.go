package parsing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minNameTokens = 2
	maxNameTokens = 5
	// nameLookback is how much text before the email is searched for a name
	nameLookback = 200
	// maxRoleWords bounds an unlabelled header line accepted as a role
	maxRoleWords = 8
)

var (
	nameLabelPattern  = regexp.MustCompile(`(?i)^\s*(?:full\s+)?name\s*:\s*(.+)$`)
	roleLabelPattern  = regexp.MustCompile(`(?i)^\s*(?:job\s+)?(?:title|role|position)\s*:\s*(.+)$`)
	urlLikePattern    = regexp.MustCompile(`(?i)https?://|www\.|linkedin\.com|github\.com|\.(?:com|io|dev|app|me)\b`)
	locationPattern   = regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?:[ \-][A-Z][a-zA-Z]+)*,\s*(?:[A-Z]{2,}|[A-Z][a-z]+(?:\s[A-Z][a-z]+)*)(?:,\s*[A-Z][a-zA-Z]+(?:\s[A-Z][a-zA-Z]+)*)?\b`)
	nameNoisePattern  = regexp.MustCompile(`[0-9@/:#$%&*+=<>_\\]`)
	nonNameWords      = newKeywordSet([]string{"resume", "curriculum", "vitae", "cv", "page", "contact", "references"})
	compositeSplitter = regexp.MustCompile(`\s*\|\s*`)
)

// ExtractName finds the candidate's name in the document header. email, when
// known, anchors a fallback search in the text just before it.
func ExtractName(lines []string, email string) string {
	header := headerLines(lines, headerWindow)
	return cascade("", nil,
		func(string) (string, bool) { return nameFromHeader(header, looksLikeName) },
		func(string) (string, bool) { return nameFromHeader(header, looksLikeLowercaseName) },
		func(string) (string, bool) { return nameBeforeEmail(lines, email) },
		func(string) (string, bool) {
			return firstLineMatch(lines, func(line string) (string, bool) {
				m := nameLabelPattern.FindStringSubmatch(line)
				if m == nil {
					return "", false
				}
				name := strings.TrimSpace(m[1])
				if n := len(strings.Fields(name)); n == 0 || n > maxNameTokens || nameNoisePattern.MatchString(name) {
					return "", false
				}
				return displayName(name), true
			})
		},
	)
}

func nameFromHeader(header []string, accept func(s string, composite bool) bool) (string, bool) {
	for _, line := range header {
		if isSectionHeader(line) {
			break
		}
		candidate, composite := line, false
		if strings.Contains(line, "|") {
			candidate, composite = strings.TrimSpace(compositeSplitter.Split(line, 2)[0]), true
		} else if isContactLine(line) {
			continue
		}
		if accept(candidate, composite) {
			return displayName(candidate), true
		}
	}
	return "", false
}

// nameBeforeEmail searches the lines in the text window preceding the email
func nameBeforeEmail(lines []string, email string) (string, bool) {
	if email == "" {
		return "", false
	}
	text := strings.Join(lines, "\n")
	i := strings.Index(strings.ToLower(text), strings.ToLower(email))
	if i < 0 {
		// the email may have been repaired; anchor on its local part
		at := strings.Index(email, "@")
		i = strings.Index(strings.ToLower(text), strings.ToLower(email[:at]))
		if i < 0 {
			return "", false
		}
	}
	start := i - nameLookback
	if start < 0 {
		start = 0
	}
	window := strings.Split(text[start:i], "\n")
	for j := len(window) - 1; j >= 0; j-- {
		candidate := strings.TrimSpace(window[j])
		composite := false
		if strings.Contains(candidate, "|") {
			candidate, composite = strings.TrimSpace(compositeSplitter.Split(candidate, 2)[0]), true
		}
		if looksLikeName(candidate, composite) {
			return displayName(candidate), true
		}
	}
	return "", false
}

// looksLikeName accepts 2 to 5 capitalized tokens that are not a header,
// contact detail or, outside composite lines, a job title.
func looksLikeName(s string, composite bool) bool {
	s = strings.TrimSpace(s)
	tokens := strings.Fields(s)
	if len(tokens) < minNameTokens || len(tokens) > maxNameTokens {
		return false
	}
	if nameNoisePattern.MatchString(s) || strings.Contains(s, ",") || strings.HasSuffix(s, ".") {
		return false
	}
	if _, _, ok := matchHeader(s); ok {
		return false
	}
	if !composite && hasKeyword(s, roleKeywordSet) {
		return false
	}
	if hasKeyword(s, nonNameWords) {
		return false
	}

	capitalized, tech := 0, 0
	for i, tok := range tokens {
		if _, ok := TechVocabulary[strings.ToLower(tok)]; ok {
			tech++
		}
		r, _ := utf8.DecodeRuneInString(tok)
		if !unicode.IsLetter(r) {
			return false
		}
		if unicode.IsUpper(r) {
			capitalized++
		} else if i == 0 {
			return false
		}
	}
	return capitalized >= minNameTokens && tech < 2
}

// looksLikeLowercaseName accepts an all-lowercase name such as "jane smith"
// under the same rules as looksLikeName once it is title-cased.
func looksLikeLowercaseName(s string, composite bool) bool {
	s = strings.TrimSpace(s)
	if s != strings.ToLower(s) || s == strings.ToUpper(s) {
		return false
	}
	for _, w := range wordsOf(s) {
		if stopWordSet[w] || connectiveSet[w] || leadingConnectiveSet[w] {
			return false
		}
	}
	return looksLikeName(displayName(s), composite)
}

// displayName converts an all-caps or all-lowercase name to title case
func displayName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s != strings.ToUpper(s) && s != strings.ToLower(s) {
		return s
	}
	var b strings.Builder
	upperNext := true
	for _, r := range strings.ToLower(s) {
		if upperNext && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
		upperNext = r == ' ' || r == '-' || r == '\''
	}
	return b.String()
}

// isContactLine reports lines carrying an email, phone or URL
func isContactLine(line string) bool {
	return strings.Contains(line, "@") || urlLikePattern.MatchString(line) || ExtractPhone(line) != ""
}

// ExtractRole finds the professional title in the document header
func ExtractRole(lines []string) string {
	header := headerLines(lines, headerWindow)
	return cascade("", nil,
		func(string) (string, bool) { return roleFromCompositeLine(header) },
		func(string) (string, bool) { return roleFromHeader(header) },
		func(string) (string, bool) { return roleFromFirstExperience(lines) },
		func(string) (string, bool) {
			return firstLineMatch(lines, func(line string) (string, bool) {
				m := roleLabelPattern.FindStringSubmatch(line)
				if m == nil {
					return "", false
				}
				role := stripDates(m[1])
				return role, role != ""
			})
		},
	)
}

// roleFromCompositeLine takes the second segment of "Name | Role | Stack"
func roleFromCompositeLine(header []string) (string, bool) {
	for _, line := range header {
		if _, _, ok := matchHeader(line); ok {
			break
		}
		if !strings.Contains(line, "|") {
			continue
		}
		segments := compositeSplitter.Split(line, -1)
		if len(segments) < 2 || isContactLine(segments[0]) || isContactLine(segments[1]) {
			continue
		}
		role := stripDates(segments[1])
		if role == "" || isLocation(role) {
			continue
		}
		return role, true
	}
	return "", false
}

func roleFromHeader(header []string) (string, bool) {
	for _, line := range header {
		if isSectionHeader(line) {
			break
		}
		if isContactLine(line) || sentenceEnd.MatchString(line) {
			continue
		}
		if len(strings.Fields(line)) > maxRoleWords || !hasKeyword(line, roleKeywordSet) {
			continue
		}
		if role := stripDates(line); role != "" {
			return role, true
		}
	}
	return "", false
}

// roleFromFirstExperience reads "Role at Company" or "Role | Company" from the
// first entry of the experience section.
func roleFromFirstExperience(lines []string) (string, bool) {
	for _, line := range sectionLines(lines, SectionExperience) {
		line = strings.TrimSpace(line)
		if line == "" || !isEntryDelimiter(line) {
			continue
		}
		if !atSeparator.MatchString(line) && !pipeSeparator.MatchString(line) {
			continue
		}
		h := parseEntryHeader(line)
		return h.role, h.role != ""
	}
	return "", false
}

// ExtractLocation finds a "City, REGION" location in the document header.
// Candidates naming technologies are rejected; candidates with a known place
// keyword win, then the longest.
func ExtractLocation(text string) string {
	header := headerLines(strings.Split(text, "\n"), headerWindow)

	best, bestPlace := "", false
	for _, line := range header {
		for _, candidate := range locationPattern.FindAllString(line, -1) {
			if rejectLocation(candidate) {
				continue
			}
			place := hasKeyword(candidate, placeKeywordSet)
			switch {
			case place && !bestPlace:
				best, bestPlace = candidate, true
			case place == bestPlace && utf8.RuneCountInString(candidate) > utf8.RuneCountInString(best):
				best = candidate
			}
		}
	}
	return best
}

func rejectLocation(candidate string) bool {
	for _, w := range wordsOf(candidate) {
		if _, tech := TechVocabulary[w]; tech {
			return true
		}
	}
	return mentionsTechnology(candidate) || hasKeyword(candidate, roleKeywordSet) || hasKeyword(candidate, institutionKeywordSet)
}
