package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minSkillLength = 2
	maxSkillLength = 50
	// shortSkillMaxLength is the longest short token accepted without a vocabulary hit
	shortSkillMaxLength = 25
)

// SkillTiers sets the word counts that separate short, medium and long
// skill candidates. Short candidates are accepted liberally, medium ones
// need a vocabulary hit or a framework prefix, long ones need a vocabulary hit.
type SkillTiers struct {
	ShortMaxWords  int `json:"short_max_words" yaml:"short_max_words" validate:"gte=1"`
	MediumMaxWords int `json:"medium_max_words" yaml:"medium_max_words" validate:"gtefield=ShortMaxWords"`
}

// DefaultSkillTiers returns the default word-count thresholds
func DefaultSkillTiers() SkillTiers {
	return SkillTiers{ShortMaxWords: 2, MediumMaxWords: 4}
}

var (
	techSuffixPattern = regexp.MustCompile(`(?i)(?:\.(?:js|ts|jsx|tsx|net|py|io|rb|go)|\+\+|#)$|^\.net\b`)
	versionPattern    = regexp.MustCompile(`\d+(?:\.\d+)+|\b[vV]\d+\b|\b[A-Za-z]+\d+\b`)
	urlShapePattern   = regexp.MustCompile(`(?i)https?://|www\.|\.(?:com|org|io|dev)/`)
	terminalPunct     = regexp.MustCompile(`[.!?;:]$`)
)

// SkillValidator decides whether a candidate token is a genuine skill rather
// than a fragment of surrounding prose.
type SkillValidator struct {
	Tiers SkillTiers
}

// NewSkillValidator creates a validator with the given tiers
func NewSkillValidator(tiers SkillTiers) SkillValidator {
	return SkillValidator{Tiers: tiers}
}

// IsSkill reports whether candidate should be kept as a skill
func (v SkillValidator) IsSkill(candidate string) bool {
	s := strings.TrimSpace(candidate)
	n := utf8.RuneCountInString(s)
	if n < minSkillLength || n > maxSkillLength {
		return false
	}
	if looksLikeContact(s) {
		return false
	}
	if strings.ContainsAny(s, "—–") {
		return false
	}

	lower := strings.ToLower(s)
	if stopWordSet[lower] {
		return false
	}
	words := wordsOf(lower)
	if len(words) == 0 {
		return false
	}
	if leadingConnectiveSet[words[0]] || pastTenseVerbSet[words[0]] {
		return false
	}
	if terminalPunct.MatchString(s) && !techSuffixPattern.MatchString(strings.TrimRight(s, ".")) {
		return false
	}
	if hasKeyword(lower, institutionKeywordSet) {
		return false
	}

	hit := isVocabularyTerm(s)
	wordCount := len(strings.Fields(s))

	tiers := v.Tiers
	if tiers.ShortMaxWords <= 0 {
		tiers = DefaultSkillTiers()
	}

	switch {
	case wordCount <= tiers.ShortMaxWords:
		return hit || techSuffixPattern.MatchString(s) || versionPattern.MatchString(s) ||
			(n <= shortSkillMaxLength && !terminalPunct.MatchString(s))
	case wordCount <= tiers.MediumMaxWords:
		return hit || hasCompoundPrefix(lower)
	default:
		return hit
	}
}

// isVocabularyTerm reports whether s is, or mentions, a known technology
func isVocabularyTerm(s string) bool {
	if _, ok := TechVocabulary[strings.ToLower(s)]; ok {
		return true
	}
	if _, ok := skillNormalizations[strings.ToLower(s)]; ok {
		return true
	}
	return mentionsTechnology(s)
}

func hasCompoundPrefix(lower string) bool {
	for _, prefix := range CompoundFrameworkPrefixes {
		if strings.HasPrefix(lower, prefix+" ") || strings.HasPrefix(lower, prefix+"-") {
			return true
		}
	}
	return false
}

// looksLikeContact reports email, phone or URL shaped strings
func looksLikeContact(s string) bool {
	if strings.Contains(s, "@") {
		return true
	}
	if urlShapePattern.MatchString(s) || linkedInURLPattern.MatchString(s) {
		return true
	}
	return ExtractPhone(s) != ""
}
