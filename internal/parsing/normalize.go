package parsing

import (
	"strings"
	"unicode/utf8"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"golanglang": "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"es6":        "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"node":       "Node.js",
	"postgres":   "PostgreSQL",
	"psql":       "PostgreSQL",
	"mongo":      "MongoDB",
	"gcp":        "GCP",
}

// acronymMaxLength is the longest all-caps word kept as an acronym
const acronymMaxLength = 4

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	if skillName == "" {
		return ""
	}

	normalized := strings.Join(strings.Fields(skillName), " ")
	if normalized == "" {
		return ""
	}

	// Check for exact match in normalization map (case-insensitive)
	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}
	if canonical, ok := TechVocabulary[lower]; ok {
		return canonical
	}

	// All-caps single words longer than an acronym get a leading capital only
	if normalized == strings.ToUpper(normalized) && normalized != lower {
		if !strings.Contains(lower, " ") && utf8.RuneCountInString(normalized) > acronymMaxLength {
			return strings.ToUpper(normalized[:1]) + lower[1:]
		}
		return normalized
	}

	// Already has mixed case, return as-is
	if normalized != lower {
		return normalized
	}

	// If all lowercase and single word, capitalize first letter
	if !strings.Contains(normalized, " ") {
		r, size := utf8.DecodeRuneInString(normalized)
		return strings.ToUpper(string(r)) + normalized[size:]
	}

	return normalized
}
