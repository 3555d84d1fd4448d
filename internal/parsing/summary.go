package parsing

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-importer/internal/types"
)

// ExtractSummary joins the summary section into one paragraph capped at
// maxLen runes. It returns nil when there is no summary text.
func ExtractSummary(lines []string, maxLen int) *types.Summary {
	body := nonEmpty(sectionLines(lines, SectionSummary))
	if len(body) == 0 {
		return nil
	}

	content := strings.Join(body, " ")
	if maxLen > 0 && utf8.RuneCountInString(content) > maxLen {
		content = truncateRunes(content, maxLen)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	return &types.Summary{Content: content}
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
