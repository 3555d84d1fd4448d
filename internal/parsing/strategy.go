package parsing

// strategy is one extraction heuristic; ok is false when it found nothing usable
type strategy func(text string) (value string, ok bool)

// cascade tries strategies in priority order and returns the first result
// that passes accept. A nil accept takes any non-empty value.
func cascade(text string, accept func(string) bool, strategies ...strategy) string {
	for _, try := range strategies {
		value, ok := try(text)
		if !ok || value == "" {
			continue
		}
		if accept != nil && !accept(value) {
			continue
		}
		return value
	}
	return ""
}

// firstLineMatch runs fn over each line and returns the first accepted value
func firstLineMatch(lines []string, fn func(line string) (string, bool)) (string, bool) {
	for _, line := range lines {
		if v, ok := fn(line); ok {
			return v, true
		}
	}
	return "", false
}
