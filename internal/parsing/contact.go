package parsing

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailLabelPattern   = regexp.MustCompile(`(?i)^\s*e-?mail(?:\s+address)?\s*[:\-]\s*(\S.*)$`)
	emailPattern        = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	emailSpacedPattern  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+(?:\s*[._]\s*[A-Za-z0-9]+)*\s*@\s*[A-Za-z0-9\-]+(?:\s*\.?\s*[A-Za-z0-9\-]+)*?\s*\.\s*[a-z]{2,6}\b`)
	emailCommaPattern   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\s*[,;]\s*[A-Za-z]{2,}`)
	strictEmailPattern  = regexp.MustCompile(`^[A-Za-z0-9_%+\-](?:[A-Za-z0-9._%+\-]*[A-Za-z0-9_%+\-])?@[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?)*\.[A-Za-z]{2,}$`)
	leadingDigitPattern = regexp.MustCompile(`^\d{4,}([A-Za-z].*)$`)
	tldSeparatorPattern = regexp.MustCompile(`[,;]([A-Za-z]{2,})$`)
	contactSplitPattern = regexp.MustCompile(`\s*\|\s*|\s+I\s+`)
	whitespacePattern   = regexp.MustCompile(`\s+`)

	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[\s.\-]?)?(?:\(\d{3}\)|\d{3})[\s.\-]?\d{3}[\s.\-]?\d{4}`)

	linkedInLabelPattern  = regexp.MustCompile(`(?i)\blinked\s*in\s*[:\-]\s*(\S.*)$`)
	linkedInSpacedPattern = regexp.MustCompile(`(?i)(?:https?\s*:\s*/\s*/\s*)?(?:www\s*\.\s*|[a-z]{2}\s*\.\s*)?linked\s*in\s*\.\s*com\s*/\s*(?:in|pub)\s*/\s*[a-z0-9_%]+(?:\s*-\s*[a-z0-9_%]+)*`)
	linkedInURLPattern    = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/(?:in|pub|company)/[^\s|,;()<>"']+`)
	linkedInHandlePattern = regexp.MustCompile(`^(?:in/)?([A-Za-z0-9\-_%]{3,100})/?$`)

	portfolioLabelPattern = regexp.MustCompile(`(?i)\b(?:portfolio|website|web\s*site|personal\s+site|homepage|site)\s*[:\-]\s*(\S.*)$`)
	urlCandidatePattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?\.)+[a-z]{2,}(?:/[^\s|,;()<>"']*)?`)
	personalSitePatterns  = buildPersonalSitePatterns(PersonalSiteDomains)
)

// siteTLDs are accepted for bare domains without scheme or www
var siteTLDs = map[string]bool{
	"com": true, "net": true, "org": true, "co": true, "ai": true, "app": true,
	"dev": true, "io": true, "me": true, "tech": true, "site": true, "xyz": true,
	"page": true, "design": true, "info": true, "portfolio": true,
}

// headerWindow is how many non-empty lines count as the document header
const headerWindow = 15

// ExtractEmail returns the first valid email address in text, or "".
func ExtractEmail(text string) string {
	lines := strings.Split(text, "\n")
	return cascade(text, isValidEmail,
		func(string) (string, bool) { return firstLineMatch(lines, labelledEmail) },
		func(string) (string, bool) { return firstLineMatch(lines, contactLineEmail) },
		patternEmail(emailPattern),
		patternEmail(emailSpacedPattern),
		patternEmail(emailCommaPattern),
		emailNearAt,
	)
}

func labelledEmail(line string) (string, bool) {
	m := emailLabelPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	value := m[1]
	for _, p := range []*regexp.Regexp{emailPattern, emailCommaPattern} {
		if found := p.FindString(value); found != "" {
			if email := cleanEmail(found); email != "" {
				return email, true
			}
		}
	}
	email := cleanEmail(value)
	return email, email != ""
}

// contactLineEmail handles "a | b | c" contact lines, where extraction often
// turns the pipe into a capital I.
func contactLineEmail(line string) (string, bool) {
	if !strings.Contains(line, "@") {
		return "", false
	}
	segments := contactSplitPattern.Split(line, -1)
	if len(segments) < 2 {
		return "", false
	}
	for _, segment := range segments {
		if !strings.Contains(segment, "@") {
			continue
		}
		candidate := segment
		if found := emailPattern.FindString(segment); found != "" {
			candidate = found
		}
		if email := cleanEmail(candidate); email != "" {
			return email, true
		}
	}
	return "", false
}

func patternEmail(p *regexp.Regexp) strategy {
	return func(text string) (string, bool) {
		for _, found := range p.FindAllString(text, -1) {
			if email := cleanEmail(found); email != "" {
				return email, true
			}
		}
		return "", false
	}
}

// emailNearAt scans a fixed window around each @ for address characters
func emailNearAt(text string) (string, bool) {
	const window = 64
	for offset := 0; offset < len(text); {
		i := strings.IndexByte(text[offset:], '@')
		if i < 0 {
			break
		}
		at := offset + i
		left := at
		for left > 0 && at-left < window && isLocalByte(text[left-1]) {
			left--
		}
		right := at + 1
		for right < len(text) && right-at < window && (isDomainByte(text[right]) || text[right] == ',' || text[right] == ';') {
			right++
		}
		if email := cleanEmail(text[left:right]); email != "" {
			return email, true
		}
		offset = at + 1
	}
	return "", false
}

func isLocalByte(b byte) bool {
	return isAlnumByte(b) || strings.IndexByte("._%+-", b) >= 0
}

func isDomainByte(b byte) bool {
	return isAlnumByte(b) || b == '.' || b == '-'
}

func isAlnumByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// cleanEmail decontaminates a candidate and returns it only when valid
func cleanEmail(candidate string) string {
	email := decontaminateEmail(candidate)
	if !isValidEmail(email) {
		return ""
	}
	return email
}

// decontaminateEmail removes phone digits that ran into the local part and
// repairs a comma or semicolon standing in for the dot before the TLD.
func decontaminateEmail(candidate string) string {
	c := whitespacePattern.ReplaceAllString(candidate, "")
	if strings.HasPrefix(strings.ToLower(c), "mailto:") {
		c = c[len("mailto:"):]
	}
	c = strings.Trim(c, `.,;:()<>[]{}"'`)

	at := strings.LastIndex(c, "@")
	if at <= 0 || at == len(c)-1 {
		return ""
	}
	local, domain := c[:at], c[at+1:]

	if m := leadingDigitPattern.FindStringSubmatch(local); m != nil {
		local = m[1]
	}
	domain = tldSeparatorPattern.ReplaceAllString(domain, ".$1")
	domain = strings.ToLower(strings.Trim(domain, ".-"))

	return local + "@" + domain
}

func isValidEmail(email string) bool {
	return len(email) <= 254 && !strings.Contains(email, "..") && strictEmailPattern.MatchString(email)
}

// ExtractPhone returns the first phone number in text as written, or "".
func ExtractPhone(text string) string {
	for _, loc := range phonePattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isDigitByte(text[start-1]) {
			continue
		}
		if end < len(text) && isDigitByte(text[end]) {
			continue
		}
		phone := strings.TrimSpace(text[start:end])
		if n := countDigits(phone); n < 10 || n > 13 {
			continue
		}
		return phone
	}
	return ""
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// ExtractLinkedIn returns the LinkedIn profile URL in text, or "".
func ExtractLinkedIn(text string) string {
	lines := strings.Split(text, "\n")
	return cascade(text, nil,
		func(string) (string, bool) { return firstLineMatch(lines, labelledLinkedIn) },
		func(t string) (string, bool) {
			found := linkedInSpacedPattern.FindString(t)
			return normalizeURL(found), found != ""
		},
		func(t string) (string, bool) {
			found := linkedInURLPattern.FindString(whitespacePattern.ReplaceAllString(t, " "))
			return normalizeURL(found), found != ""
		},
	)
}

func labelledLinkedIn(line string) (string, bool) {
	m := linkedInLabelPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	value := strings.TrimSpace(strings.Split(m[1], "|")[0])
	if found := linkedInSpacedPattern.FindString(value); found != "" {
		return normalizeURL(found), true
	}
	if h := linkedInHandlePattern.FindStringSubmatch(value); h != nil {
		return "https://linkedin.com/in/" + h[1], true
	}
	return "", false
}

// ExtractPortfolio returns a personal website URL from text, or "". Hosts in
// NonPortfolioDomains are skipped and PersonalSiteDomains win over generic sites.
func ExtractPortfolio(text string) string {
	lines := strings.Split(text, "\n")
	return cascade(text, nil,
		func(string) (string, bool) { return firstLineMatch(lines, labelledPortfolio) },
		reconstructPersonalSite,
		func(string) (string, bool) { return bestPortfolioCandidate(lines) },
	)
}

func labelledPortfolio(line string) (string, bool) {
	m := portfolioLabelPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	value := strings.TrimSpace(strings.Split(m[1], "|")[0])
	for _, found := range urlCandidatePattern.FindAllString(value, -1) {
		if host := urlHost(found); host != "" && !isNonPortfolioHost(host) {
			return normalizeURL(found), true
		}
	}
	return "", false
}

// reconstructPersonalSite finds hosting-platform domains that were broken
// across lines and joins them back together.
func reconstructPersonalSite(text string) (string, bool) {
	for _, p := range personalSitePatterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			if partOfEmail(text, loc) {
				continue
			}
			return normalizeURL(text[loc[0]:loc[1]]), true
		}
	}
	return "", false
}

func buildPersonalSitePatterns(domains []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(domains))
	for _, d := range domains {
		if strings.HasPrefix(d, ".") {
			// bare TLDs are handled by the candidate scan
			continue
		}
		parts := strings.Split(d, ".")
		for i, part := range parts {
			parts[i] = regexp.QuoteMeta(part)
		}
		spaced := strings.Join(parts, `\s*\.\s*`)
		patterns = append(patterns, regexp.MustCompile(
			`(?i)(?:https?://)?[a-z0-9](?:[a-z0-9\-]|-\s+)*(?:\.[a-z0-9\-]+)*\s*\.\s*`+spaced+`(?:/[^\s|,;()<>"']*)?`))
	}
	return patterns
}

// bestPortfolioCandidate scans for URLs and ranks personal-site hosts first.
// Bare domains are only trusted inside the header window.
func bestPortfolioCandidate(lines []string) (string, bool) {
	header := strings.Join(headerLines(lines, headerWindow), " ")
	body := whitespacePattern.ReplaceAllString(strings.Join(lines, " "), " ")

	best, bestScore := "", 0
	consider := func(text string, bareAllowed bool) {
		for _, loc := range urlCandidatePattern.FindAllStringIndex(text, -1) {
			if partOfEmail(text, loc) {
				continue
			}
			if loc[0] > 0 && (isAlnumByte(text[loc[0]-1]) || text[loc[0]-1] == '.') {
				continue
			}
			found := text[loc[0]:loc[1]]
			host := urlHost(found)
			if host == "" || isNonPortfolioHost(host) {
				continue
			}
			if _, isTech := TechVocabulary[host]; isTech {
				continue
			}
			lower := strings.ToLower(found)
			explicit := strings.HasPrefix(lower, "http") || strings.HasPrefix(host, "www.")
			personal := isPersonalSiteHost(host)
			if !explicit && !personal && !(bareAllowed && siteTLDs[tldOf(host)]) {
				continue
			}
			score := 1
			if personal {
				score = 2
			}
			if score > bestScore {
				best, bestScore = found, score
			}
		}
	}
	consider(header, true)
	consider(body, false)

	if best == "" {
		return "", false
	}
	return normalizeURL(best), true
}

// partOfEmail reports whether the match at loc is either side of an email address
func partOfEmail(text string, loc []int) bool {
	return (loc[0] > 0 && text[loc[0]-1] == '@') || (loc[1] < len(text) && text[loc[1]] == '@')
}

func urlHost(raw string) string {
	s := strings.ToLower(raw)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(s, ".")
}

func tldOf(host string) string {
	return host[strings.LastIndex(host, ".")+1:]
}

func isNonPortfolioHost(host string) bool {
	host = strings.TrimPrefix(host, "www.")
	for _, d := range NonPortfolioDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func isPersonalSiteHost(host string) bool {
	for _, d := range PersonalSiteDomains {
		if strings.HasPrefix(d, ".") {
			if strings.HasSuffix(host, d) {
				return true
			}
			continue
		}
		if strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// normalizeURL removes wrap whitespace and trailing punctuation and adds an
// https scheme when none is present.
func normalizeURL(raw string) string {
	u := whitespacePattern.ReplaceAllString(raw, "")
	u = strings.TrimLeft(u, `(<["'`)
	u = strings.TrimRight(u, `.,;:)]}>/"'`)
	if u == "" {
		return ""
	}
	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		u = "https://" + u
	}

	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return ""
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	return parsed.String()
}

// headerLines returns the first n non-empty lines
func headerLines(lines []string, n int) []string {
	out := make([]string, 0, n)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == n {
			break
		}
	}
	return out
}
