package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	monthNames = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`
	yearExpr   = `(?:19|20)\d{2}`
)

var (
	// dateTokenPattern finds "Mon YYYY", "MM/YYYY", "YYYY" and present markers in order
	dateTokenPattern = regexp.MustCompile(`(?i)\b(?:(` + monthNames + `)\.?,?\s+(` + yearExpr + `)|(0?[1-9]|1[0-2])\s*[/.]\s*(` + yearExpr + `)|(` + yearExpr + `)|(present|current|now|today))\b`)

	monthYearPattern = regexp.MustCompile(`(?i)\b(?:` + monthNames + `)\.?,?\s+` + yearExpr + `\b`)
	numericDate      = regexp.MustCompile(`\b(?:0?[1-9]|1[0-2])\s*/\s*` + yearExpr + `\b`)
	yearRangePattern = regexp.MustCompile(`(?i)\b` + yearExpr + `\s*(?:-|–|—|to)\s*(?:` + yearExpr + `|present|current|now)\b`)
	yearPattern      = regexp.MustCompile(`\b(` + yearExpr + `)\b`)

	// dateSpanPattern matches a whole date span so it can be cut from a header line
	dateSpanPattern = regexp.MustCompile(`(?i)\(?\s*\b(?:(?:` + monthNames + `)\.?,?\s+` + yearExpr + `|(?:0?[1-9]|1[0-2])\s*[/.]\s*` + yearExpr + `|` + yearExpr + `)` +
		`(?:\s*(?:-|–|—|to)\s*(?:(?:` + monthNames + `)\.?,?\s+` + yearExpr + `|(?:0?[1-9]|1[0-2])\s*[/.]\s*` + yearExpr + `|` + yearExpr + `|present|current|now|today))?\s*\)?`)
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// dateRange is the parsed date information of an entry line
type dateRange struct {
	Start   *string
	End     *string
	Current bool
}

func (d dateRange) empty() bool {
	return d.Start == nil && d.End == nil && !d.Current
}

// hasDatePattern reports whether line contains MM/YYYY, Mon YYYY or a year range
func hasDatePattern(line string) bool {
	return numericDate.MatchString(line) || monthYearPattern.MatchString(line) || yearRangePattern.MatchString(line)
}

// parseDateRange reads the start and end dates of a line. Dates are
// normalized to "YYYY-MM", bare years get month 01. A present marker after
// the start date sets Current and leaves End nil.
func parseDateRange(line string) dateRange {
	var d dateRange
	for _, m := range dateTokenPattern.FindAllStringSubmatch(line, -1) {
		if m[6] != "" {
			if d.Start != nil {
				d.Current = true
				d.End = nil
				break
			}
			continue
		}

		value := dateFromMatch(m)
		if value == nil {
			continue
		}
		if d.Start == nil {
			d.Start = value
			continue
		}
		d.End = value
		break
	}
	return d
}

func dateFromMatch(m []string) *string {
	switch {
	case m[1] != "":
		month := monthNumbers[strings.ToLower(m[1])[:3]]
		return formatYearMonth(m[2], month)
	case m[3] != "":
		month, err := strconv.Atoi(m[3])
		if err != nil {
			return nil
		}
		return formatYearMonth(m[4], month)
	case m[5] != "":
		return formatYearMonth(m[5], 1)
	}
	return nil
}

func formatYearMonth(year string, month int) *string {
	y, err := strconv.Atoi(year)
	if err != nil || month < 1 || month > 12 {
		return nil
	}
	s := fmt.Sprintf("%04d-%02d", y, month)
	return &s
}

// stripDates removes date spans and leaves the surrounding text trimmed of separators
func stripDates(s string) string {
	s = dateSpanPattern.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " -–—,|()")
}

// graduationDate returns "YYYY-05" for the last four-digit year on the line
func graduationDate(line string) string {
	years := yearPattern.FindAllString(line, -1)
	if len(years) == 0 {
		return ""
	}
	return years[len(years)-1] + "-05"
}
