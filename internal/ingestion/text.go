// Package ingestion turns uploaded resume documents into normalized text.
package ingestion

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// bulletRunes are list markers that become a plain space
var bulletRunes = map[rune]bool{
	'•': true, '◦': true, '▪': true, '▫': true, '●': true, '○': true,
	'■': true, '□': true, '►': true, '▸': true, '‣': true, '⁃': true,
	'∙': true, '·': true, '➢': true, '➤': true, '✓': true, '✔': true,
	'❖': true, '◆': true, '◇': true, '\uf0b7': true, '\uf0a7': true,
}

// NormalizeText strips control, zero-width and icon characters from raw
// extracted text and collapses whitespace inside each line. Line breaks are
// kept; runs of blank lines are squeezed to one.
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}

	raw = norm.NFC.String(raw)
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	blankRun := 0
	for _, line := range lines {
		cleaned := cleanLine(line)
		if cleaned == "" {
			blankRun++
			if blankRun > 1 {
				continue
			}
		} else {
			blankRun = 0
		}
		out = append(out, cleaned)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// cleanLine removes unwanted runes and collapses whitespace within one line
func cleanLine(line string) string {
	var b strings.Builder
	b.Grow(len(line))

	lastSpace := true
	for _, r := range line {
		switch {
		case bulletRunes[r]:
			r = ' '
		case r == '\t' || unicode.IsSpace(r):
			r = ' '
		case isStrippedRune(r):
			continue
		}

		if r == ' ' {
			if lastSpace {
				continue
			}
			lastSpace = true
		} else {
			lastSpace = false
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}

// isStrippedRune reports runes that carry no text: controls, zero-width
// marks, variation selectors, icon fonts and pictographs.
func isStrippedRune(r rune) bool {
	switch r {
	case 0, '\u00ad', '\u034f', '\ufeff', '\ufffd':
		return true
	}
	if unicode.IsControl(r) {
		return true
	}

	switch {
	case r >= 0x200B && r <= 0x200F: // zero-width space/joiners, direction marks
		return true
	case r >= 0x2060 && r <= 0x2064: // word joiner, invisible operators
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r >= 0x2190 && r <= 0x21FF: // arrows
		return true
	case r >= 0x2300 && r <= 0x23FF: // misc technical
		return true
	case r >= 0x2500 && r <= 0x27BF: // box drawing, geometric shapes, misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // misc symbols and arrows
		return true
	case r >= 0xE000 && r <= 0xF8FF: // private use area (icon fonts)
		return true
	case r >= 0x1F000 && r <= 0x1FAFF: // emoji and pictographs
		return true
	case r >= 0xE0000 && r <= 0xE007F: // tag characters
		return true
	}
	return false
}
