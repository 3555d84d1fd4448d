// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // verbose output; write errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func pad(s string, n int) string {
	if gap := n - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PrintResume outputs a human-readable summary of a parsed resume
func (p *Printer) PrintResume(r *types.ParsedResume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	if info := r.PersonalInfo; info != nil {
		writeField(&sb, "Name", info.Name)
		writeField(&sb, "Role", info.Role)
		writeField(&sb, "Email", info.Email)
		writeField(&sb, "Phone", info.Phone)
		writeField(&sb, "Location", info.Location)
		writeField(&sb, "LinkedIn", info.LinkedInURL)
		writeField(&sb, "Website", info.PortfolioURL)
	} else {
		sb.WriteString("No contact details found\n")
	}
	if r.Summary != nil {
		sb.WriteString(fmt.Sprintf("Summary:  %d characters\n", utf8.RuneCountInString(r.Summary.Content)))
	}
	sb.WriteString(fmt.Sprintf("\nConfidence: %.2f", r.Confidence))

	p.printBox("PARSED RESUME", sb.String())
	p.PrintExperiences(r.Experiences)
	p.PrintEducation(r.Education)
	p.PrintSkills(r.Skills)
}

func writeField(sb *strings.Builder, label, value string) {
	if value != "" {
		sb.WriteString(fmt.Sprintf("%-9s %s\n", label+":", value))
	}
}

// PrintExperiences outputs the extracted positions with their date ranges
func (p *Printer) PrintExperiences(experiences []types.Experience) {
	if len(experiences) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(experiences), maxItemsToShow)
	for i := 0; i < count; i++ {
		exp := experiences[i]
		sb.WriteString(fmt.Sprintf("#%d  %s, %s\n", i+1, exp.Role, exp.Company))
		sb.WriteString(fmt.Sprintf("    %s - %s\n", dateOr(exp.StartDate, "?"), endLabel(exp)))
	}
	if len(experiences) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more positions\n", len(experiences)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("EXPERIENCE (%d)", len(experiences)), strings.TrimSuffix(sb.String(), "\n"))
}

func dateOr(d *string, fallback string) string {
	if d == nil {
		return fallback
	}
	return *d
}

func endLabel(exp types.Experience) string {
	if exp.IsCurrent {
		return "present"
	}
	return dateOr(exp.EndDate, "?")
}

// PrintEducation outputs the extracted education entries
func (p *Printer) PrintEducation(education []types.Education) {
	if len(education) == 0 {
		return
	}

	var sb strings.Builder
	for _, edu := range education {
		line := edu.Degree
		if edu.Field != "" {
			line += " in " + edu.Field
		}
		sb.WriteString(fmt.Sprintf("• %s\n", line))
		sb.WriteString(fmt.Sprintf("  %s", edu.Institution))
		if edu.GraduationDate != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", edu.GraduationDate))
		}
		sb.WriteString("\n")
	}

	p.printBox("EDUCATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs skills grouped by category, in first-seen category order
func (p *Printer) PrintSkills(skills []types.Skill) {
	if len(skills) == 0 {
		return
	}

	var order []string
	byCategory := map[string][]string{}
	for _, s := range skills {
		if _, ok := byCategory[s.Category]; !ok {
			order = append(order, s.Category)
		}
		byCategory[s.Category] = append(byCategory[s.Category], s.Name)
	}

	var sb strings.Builder
	for _, category := range order {
		sb.WriteString(fmt.Sprintf("%s: %s\n", category, strings.Join(byCategory[category], ", ")))
	}

	p.printBox(fmt.Sprintf("SKILLS (%d)", len(skills)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMetadata outputs the document metadata of an import
func (p *Printer) PrintMetadata(m *ingestion.Metadata) {
	if m == nil {
		return
	}

	var sb strings.Builder
	writeField(&sb, "File", m.FileName)
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", m.Pages))
	sb.WriteString(fmt.Sprintf("Text:     %d characters\n", m.TextLength))
	sb.WriteString(fmt.Sprintf("SHA-256:  %s", m.Hash))

	p.printBox("DOCUMENT", sb.String())
}
