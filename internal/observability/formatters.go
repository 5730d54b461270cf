// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/types"
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
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten cuts s to at most n runes, marking the cut with "..."
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func yearOrDash(y *int) string {
	if y == nil {
		return "-"
	}
	return fmt.Sprint(*y)
}

// PrintProfile outputs the identity and education summary of a profile.
func (p *Printer) PrintProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:         %s\n", orDash(profile.Name)))
	sb.WriteString(fmt.Sprintf("Email:        %s\n", orDash(profile.Email)))
	sb.WriteString(fmt.Sprintf("Phone:        %s\n", orDash(profile.Phone)))
	sb.WriteString(fmt.Sprintf("Location:     %s\n", orDash(profile.CurrentLocation)))
	sb.WriteString(fmt.Sprintf("Organization: %s\n", orDash(profile.CurrentOrganization)))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Highest degree: %s\n", orDash(profile.HighestDegree)))
	if profile.HasPhD {
		sb.WriteString(fmt.Sprintf("PhD:            %s-%s", yearOrDash(profile.PhDStartYear), yearOrDash(profile.PhDEndYear)))
		if profile.PhDStatus != nil {
			sb.WriteString(fmt.Sprintf(" (%s)", *profile.PhDStatus))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Department:     %s", orDash(profile.Department)))
	if profile.DepartmentMatch {
		sb.WriteString(" ✓match")
	}
	sb.WriteString("\n")

	if len(profile.DegreesInfo) > 0 {
		sb.WriteString("\nDegrees:\n")
		count := min(len(profile.DegreesInfo), maxItemsToShow)
		for i := 0; i < count; i++ {
			rec := profile.DegreesInfo[i]
			sb.WriteString(fmt.Sprintf("  • %s", rec.DegreeType))
			if rec.FieldOfStudy != nil {
				sb.WriteString(fmt.Sprintf(" in %s", *rec.FieldOfStudy))
			}
			sb.WriteString(fmt.Sprintf(" [%s]\n", rec.Status))
		}
		if len(profile.DegreesInfo) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.DegreesInfo)-maxItemsToShow))
		}
	}

	p.printBox("RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExperience outputs the per-category totals and the first entries.
func (p *Printer) PrintExperience(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Teaching: %.1f  Industry: %.1f  Other: %.1f\n",
		profile.TeachingExperienceYears, profile.IndustryExperienceYears, profile.OtherExperienceYears))
	sb.WriteString(fmt.Sprintf("Total:    %.1f years\n", profile.TotalExperienceYears))

	if len(profile.ExperienceEntries) > 0 {
		sb.WriteString("\n")
		count := min(len(profile.ExperienceEntries), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := profile.ExperienceEntries[i]
			end := "present"
			if !e.Current {
				end = yearOrDash(e.EndYear)
			}
			sb.WriteString(fmt.Sprintf("• %d-%s %s (%.1fy)\n", e.StartYear, end, e.Category, e.DurationYears))
			if e.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", e.Description))
			}
		}
		if len(profile.ExperienceEntries) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more entries\n", len(profile.ExperienceEntries)-maxItemsToShow))
		}
	}

	p.printBox("EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPublications outputs the publication counts per category.
func (p *Printer) PrintPublications(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Articles:          %d\n", profile.ResearchArticlesCount))
	sb.WriteString(fmt.Sprintf("Books:             %d\n", profile.BooksCount))
	sb.WriteString(fmt.Sprintf("Conference papers: %d\n", profile.ConferencePapersCount))
	sb.WriteString(fmt.Sprintf("Unclassified:      %d\n", profile.UnclassifiedPublicationsCount))
	sb.WriteString(fmt.Sprintf("Total:             %d", profile.PublicationsTotalCount))

	p.printBox("PUBLICATIONS", sb.String())
}

// PrintScore outputs the score and the contribution of each component.
func (p *Printer) PrintScore(b ranking.Breakdown) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %.1f\n\n", b.Total))
	sb.WriteString(fmt.Sprintf("  baseline      %6.1f\n", b.Baseline))
	sb.WriteString(fmt.Sprintf("  degree        %6.1f\n", b.Degree))
	sb.WriteString(fmt.Sprintf("  phd           %6.1f\n", b.PhD))
	sb.WriteString(fmt.Sprintf("  experience    %6.1f\n", b.Experience))
	sb.WriteString(fmt.Sprintf("  department    %6.1f\n", b.Department))
	sb.WriteString(fmt.Sprintf("  publications  %6.1f", b.Publications))

	p.printBox("SCORE", sb.String())
}

// PrintQuality outputs the extraction quality report.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintQuality(q types.ExtractionQuality) {
	if q.Status == types.QualityGood && !q.Partial && !q.Truncated && len(q.FailedStages) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ EXTRACTION COMPLETE")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Text quality: %s\n", q.Status))
	if q.Truncated {
		sb.WriteString("⚠ input truncated\n")
	}
	if q.Partial {
		sb.WriteString("⚠ time budget reached, later stages skipped\n")
	}
	for _, stage := range q.FailedStages {
		sb.WriteString(fmt.Sprintf("⚠ stage failed: %s\n", stage))
	}

	p.printBox("EXTRACTION QUALITY", strings.TrimSuffix(sb.String(), "\n"))
}
