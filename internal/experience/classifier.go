// Package experience finds dated entries in the experience section and
// classifies them as teaching, industry or other.
package experience

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/resume-analyzer/internal/lexicon"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/rs/zerolog"
)

// contextLines bounds the lines read above and below a range line when the
// range line itself does not classify the entry
const contextLines = 2

// Classifier turns experience-section date ranges into classified entries
type Classifier struct {
	lex     *lexicon.Compiled
	logger  zerolog.Logger
	now     func() time.Time
	rangeRe *regexp.Regexp
}

// New creates a Classifier using the wall clock. A nil lexicon selects the
// built-in tables.
func New(lex *lexicon.Compiled) *Classifier {
	if lex == nil {
		lex = lexicon.DefaultCompiled()
	}
	return &Classifier{
		lex:     lex,
		logger:  zerolog.Nop(),
		now:     time.Now,
		rangeRe: rangePattern(lex.PresentAlternation()),
	}
}

// WithLogger returns a copy of c that logs clamped and rejected ranges to logger
func (c *Classifier) WithLogger(logger zerolog.Logger) *Classifier {
	cp := *c
	cp.logger = logger
	return &cp
}

// WithClock returns a copy of c that resolves open-ended ranges against now
func (c *Classifier) WithClock(now func() time.Time) *Classifier {
	cp := *c
	if now != nil {
		cp.now = now
	}
	return &cp
}

// expLine is one experience-section line with its section and heading
type expLine struct {
	text    string
	section int
	heading string
}

type found struct {
	line int
	span dateRange
	loc  []int
}

// Classify returns every dated entry of the experience sections in document
// order, with per-category totals in tenths of a year. A resume without an
// experience heading is scanned whole, education and publications aside.
func (c *Classifier) Classify(text types.ResumeText) types.ExperienceSummary {
	summary := types.ExperienceSummary{Entries: []types.ExperienceEntry{}}

	lines := c.experienceLines(text)
	if len(lines) == 0 {
		return summary
	}

	now := c.now()
	var entries []found
	for i, l := range lines {
		for _, loc := range c.rangeRe.FindAllStringSubmatchIndex(l.text, -1) {
			span, err := parseRange(l.text, loc)
			if err != nil {
				c.logger.Warn().Err(err).Msg("skipping experience date range")
				continue
			}
			entries = append(entries, found{line: i, span: span, loc: loc})
		}
	}

	for k, f := range entries {
		prevLine, nextLine := -1, len(lines)
		if k > 0 {
			prevLine = entries[k-1].line
		}
		if k+1 < len(entries) {
			nextLine = entries[k+1].line
		}

		entry := c.entry(f, now)
		entry.Category = c.category(lines, f, prevLine, nextLine)
		entry.Description = description(lines, f, prevLine)

		switch entry.Category {
		case types.CategoryTeaching:
			summary.TeachingTenths += tenths(entry.DurationMonths)
		case types.CategoryIndustry:
			summary.IndustryTenths += tenths(entry.DurationMonths)
		default:
			summary.OtherTenths += tenths(entry.DurationMonths)
		}
		summary.Entries = append(summary.Entries, entry)
	}

	return summary
}

// experienceLines returns the lines of the experience sections. Without one,
// every line outside education and publications is used, minus lines that
// mention a degree, so study periods are not counted as work.
func (c *Classifier) experienceLines(text types.ResumeText) []expLine {
	fallback := !text.HasSection(types.SectionExperience)

	var out []expLine
	for n, sec := range text.Sections() {
		switch {
		case !fallback && sec.Label != types.SectionExperience:
			continue
		case fallback && (sec.Label == types.SectionEducation || sec.Label == types.SectionPublications):
			continue
		}
		for i := sec.StartLine; i < sec.EndLine; i++ {
			line := text.Line(i)
			if fallback && len(c.lex.DegreeHits(line)) > 0 {
				continue
			}
			out = append(out, expLine{text: line, section: n, heading: sec.Heading})
		}
	}
	return out
}

func (c *Classifier) entry(f found, now time.Time) types.ExperienceEntry {
	r := f.span
	entry := types.ExperienceEntry{
		StartYear:  r.startYear,
		StartMonth: r.startMonth,
		EndYear:    r.endYear,
		EndMonth:   r.endMonth,
		Current:    r.current,
	}

	months := r.months(now)
	if months < 0 {
		c.logger.Warn().
			Int("start_year", r.startYear).
			Int("months", months).
			Msg("negative experience duration, clamping to zero")
		months = 0
	}
	entry.DurationMonths = months
	entry.DurationYears = float64(tenths(months)) / 10
	return entry
}

// category tries the range line, then the lines above it back to the previous
// entry, then the lines below it up to the next entry, then the section heading.
// Context never crosses into another section.
func (c *Classifier) category(lines []expLine, f found, prevLine, nextLine int) types.ExperienceCategory {
	own := lines[f.line].text
	own = own[:f.loc[0]] + " " + own[f.loc[1]:]
	if cat, ok := c.lex.ExperienceCategory(own); ok {
		return types.ExperienceCategory(cat)
	}

	section := lines[f.line].section
	for j := f.line - 1; j > prevLine && j >= f.line-contextLines && lines[j].section == section; j-- {
		if cat, ok := c.lex.ExperienceCategory(lines[j].text); ok {
			return types.ExperienceCategory(cat)
		}
	}

	for j := f.line + 1; j < nextLine && j <= f.line+contextLines && lines[j].section == section; j++ {
		if cat, ok := c.lex.ExperienceCategory(lines[j].text); ok {
			return types.ExperienceCategory(cat)
		}
	}

	if cat, ok := c.lex.ExperienceCategory(lines[f.line].heading); ok {
		return types.ExperienceCategory(cat)
	}
	return types.CategoryOther
}

// description is the range line without its dates, or the nearest non-blank
// line above it when nothing else is left
func description(lines []expLine, f found, prevLine int) string {
	own := lines[f.line].text
	desc := tidy(own[:f.loc[0]] + " " + own[f.loc[1]:])
	if desc != "" {
		return desc
	}
	for j := f.line - 1; j > prevLine && j >= f.line-contextLines && lines[j].section == lines[f.line].section; j-- {
		if d := tidy(lines[j].text); d != "" {
			return d
		}
	}
	return ""
}

func tidy(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " ,;:|-–—()[]")
}

func tenths(months int) int {
	return int(math.Round(float64(months) * 10 / 12))
}
