// Package publications splits the publications sections into entries and
// counts them per category.
package publications

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/lexicon"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Unclassified is the category of an entry no rule or default applies to
const Unclassified = "unclassified"

const maxSubheadingWords = 5

var (
	markerPattern = regexp.MustCompile(`^(?:[-*•▪◦●–]\s+|\d{1,3}[.)]\s*|\[\d{1,3}\]\s*|\(\d{1,3}\)\s*|\d{1,3}\s+)`)
	venuePattern  = regexp.MustCompile(`(?i)\b(?:vol|pp)\.`)
	yearEnd       = regexp.MustCompile(`\b(?:19|20)\d{2}[a-z]?[\s).\]]*$`)
)

// Entry is one publication with the category it was counted under
type Entry struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Counter classifies publication entries with the lexicon's ordered rules
type Counter struct {
	lex *lexicon.Compiled
}

// New creates a Counter. A nil lexicon selects the built-in tables.
func New(lex *lexicon.Compiled) *Counter {
	if lex == nil {
		lex = lexicon.DefaultCompiled()
	}
	return &Counter{lex: lex}
}

// Count returns the per-category counts of the publications sections.
// Total includes unclassified entries.
func (c *Counter) Count(text types.ResumeText) types.PublicationCounts {
	var counts types.PublicationCounts
	for _, e := range c.Entries(text) {
		switch e.Category {
		case lexicon.PubArticles:
			counts.Articles++
		case lexicon.PubBooks:
			counts.Books++
		case lexicon.PubConferencePapers:
			counts.ConferencePapers++
		default:
			counts.Unclassified++
		}
		counts.Total++
	}
	return counts
}

// Entries splits the publications sections into classified entries in
// document order
func (c *Counter) Entries(text types.ResumeText) []Entry {
	entries := []Entry{}
	for _, sec := range text.Sections() {
		if sec.Label != types.SectionPublications {
			continue
		}
		entries = append(entries, c.sectionEntries(text, sec)...)
	}
	return entries
}

type pending struct {
	lines    []string
	fallback string
	closed   bool
}

func (c *Counter) sectionEntries(text types.ResumeText, sec types.Section) []Entry {
	// a heading like "Journal Articles" names the category of its entries
	fallback, _ := c.lex.PublicationCategory(sec.Heading)

	var out []Entry
	var cur *pending
	flush := func() {
		if cur != nil {
			out = append(out, c.classify(cur))
			cur = nil
		}
	}

	for i := sec.StartLine; i < sec.EndLine; i++ {
		line := strings.TrimSpace(text.Line(i))
		if line == "" {
			if cur != nil {
				cur.closed = true
			}
			continue
		}

		marked := markerPattern.MatchString(line)
		if !marked {
			if cat, ok := c.subheading(line); ok && (cur == nil || cur.closed || c.nextIsMarked(text, i, sec.EndLine)) {
				flush()
				fallback = cat
				continue
			}
		}

		if marked || cur == nil || cur.closed {
			flush()
			cur = &pending{fallback: fallback}
		}
		cur.lines = append(cur.lines, line)
		if yearEnd.MatchString(line) || venuePattern.MatchString(line) {
			cur.closed = true
		}
	}
	flush()
	return out
}

// subheading reports whether line reads as a short category label such as
// "Journal Papers" or "Book Chapters:"
func (c *Counter) subheading(line string) (string, bool) {
	line = strings.TrimSpace(strings.TrimSuffix(line, ":"))
	if line == "" {
		return "", false
	}
	if strings.IndexFunc(line, unicode.IsDigit) >= 0 || strings.ContainsAny(line[len(line)-1:], ".,;") {
		return "", false
	}
	if len(strings.Fields(line)) > maxSubheadingWords {
		return "", false
	}
	return c.lex.PublicationCategory(line)
}

func (c *Counter) nextIsMarked(text types.ResumeText, i, end int) bool {
	for j := i + 1; j < end; j++ {
		next := strings.TrimSpace(text.Line(j))
		if next == "" {
			continue
		}
		return markerPattern.MatchString(next)
	}
	return false
}

func (c *Counter) classify(p *pending) Entry {
	body := strings.Join(p.lines, " ")
	entry := Entry{Text: markerPattern.ReplaceAllString(body, "")}

	if cat, ok := c.lex.PublicationCategory(body); ok {
		entry.Category = cat
		return entry
	}
	switch {
	case p.fallback != "":
		entry.Category = p.fallback
	case c.lex.PublicationDefault() != "":
		entry.Category = c.lex.PublicationDefault()
	default:
		entry.Category = Unclassified
	}
	return entry
}
