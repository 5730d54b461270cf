// Package sections splits normalized resume text into labeled sections.
package sections

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/lexicon"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	maxHeadingWords = 6
	maxHeadingRunes = 64
	minCoverage     = 0.5
)

// bulletPrefixes mark list items, which are never headings
var bulletPrefixes = []string{"- ", "* ", "• ", "▪ ", "◦ ", "● ", "– ", "· ", "► ", "➢ "}

// Segmenter assigns every line of a resume to a labeled section
type Segmenter struct {
	lex *lexicon.Compiled
}

// New creates a Segmenter. A nil lexicon selects the built-in tables.
func New(lex *lexicon.Compiled) *Segmenter {
	if lex == nil {
		lex = lexicon.DefaultCompiled()
	}
	return &Segmenter{lex: lex}
}

// Segment returns text with its section spans filled in. Lines before the
// first heading form the implicit header section; a document without
// headings is one header section.
func (s *Segmenter) Segment(text types.ResumeText) types.ResumeText {
	n := text.LineCount()
	if n == 0 {
		return text.WithSections(nil)
	}

	var out []types.Section
	cur := types.Section{Label: types.SectionHeader, HeadingLine: -1, StartLine: 0}

	for i := 0; i < n; i++ {
		label, heading, ok := s.Heading(text.Line(i))
		if !ok {
			continue
		}
		cur.EndLine = i
		if cur.HeadingLine >= 0 || cur.EndLine > cur.StartLine {
			out = append(out, withOffsets(text, cur))
		}
		cur = types.Section{Label: label, Heading: heading, HeadingLine: i, StartLine: i + 1}
	}

	cur.EndLine = n
	out = append(out, withOffsets(text, cur))

	return text.WithSections(out)
}

// Heading reports whether line is a section heading and returns its label
// and the heading text stripped of decoration.
func (s *Segmenter) Heading(line string) (types.SectionLabel, string, bool) {
	candidate, ok := headingCandidate(line)
	if !ok {
		return "", "", false
	}

	hits := s.lex.HeadingHits(candidate)
	if len(hits) == 0 {
		return "", "", false
	}

	covered := make([]bool, len(candidate))
	for _, h := range hits {
		for i := h.Start; i < h.End; i++ {
			covered[i] = true
		}
	}

	var letters, coveredLetters int
	for i, r := range candidate {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if covered[i] {
			coveredLetters++
		}
	}
	if letters == 0 || float64(coveredLetters)/float64(letters) < minCoverage {
		return "", "", false
	}

	return hits[0].Label, candidate, true
}

// headingCandidate strips decoration and applies the shape rules: short,
// no digits, not a list item.
func headingCandidate(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return "", false
		}
	}

	stripped := strings.Trim(trimmed, "#*=_ ")
	stripped = strings.TrimSpace(strings.TrimSuffix(stripped, ":"))
	stripped = strings.Trim(stripped, "#*=_ ")
	if stripped == "" {
		return "", false
	}

	if utf8.RuneCountInString(stripped) > maxHeadingRunes {
		return "", false
	}
	if len(strings.Fields(stripped)) > maxHeadingWords {
		return "", false
	}
	if strings.IndexFunc(stripped, unicode.IsDigit) >= 0 {
		return "", false
	}
	return stripped, true
}

func withOffsets(text types.ResumeText, s types.Section) types.Section {
	s.Start = text.LineStart(s.StartLine)
	if s.EndLine > s.StartLine {
		last := s.EndLine - 1
		s.End = text.LineStart(last) + len(text.Line(last))
	} else {
		s.End = s.Start
	}
	return s
}
