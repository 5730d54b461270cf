// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// SectionLabel identifies the kind of a resume section
type SectionLabel string

const (
	SectionHeader       SectionLabel = "header"
	SectionEducation    SectionLabel = "education"
	SectionExperience   SectionLabel = "experience"
	SectionPublications SectionLabel = "publications"
	SectionOther        SectionLabel = "other"
)

// Line is a single line of normalized text and its byte offset in the body
type Line struct {
	Text  string
	Start int
}

// Section is a contiguous labeled span of resume lines.
// StartLine/EndLine index content lines (EndLine exclusive); the heading line,
// when present, sits at HeadingLine and is not part of the content.
type Section struct {
	Label       SectionLabel `json:"label"`
	Heading     string       `json:"heading,omitempty"`
	HeadingLine int          `json:"heading_line"` // -1 for the implicit header section
	StartLine   int          `json:"start_line"`
	EndLine     int          `json:"end_line"`
	Start       int          `json:"start"` // byte offset of the first content line
	End         int          `json:"end"`   // byte offset just past the last content line
}

// ResumeText is the normalized resume body plus its section spans.
// Values are immutable: accessors return copies and WithSections returns a new value.
type ResumeText struct {
	body     string
	lines    []Line
	sections []Section
}

// NewResumeText splits a normalized body into lines. No sections are assigned.
func NewResumeText(body string) ResumeText {
	if body == "" {
		return ResumeText{}
	}

	raw := strings.Split(body, "\n")
	lines := make([]Line, 0, len(raw))
	offset := 0
	for _, text := range raw {
		lines = append(lines, Line{Text: text, Start: offset})
		offset += len(text) + 1
	}

	return ResumeText{body: body, lines: lines}
}

// WithSections returns a copy of t carrying the given sections
func (t ResumeText) WithSections(sections []Section) ResumeText {
	cp := make([]Section, len(sections))
	copy(cp, sections)
	return ResumeText{body: t.body, lines: t.lines, sections: cp}
}

// Body returns the normalized text
func (t ResumeText) Body() string {
	return t.body
}

// IsEmpty reports whether the body holds no text
func (t ResumeText) IsEmpty() bool {
	return strings.TrimSpace(t.body) == ""
}

// LineCount returns the number of lines in the body
func (t ResumeText) LineCount() int {
	return len(t.lines)
}

// Line returns the text of line i, or "" when out of range
func (t ResumeText) Line(i int) string {
	if i < 0 || i >= len(t.lines) {
		return ""
	}
	return t.lines[i].Text
}

// FoldedLine returns line i lowercased for case-insensitive matching
func (t ResumeText) FoldedLine(i int) string {
	return strings.ToLower(t.Line(i))
}

// LineStart returns the byte offset of line i, or len(body) when out of range
func (t ResumeText) LineStart(i int) int {
	if i < 0 || i >= len(t.lines) {
		return len(t.body)
	}
	return t.lines[i].Start
}

// Lines returns a copy of all line texts
func (t ResumeText) Lines() []string {
	out := make([]string, len(t.lines))
	for i, l := range t.lines {
		out[i] = l.Text
	}
	return out
}

// Sections returns a copy of the section spans in document order
func (t ResumeText) Sections() []Section {
	out := make([]Section, len(t.sections))
	copy(out, t.sections)
	return out
}

// HasSection reports whether at least one section carries the label
func (t ResumeText) HasSection(label SectionLabel) bool {
	for _, s := range t.sections {
		if s.Label == label {
			return true
		}
	}
	return false
}

// SectionLines returns the content lines of every section with the given
// label, concatenated in document order.
func (t ResumeText) SectionLines(label SectionLabel) []string {
	var out []string
	for _, s := range t.sections {
		if s.Label != label {
			continue
		}
		for i := s.StartLine; i < s.EndLine && i < len(t.lines); i++ {
			out = append(out, t.lines[i].Text)
		}
	}
	return out
}

// SectionText returns SectionLines joined by newlines
func (t ResumeText) SectionText(label SectionLabel) string {
	return strings.Join(t.SectionLines(label), "\n")
}
