// Package identity extracts contact fields (name, email, phone, location and
// current organization) from a segmented resume.
package identity

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/lexicon"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// headerScanLines bounds how far into the header the extractor looks
const headerScanLines = 15

var (
	emailPattern     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)
	urlPattern       = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+|\b\S+\.(?:com|org|net|io|in|edu)/\S*`)
	phoneCandidate   = regexp.MustCompile(`\+?\(?\d[\d\s().\-/]{5,}\d`)
	yearRange        = regexp.MustCompile(`^(?:19|20)\d{2}\s*[-–/]\s*(?:19|20)?\d{2}$`)
	dateLike         = regexp.MustCompile(`^\d{1,2}\s*[./\-]\s*\d{1,2}\s*[./\-]\s*\d{2,4}$`)
	yearToken        = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	labelPrefix      = regexp.MustCompile(`(?i)^\s*(name|location|address|city|current location|residence|email|e-mail|phone|mobile|tel|contact)\s*[:\-]\s*`)
	atMarker         = regexp.MustCompile(`(?:\bat|@)\s+([\p{L}\p{N}&][^|;•·]*)`)
	cityRegion       = regexp.MustCompile(`^\p{Lu}[\p{L}.' \-]*,\s*\p{Lu}[\p{L}.' \-]*(?:,\s*\p{Lu}[\p{L}.' \-]*)?$`)
	anyYear          = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	segmentSeparator = regexp.MustCompile(`\s*[|•;·]\s*`)
)

// Extractor finds identity fields in the header section
type Extractor struct {
	lex *lexicon.Compiled
}

// New creates an Extractor. A nil lexicon selects the built-in tables.
func New(lex *lexicon.Compiled) *Extractor {
	if lex == nil {
		lex = lexicon.DefaultCompiled()
	}
	return &Extractor{lex: lex}
}

// Extract returns the identity fields found in text. Absent fields are nil.
func (e *Extractor) Extract(text types.ResumeText) types.Identity {
	header := headerLines(text)

	var id types.Identity
	id.Name = optional(e.name(header))

	email := findEmail(header)
	if email == "" {
		email = findEmail(text.Lines())
	}
	id.Email = optional(email)

	phone := findPhone(header)
	if phone == "" {
		phone = findPhone(firstLines(text.Lines(), headerScanLines))
	}
	id.Phone = optional(phone)

	id.Location = optional(e.location(header))

	org := e.headerOrganization(header)
	if org == "" {
		org = e.experienceOrganization(text.SectionLines(types.SectionExperience))
	}
	id.Organization = optional(org)

	return id
}

// headerLines returns the first lines of the header sections. Unsegmented
// text is treated as one header.
func headerLines(text types.ResumeText) []string {
	var lines []string
	if len(text.Sections()) == 0 {
		lines = text.Lines()
	} else {
		lines = text.SectionLines(types.SectionHeader)
	}
	return firstLines(lines, headerScanLines)
}

func firstLines(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

func findEmail(lines []string) string {
	for _, line := range lines {
		if m := emailPattern.FindString(line); m != "" {
			return strings.TrimRight(m, ".")
		}
	}
	return ""
}

func findPhone(lines []string) string {
	for _, line := range lines {
		line = emailPattern.ReplaceAllString(line, " ")
		line = urlPattern.ReplaceAllString(line, " ")
		for _, m := range phoneCandidate.FindAllString(line, -1) {
			if candidate := strings.TrimSpace(m); isPhone(candidate) {
				return candidate
			}
		}
	}
	return ""
}

func isPhone(candidate string) bool {
	digits := 0
	for _, r := range candidate {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 7 || digits > 15 {
		return false
	}
	if yearRange.MatchString(candidate) || dateLike.MatchString(candidate) {
		return false
	}

	// runs made only of years, such as "2015 2019"
	tokens := strings.FieldsFunc(candidate, func(r rune) bool { return !unicode.IsDigit(r) })
	allYears := true
	for _, tok := range tokens {
		if !yearToken.MatchString(tok) {
			allYears = false
			break
		}
	}
	return !allYears
}

func (e *Extractor) name(header []string) string {
	for _, line := range header {
		for _, segment := range segments(line) {
			if name := e.nameCandidate(segment); name != "" {
				return name
			}
		}
	}
	return ""
}

func (e *Extractor) nameCandidate(segment string) string {
	if loc := labelPrefix.FindStringSubmatch(segment); loc != nil {
		if !strings.EqualFold(loc[1], "name") {
			return ""
		}
		segment = segment[len(loc[0]):]
	}
	if i := strings.Index(segment, ","); i >= 0 {
		segment = segment[:i]
	}
	segment = strings.TrimSpace(segment)

	if segment == "" || strings.ContainsAny(segment, "@:/") || urlPattern.MatchString(segment) {
		return ""
	}
	if e.lex.IsTitle(segment) || len(e.lex.HeadingHits(segment)) > 0 || e.lex.Organization().MatchString(segment) {
		return ""
	}
	for _, r := range segment {
		if !unicode.IsLetter(r) && r != ' ' && r != '.' && r != '\'' && r != '-' {
			return ""
		}
	}

	name := e.lex.StripHonorifics(segment)
	words := strings.Fields(name)
	if len(words) == 0 || len(words) > 5 {
		return ""
	}
	return name
}

func (e *Extractor) location(header []string) string {
	for _, line := range header {
		if m := labelPrefix.FindStringSubmatch(line); m != nil {
			switch strings.ToLower(m[1]) {
			case "location", "address", "city", "current location", "residence":
				if value := strings.TrimSpace(line[len(m[0]):]); value != "" {
					return value
				}
			}
		}
	}

	for _, line := range header {
		for _, segment := range segments(line) {
			if strings.Contains(segment, "@") || anyYear.MatchString(segment) {
				continue
			}
			if !cityRegion.MatchString(segment) || len(strings.Fields(segment)) > 6 {
				continue
			}
			if e.lex.Organization().MatchString(segment) || len(e.lex.DegreeHits(segment)) > 0 {
				continue
			}
			if _, ok := e.lex.ExperienceCategory(segment); ok {
				continue
			}
			return segment
		}
	}
	return ""
}

func (e *Extractor) headerOrganization(header []string) string {
	for _, line := range header {
		line = emailPattern.ReplaceAllString(line, " ")
		m := atMarker.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		org := strings.TrimSpace(m[1])
		if i := strings.IndexAny(org, ",("); i >= 0 {
			org = strings.TrimSpace(org[:i])
		}
		org = strings.TrimRight(org, ". ")
		if org != "" {
			return org
		}
	}
	return ""
}

// experienceOrganization takes the organization of the first entry whose
// date range runs to the present
func (e *Extractor) experienceOrganization(lines []string) string {
	for _, line := range lines {
		if !anyYear.MatchString(line) || !e.lex.IsPresent(line) {
			continue
		}

		var parts []string
		for _, p := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == '|' || r == ';' }) {
			p = strings.TrimSpace(p)
			if p == "" || anyYear.MatchString(p) || e.lex.IsPresent(p) {
				continue
			}
			parts = append(parts, p)
		}

		for _, p := range parts {
			if e.lex.Organization().MatchString(p) {
				return p
			}
		}
		if len(parts) >= 2 {
			return parts[1]
		}
	}
	return ""
}

func segments(line string) []string {
	var out []string
	for _, s := range segmentSeparator.Split(line, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
