package lexicon

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Span is a half-open byte range inside a string
type Span struct {
	Start int
	End   int
}

// Matcher finds whole-word keyword hits, case-insensitively. Keywords ending
// in a letter also match with a plural "s" or "es" suffix.
type Matcher struct {
	re *regexp.Regexp
}

// MatchString reports whether any keyword occurs in s
func (m Matcher) MatchString(s string) bool {
	return m.re != nil && m.re.MatchString(s)
}

// FindAll returns every keyword hit in s, left to right
func (m Matcher) FindAll(s string) []Span {
	if m.re == nil {
		return nil
	}
	var out []Span
	pos := 0
	for pos < len(s) {
		loc := m.re.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[2], pos+loc[3]
		out = append(out, Span{Start: start, End: end})
		if end <= pos {
			end = pos + 1
		}
		pos = end
	}
	return out
}

// Find returns the first keyword hit in s
func (m Matcher) Find(s string) (Span, bool) {
	if m.re == nil {
		return Span{}, false
	}
	loc := m.re.FindStringSubmatchIndex(s)
	if loc == nil {
		return Span{}, false
	}
	return Span{Start: loc[2], End: loc[3]}, true
}

// HeadingHit is a heading synonym found in a line
type HeadingHit struct {
	Label types.SectionLabel
	Span
}

// DegreeHit is a degree synonym match. Order is the pattern's table position.
type DegreeHit struct {
	Type  string
	Order int
	Span
}

type headingMatcher struct {
	label   types.SectionLabel
	matcher Matcher
}

type degreeMatcher struct {
	typ string
	re  *regexp.Regexp
}

type ruleMatcher struct {
	category string
	matcher  Matcher
}

type departmentMatcher struct {
	department string
	matcher    Matcher
}

// Compiled is a validated lexicon with every table turned into matchers.
// It is read-only and safe for concurrent use.
type Compiled struct {
	headings     []headingMatcher
	degrees      []degreeMatcher
	ranks        map[string]int
	present      Matcher
	presentAlt   string
	inProgress   Matcher
	phd          []ruleMatcher
	institution  Matcher
	organization Matcher
	experience   []ruleMatcher
	publications []ruleMatcher
	pubDefault   string
	departments  []departmentMatcher
	titles       map[string]bool
	honorifics   map[string]bool
	scoring      ScoringWeights
}

var defaultCompiled = sync.OnceValue(func() *Compiled {
	c, err := Default().Compile()
	if err != nil {
		panic(fmt.Sprintf("default lexicon does not compile: %v", err))
	}
	return c
})

// DefaultCompiled returns the compiled built-in lexicon, shared process-wide
func DefaultCompiled() *Compiled {
	return defaultCompiled()
}

// Compile validates the lexicon and builds its matchers
func (l *Lexicon) Compile() (*Compiled, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	c := &Compiled{
		ranks:      make(map[string]int, len(l.DegreeRanks)),
		titles:     make(map[string]bool, len(l.TitleWords)),
		honorifics: make(map[string]bool, len(l.Honorifics)),
		pubDefault: l.Publications.DefaultCategory,
	}

	for _, h := range l.Headings {
		for _, syn := range h.Synonyms {
			c.headings = append(c.headings, headingMatcher{label: h.Label, matcher: keywordMatcher([]string{syn})})
		}
	}

	for _, d := range l.Degrees {
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("degree pattern %q", d.Pattern), Cause: err}
		}
		c.degrees = append(c.degrees, degreeMatcher{typ: d.Type, re: re})
	}
	for k, v := range l.DegreeRanks {
		c.ranks[k] = v
	}

	c.present = exactMatcher(l.PresentTokens)
	c.presentAlt = alternation(l.PresentTokens)
	c.inProgress = exactMatcher(l.InProgressWords)
	for _, q := range l.PhDQualifiers {
		c.phd = append(c.phd, ruleMatcher{category: q.Status, matcher: exactMatcher(q.Phrases)})
	}
	c.institution = keywordMatcher(l.InstitutionKeywords)
	c.organization = keywordMatcher(l.OrganizationKeywords)

	for _, r := range l.ExperienceRules {
		c.experience = append(c.experience, ruleMatcher{category: r.Category, matcher: keywordMatcher(r.Keywords)})
	}
	for _, r := range l.Publications.Rules {
		c.publications = append(c.publications, ruleMatcher{category: r.Category, matcher: keywordMatcher(r.Keywords)})
	}
	for _, d := range l.Departments {
		c.departments = append(c.departments, departmentMatcher{department: d.Department, matcher: keywordMatcher([]string{d.Keyword})})
	}

	for _, w := range l.TitleWords {
		c.titles[strings.ToLower(strings.TrimSpace(w))] = true
	}
	for _, h := range l.Honorifics {
		c.honorifics[strings.ToLower(strings.TrimSuffix(strings.TrimSpace(h), "."))] = true
	}

	c.scoring = l.Scoring
	c.scoring.DegreeLevel = make(map[string]float64, len(l.Scoring.DegreeLevel))
	for k, v := range l.Scoring.DegreeLevel {
		c.scoring.DegreeLevel[k] = v
	}

	return c, nil
}

// HeadingHits returns every heading synonym hit in line, in line order
func (c *Compiled) HeadingHits(line string) []HeadingHit {
	var hits []HeadingHit
	for _, h := range c.headings {
		for _, span := range h.matcher.FindAll(line) {
			hits = append(hits, HeadingHit{Label: h.label, Span: span})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Start != hits[j].Start {
			return hits[i].Start < hits[j].Start
		}
		return hits[i].End-hits[i].Start > hits[j].End-hits[j].Start
	})
	return hits
}

// DegreeHits returns every raw degree pattern match in line. Overlaps are
// left to the caller.
func (c *Compiled) DegreeHits(line string) []DegreeHit {
	var hits []DegreeHit
	for i, d := range c.degrees {
		for _, loc := range d.re.FindAllStringIndex(line, -1) {
			hits = append(hits, DegreeHit{Type: d.typ, Order: i, Span: Span{Start: loc[0], End: loc[1]}})
		}
	}
	return hits
}

// Rank returns the ordinal rank of a degree type, 0 when unknown
func (c *Compiled) Rank(degreeType string) int {
	return c.ranks[degreeType]
}

// PresentAlternation returns a regexp fragment matching any present token.
// It carries no flags; embed it in a case-insensitive pattern.
func (c *Compiled) PresentAlternation() string {
	return c.presentAlt
}

// IsPresent reports whether s contains a present-tense token
func (c *Compiled) IsPresent(s string) bool {
	return c.present.MatchString(s)
}

// InProgress reports whether s contains an in-progress word
func (c *Compiled) InProgress(s string) bool {
	return c.inProgress.MatchString(s)
}

// PhDStatus returns the first PhD qualifier whose phrase occurs in s
func (c *Compiled) PhDStatus(s string) (string, bool) {
	return firstRule(c.phd, s)
}

// Institution returns the matcher for institution keywords
func (c *Compiled) Institution() Matcher {
	return c.institution
}

// Organization returns the matcher for organization keywords
func (c *Compiled) Organization() Matcher {
	return c.organization
}

// ExperienceCategory returns the category of the first experience rule matching s
func (c *Compiled) ExperienceCategory(s string) (string, bool) {
	return firstRule(c.experience, s)
}

// PublicationCategory returns the category of the first publication rule matching s
func (c *Compiled) PublicationCategory(s string) (string, bool) {
	return firstRule(c.publications, s)
}

// PublicationDefault is the bucket for unmatched publications, "" for unclassified
func (c *Compiled) PublicationDefault() string {
	return c.pubDefault
}

// Department returns the department of the first table keyword found in field
func (c *Compiled) Department(field string) (string, bool) {
	for _, d := range c.departments {
		if d.matcher.MatchString(field) {
			return d.department, true
		}
	}
	return "", false
}

// IsTitle reports whether s is a document title such as "Resume"
func (c *Compiled) IsTitle(s string) bool {
	folded := strings.ToLower(strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	folded = strings.Join(strings.Fields(folded), " ")
	return c.titles[folded]
}

// StripHonorifics removes leading honorifics such as "Dr." from a name
func (c *Compiled) StripHonorifics(name string) string {
	fields := strings.Fields(name)
	for len(fields) > 1 {
		token := strings.ToLower(strings.TrimSuffix(fields[0], "."))
		if !c.honorifics[token] {
			break
		}
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

// Scoring returns a copy of the scoring weights
func (c *Compiled) Scoring() ScoringWeights {
	out := c.scoring
	out.DegreeLevel = make(map[string]float64, len(c.scoring.DegreeLevel))
	for k, v := range c.scoring.DegreeLevel {
		out.DegreeLevel[k] = v
	}
	return out
}

func firstRule(rules []ruleMatcher, s string) (string, bool) {
	for _, r := range rules {
		if r.matcher.MatchString(s) {
			return r.category, true
		}
	}
	return "", false
}

// keywordMatcher matches whole words with an optional plural suffix
func keywordMatcher(keywords []string) Matcher {
	return buildMatcher(keywords, true)
}

// exactMatcher matches whole words without plural forms
func exactMatcher(keywords []string) Matcher {
	return buildMatcher(keywords, false)
}

const (
	leftBoundary  = `(?:^|[^\p{L}\p{N}])`
	rightBoundary = `(?:$|[^\p{L}\p{N}])`
)

func buildMatcher(keywords []string, plural bool) Matcher {
	var parts []string
	for _, kw := range sortedByLength(keywords) {
		p := keywordPattern(kw)
		if p == "" {
			continue
		}
		if plural && endsWithLetter(kw) {
			p += `(?:s|es)?`
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return Matcher{}
	}
	pattern := `(?i)` + leftBoundary + `(` + strings.Join(parts, "|") + `)` + rightBoundary
	return Matcher{re: regexp.MustCompile(pattern)}
}

func alternation(keywords []string) string {
	var parts []string
	for _, kw := range sortedByLength(keywords) {
		if p := keywordPattern(kw); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "|")
}

func keywordPattern(kw string) string {
	words := strings.Fields(kw)
	if len(words) == 0 {
		return ""
	}
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `\s+`)
}

func sortedByLength(keywords []string) []string {
	out := make([]string, len(keywords))
	copy(out, keywords)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}

func endsWithLetter(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	r := []rune(s)
	return unicode.IsLetter(r[len(r)-1])
}
