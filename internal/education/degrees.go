// Package education detects degree mentions in the education section and
// infers PhD status, highest degree and department from them.
package education

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/lexicon"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/rs/zerolog"
)

const (
	// maxContinuationLines bounds how far a mention's context extends below its line
	maxContinuationLines = 2
	maxFieldWords        = 8
)

var (
	yearPattern     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	fromAtPattern   = regexp.MustCompile(`(?i)\b(?:from|at)\s+([^,;|\n(]+)`)
	fieldCutPattern = regexp.MustCompile(`(?i)\s(?:at|from)\s|[,|;(\n]|\s[-–—]\s|–|—|\b(?:19|20)\d{2}\b`)
	segmentSplit    = regexp.MustCompile(`[,;|\n]|\s[-–—]\s`)
)

// Extractor finds degree mentions and builds one DegreeRecord per mention
type Extractor struct {
	lex     *lexicon.Compiled
	logger  zerolog.Logger
	rangeRe *regexp.Regexp
}

// New creates an Extractor. A nil lexicon selects the built-in tables.
func New(lex *lexicon.Compiled) *Extractor {
	if lex == nil {
		lex = lexicon.DefaultCompiled()
	}
	return &Extractor{
		lex:    lex,
		logger: zerolog.Nop(),
		rangeRe: regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:(?:-|–|—|to|until)\s*)?` +
			`(?:((?:19|20)\d{2})\b|(` + lex.PresentAlternation() + `)\b)`),
	}
}

// WithLogger returns a copy of e that logs repaired records to logger
func (e *Extractor) WithLogger(logger zerolog.Logger) *Extractor {
	cp := *e
	cp.logger = logger
	return &cp
}

// Extract returns the degree records of the education section in document
// order. Repeated degrees are kept. Without an education section the header
// and unlabeled sections are scanned instead.
func (e *Extractor) Extract(text types.ResumeText) []types.DegreeRecord {
	lines := text.SectionLines(types.SectionEducation)
	fallback := !text.HasSection(types.SectionEducation)
	if fallback {
		lines = append(text.SectionLines(types.SectionHeader), text.SectionLines(types.SectionOther)...)
	}

	perLine := make([][]lexicon.DegreeHit, len(lines))
	for i, line := range lines {
		perLine[i] = e.mentions(line)
	}

	records := []types.DegreeRecord{}
	for i, line := range lines {
		hits := perLine[i]
		for k, hit := range hits {
			end := len(line)
			if k+1 < len(hits) {
				end = hits[k+1].Start
			}
			own := line[hit.Start:end]

			// outside an education section a dated line stands alone, so the
			// lines below it are not pulled into its window
			var continuation []string
			if k == len(hits)-1 && !(fallback && e.dated(own)) {
				for j := i + 1; j < len(lines) && j <= i+maxContinuationLines; j++ {
					if strings.TrimSpace(lines[j]) == "" || len(perLine[j]) > 0 {
						break
					}
					continuation = append(continuation, lines[j])
				}
			}

			var prefix string
			if k == 0 {
				prefix = line[:hit.Start]
			}

			records = append(records, e.record(hit, own, continuation, prefix))
		}
	}
	return records
}

func (e *Extractor) dated(s string) bool {
	start, end, present := e.years(s)
	return start != nil || end != nil || present
}

// mentions resolves raw pattern hits in a line: overlaps go to the earliest
// then longest match, and a degree type repeated within the line is one mention.
func (e *Extractor) mentions(line string) []lexicon.DegreeHit {
	hits := e.lex.DegreeHits(line)
	if len(hits) == 0 {
		return nil
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Start != hits[j].Start {
			return hits[i].Start < hits[j].Start
		}
		li, lj := hits[i].End-hits[i].Start, hits[j].End-hits[j].Start
		if li != lj {
			return li > lj
		}
		return hits[i].Order < hits[j].Order
	})

	var out []lexicon.DegreeHit
	seen := make(map[string]bool)
	lastEnd := -1
	for _, h := range hits {
		if h.Start < lastEnd {
			continue
		}
		lastEnd = h.End
		if seen[h.Type] {
			continue
		}
		seen[h.Type] = true
		out = append(out, h)
	}
	return out
}

func (e *Extractor) record(hit lexicon.DegreeHit, own string, continuation []string, prefix string) types.DegreeRecord {
	window := own
	if len(continuation) > 0 {
		window = own + "\n" + strings.Join(continuation, "\n")
	}

	rec := types.DegreeRecord{
		DegreeType: hit.Type,
		RawText:    strings.TrimSpace(window),
	}

	rest := own[hit.End-hit.Start:]
	field := e.field(rest)
	if field == "" && strings.Trim(rest, " .,:;-–") == "" && len(continuation) > 0 {
		field = e.field(" " + continuation[0])
	}
	rec.FieldOfStudy = optional(field)

	inst := e.institution(window)
	if inst == "" && prefix != "" {
		inst = e.institution(prefix)
	}
	rec.Institution = optional(inst)

	start, end, present := e.years(window)
	if start == nil && end == nil && !present && prefix != "" {
		start, end, present = e.years(prefix)
	}
	if start != nil && end != nil && *start > *end {
		e.logger.Warn().
			Str("degree", hit.Type).
			Int("start_year", *start).
			Int("end_year", *end).
			Msg("reversed degree year range, dropping start year")
		start = nil
	}
	rec.StartYear = start
	rec.EndYear = end

	switch {
	case present || e.lex.InProgress(window):
		rec.Status = types.StatusInProgress
	case end != nil:
		rec.Status = types.StatusCompleted
	default:
		rec.Status = types.StatusUnknown
	}

	if hit.Type == types.DegreePhD {
		if status, ok := e.lex.PhDStatus(window); ok {
			rec.PhDStatus = &status
		} else if rec.Status == types.StatusInProgress {
			status := types.PhDPursuing
			rec.PhDStatus = &status
		}
	}

	return rec
}

// field reads the field of study from the text right after a degree match
func (e *Extractor) field(rest string) string {
	bare := strings.HasPrefix(rest, " ")
	rest = strings.TrimLeft(rest, " ")

	// parenthesised text: a field, or an expansion/qualifier to skip
	for strings.HasPrefix(rest, "(") {
		closing := strings.Index(rest, ")")
		if closing < 0 {
			break
		}
		inner := strings.TrimSpace(rest[1:closing])
		if f := e.cleanField(inner); f != "" && len(e.lex.DegreeHits(inner)) == 0 {
			return f
		}
		rest = rest[closing+1:]
		bare = strings.HasPrefix(rest, " ")
		rest = strings.TrimLeft(rest, " ")
	}

	lower := strings.ToLower(rest)
	switch {
	case strings.HasPrefix(lower, "in "), strings.HasPrefix(lower, "of "):
		rest = rest[3:]
	case strings.HasPrefix(rest, ":"):
		rest = rest[1:]
	case bare:
	default:
		return ""
	}

	rest = " " + strings.TrimLeft(rest, " ")
	if loc := fieldCutPattern.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	return e.cleanField(rest)
}

func (e *Extractor) cleanField(s string) string {
	s = strings.Trim(strings.TrimSpace(s), ".:;-–, ")
	if s == "" || strings.IndexFunc(s, unicode.IsLetter) < 0 {
		return ""
	}
	if len(strings.Fields(s)) > maxFieldWords {
		return ""
	}
	if e.lex.Institution().MatchString(s) || e.lex.InProgress(s) || e.lex.IsPresent(s) {
		return ""
	}
	if _, ok := e.lex.PhDStatus(s); ok {
		return ""
	}
	return s
}

// institution takes the text after "from"/"at", else the first segment
// carrying an institution keyword
func (e *Extractor) institution(window string) string {
	if m := fromAtPattern.FindStringSubmatch(window); m != nil {
		if inst := cleanInstitution(m[1]); inst != "" {
			return inst
		}
	}

	for _, segment := range segmentSplit.Split(window, -1) {
		if !e.lex.Institution().MatchString(segment) || len(e.lex.DegreeHits(segment)) > 0 {
			continue
		}
		if inst := cleanInstitution(segment); inst != "" {
			return inst
		}
	}
	return ""
}

func cleanInstitution(s string) string {
	if loc := yearPattern.FindStringIndex(s); loc != nil {
		if strings.IndexFunc(s[:loc[0]], unicode.IsLetter) >= 0 {
			s = s[:loc[0]]
		} else {
			s = yearPattern.ReplaceAllString(s, "")
		}
	}
	s = strings.Trim(strings.TrimSpace(s), ".:;-–, ")
	if strings.IndexFunc(s, unicode.IsLetter) < 0 {
		return ""
	}
	return s
}

// years returns the first year range in window, else the last single year
// as the end year
func (e *Extractor) years(window string) (start, end *int, present bool) {
	if m := e.rangeRe.FindStringSubmatch(window); m != nil {
		s := atoi(m[1])
		start = &s
		if m[2] != "" {
			v := atoi(m[2])
			end = &v
		} else {
			present = true
		}
		return start, end, present
	}

	if all := yearPattern.FindAllString(window, -1); len(all) > 0 {
		v := atoi(all[len(all)-1])
		end = &v
	}
	return nil, end, false
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
