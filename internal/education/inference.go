package education

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/lexicon"
	"github.com/jonathan/resume-analyzer/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Infer derives PhD facts, the highest degree and the department from degree
// records and an optional department hint
func Infer(records []types.DegreeRecord, hint string, lex *lexicon.Compiled) types.EducationSummary {
	if lex == nil {
		lex = lexicon.DefaultCompiled()
	}

	var summary types.EducationSummary

	if phd := latestPhD(records); phd != nil {
		summary.HasPhD = true
		summary.PhDStartYear = copyInt(phd.StartYear)
		summary.PhDEndYear = copyInt(phd.EndYear)
		summary.PhDStatus = phdStatus(records, phd)
	}

	summary.HighestDegree = highestDegree(records, lex)
	summary.Department, summary.DepartmentMatch = department(records, hint, lex)

	return summary
}

// latestPhD picks the PhD record that is in progress, else the one with the
// latest end year, else the first one
func latestPhD(records []types.DegreeRecord) *types.DegreeRecord {
	var best *types.DegreeRecord
	for i := range records {
		rec := &records[i]
		if rec.DegreeType != types.DegreePhD {
			continue
		}
		if best == nil || phdRecency(rec) > phdRecency(best) {
			best = rec
		}
	}
	return best
}

func phdRecency(rec *types.DegreeRecord) int {
	switch {
	case rec.Status == types.StatusInProgress:
		return 1 << 30
	case rec.EndYear != nil:
		return *rec.EndYear
	default:
		return 0
	}
}

func phdStatus(records []types.DegreeRecord, chosen *types.DegreeRecord) *string {
	if chosen.PhDStatus != nil {
		return copyString(chosen.PhDStatus)
	}
	for _, rec := range records {
		if rec.DegreeType == types.DegreePhD && rec.PhDStatus != nil {
			return copyString(rec.PhDStatus)
		}
	}
	return nil
}

// highestDegree returns the record of maximum rank, ties going to the latest
// end year
func highestDegree(records []types.DegreeRecord, lex *lexicon.Compiled) *types.DegreeRecord {
	var best *types.DegreeRecord
	for i := range records {
		rec := &records[i]
		if best == nil {
			best = rec
			continue
		}
		rank, bestRank := lex.Rank(rec.DegreeType), lex.Rank(best.DegreeType)
		if rank > bestRank || (rank == bestRank && endYear(rec) > endYear(best)) {
			best = rec
		}
	}
	if best == nil {
		return nil
	}
	cp := *best
	return &cp
}

func endYear(rec *types.DegreeRecord) int {
	if rec.EndYear == nil {
		return 0
	}
	return *rec.EndYear
}

// department prefers a field of study containing the hint; otherwise the
// department table decides and the hint only sets the match flag
func department(records []types.DegreeRecord, hint string, lex *lexicon.Compiled) (*string, bool) {
	hint = strings.TrimSpace(hint)
	hintLower := strings.ToLower(hint)

	if hint != "" {
		for _, rec := range records {
			if rec.FieldOfStudy == nil {
				continue
			}
			if strings.Contains(strings.ToLower(*rec.FieldOfStudy), hintLower) {
				dept := displayCase(*rec.FieldOfStudy)
				return &dept, true
			}
		}
	}

	for _, rec := range records {
		if rec.FieldOfStudy == nil {
			continue
		}
		dept, ok := lex.Department(*rec.FieldOfStudy)
		if !ok {
			continue
		}
		deptLower := strings.ToLower(dept)
		match := hint != "" && (strings.Contains(deptLower, hintLower) || strings.Contains(hintLower, deptLower))
		return &dept, match
	}

	return nil, false
}

// displayCase title-cases text written entirely in one case and leaves
// mixed-case text alone
func displayCase(s string) string {
	hasUpper, hasLower := false, false
	for _, r := range s {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if hasUpper && hasLower {
		return s
	}
	return cases.Title(language.English).String(strings.ToLower(s))
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
