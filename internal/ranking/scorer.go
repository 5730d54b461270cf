// Package ranking computes the suitability score of an analyzed resume.
package ranking

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/lexicon"
)

// Input holds the facts the score depends on
type Input struct {
	// HighestDegree is a degree type such as "PhD", or "" when none was found
	HighestDegree   string
	HasPhD          bool
	ExperienceYears float64
	DepartmentMatch bool
	Publications    int
}

// Breakdown is a score with its components
type Breakdown struct {
	Baseline     float64 `json:"baseline"`
	Degree       float64 `json:"degree"`
	PhD          float64 `json:"phd"`
	Experience   float64 `json:"experience"`
	Department   float64 `json:"department"`
	Publications float64 `json:"publications"`
	Total        float64 `json:"total"`
}

// Scorer applies a fixed set of weights
type Scorer struct {
	weights lexicon.ScoringWeights
}

// New creates a Scorer from the lexicon's scoring weights. A nil lexicon
// selects the built-in weights.
func New(lex *lexicon.Compiled) *Scorer {
	if lex == nil {
		lex = lexicon.DefaultCompiled()
	}
	return &Scorer{weights: lex.Scoring()}
}

// Score returns the total score rounded to 0.1
func (s *Scorer) Score(in Input) float64 {
	return s.Breakdown(in).Total
}

// Breakdown returns every component of the score. Components are never
// negative and the total is their sum rounded to 0.1.
func (s *Scorer) Breakdown(in Input) Breakdown {
	w := s.weights
	b := Breakdown{Baseline: w.Baseline}

	if in.HighestDegree != "" {
		b.Degree = w.DegreeLevel[in.HighestDegree]
	}
	if in.HasPhD {
		b.PhD = w.PhDBonus
	}
	if in.ExperienceYears > 0 {
		b.Experience = math.Min(w.ExperiencePerYear*in.ExperienceYears, w.ExperienceCap)
	}
	if in.DepartmentMatch {
		b.Department = w.DepartmentMatch
	}
	if in.Publications > 0 {
		b.Publications = math.Min(w.PerPublication*float64(in.Publications), w.PublicationCap)
	}

	b.Total = round1(b.Baseline + b.Degree + b.PhD + b.Experience + b.Department + b.Publications)
	return b
}

// Notes creates a brief explanation of the score
func (b Breakdown) Notes() string {
	var parts []string

	if b.Degree > 0 {
		parts = append(parts, fmt.Sprintf("Degree level +%.1f", b.Degree))
	} else {
		parts = append(parts, "No scored degree")
	}
	if b.PhD > 0 {
		parts = append(parts, fmt.Sprintf("PhD +%.1f", b.PhD))
	}
	if b.Experience > 0 {
		parts = append(parts, fmt.Sprintf("Experience +%.1f", b.Experience))
	}
	if b.Department > 0 {
		parts = append(parts, "Department match")
	}
	if b.Publications > 0 {
		parts = append(parts, fmt.Sprintf("Publications +%.1f", b.Publications))
	}

	return strings.Join(parts, ". ")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
