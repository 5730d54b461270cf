package lexicon

import (
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML lexicon file. Lists present in the file replace the
// corresponding default tables, maps are merged key by key and absent keys
// keep the defaults.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read lexicon file %s", path),
			Cause:   err,
		}
	}
	return Parse(data)
}

// Parse decodes YAML lexicon data over the defaults and validates the result
func Parse(data []byte) (*Lexicon, error) {
	lex := Default()
	if err := yaml.Unmarshal(data, lex); err != nil {
		return nil, &LoadError{
			Message: "failed to parse lexicon YAML",
			Cause:   err,
		}
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return lex, nil
}

// Marshal encodes the lexicon as YAML
func (l *Lexicon) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, &LoadError{Message: "failed to marshal lexicon", Cause: err}
	}
	return data, nil
}

// Validate checks struct constraints, degree ranks and that every pattern compiles
func (l *Lexicon) Validate() error {
	validate := validator.New()
	if err := validate.Struct(l); err != nil {
		return &ValidationError{Message: "invalid lexicon", Cause: err}
	}

	for i, d := range l.Degrees {
		if _, err := regexp.Compile(d.Pattern); err != nil {
			return &ValidationError{
				Message: fmt.Sprintf("degree pattern %d (%s) does not compile", i, d.Type),
				Cause:   err,
			}
		}
		if _, ok := l.DegreeRanks[d.Type]; !ok {
			return &ValidationError{
				Message: fmt.Sprintf("degree type %q has no rank", d.Type),
			}
		}
	}

	for _, r := range l.ExperienceRules {
		switch r.Category {
		case "teaching", "industry", "other":
		default:
			return &ValidationError{Message: fmt.Sprintf("unknown experience category %q", r.Category)}
		}
	}
	for _, r := range l.Publications.Rules {
		switch r.Category {
		case PubArticles, PubBooks, PubConferencePapers:
		default:
			return &ValidationError{Message: fmt.Sprintf("unknown publication category %q", r.Category)}
		}
	}

	for degree := range l.Scoring.DegreeLevel {
		if _, ok := l.DegreeRanks[degree]; !ok {
			return &ValidationError{
				Message: fmt.Sprintf("scoring weight for unknown degree type %q", degree),
			}
		}
	}

	return nil
}
