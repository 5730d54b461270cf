// Package lexicon holds the fixed lookup tables that drive resume analysis:
// heading synonyms, degree synonyms and ranks, experience and publication
// category rules, department keywords and scoring weights.
package lexicon

import "github.com/jonathan/resume-analyzer/internal/types"

// Publication buckets
const (
	PubArticles         = "articles"
	PubBooks            = "books"
	PubConferencePapers = "conference_papers"
)

// Lexicon is the declarative form of every table. It round-trips through YAML.
type Lexicon struct {
	Headings             []HeadingSynonyms   `yaml:"headings" validate:"required,min=1,dive"`
	Degrees              []DegreePattern     `yaml:"degrees" validate:"required,min=1,dive"`
	DegreeRanks          map[string]int      `yaml:"degree_ranks" validate:"required,min=1,dive,gte=1"`
	PresentTokens        []string            `yaml:"present_tokens" validate:"required,min=1,dive,required"`
	InProgressWords      []string            `yaml:"in_progress_words" validate:"dive,required"`
	PhDQualifiers        []PhDQualifier      `yaml:"phd_qualifiers" validate:"dive"`
	InstitutionKeywords  []string            `yaml:"institution_keywords" validate:"dive,required"`
	OrganizationKeywords []string            `yaml:"organization_keywords" validate:"dive,required"`
	ExperienceRules      []CategoryRule      `yaml:"experience_rules" validate:"dive"`
	Publications         PublicationRules    `yaml:"publications"`
	Departments          []DepartmentKeyword `yaml:"departments" validate:"dive"`
	TitleWords           []string            `yaml:"title_words" validate:"dive,required"`
	Honorifics           []string            `yaml:"honorifics" validate:"dive,required"`
	Scoring              ScoringWeights      `yaml:"scoring"`
}

// HeadingSynonyms lists the heading phrases that open a section of the given label
type HeadingSynonyms struct {
	Label    types.SectionLabel `yaml:"label" validate:"required,oneof=header education experience publications other"`
	Synonyms []string           `yaml:"synonyms" validate:"required,min=1,dive,required"`
}

// DegreePattern maps a regular expression to a canonical degree type.
// Patterns are Go regexps and may carry inline flags such as (?i).
type DegreePattern struct {
	Pattern string `yaml:"pattern" validate:"required"`
	Type    string `yaml:"type" validate:"required"`
}

// PhDQualifier maps phrases found near a PhD mention to a PhD status
type PhDQualifier struct {
	Status  string   `yaml:"status" validate:"required,oneof=awarded thesis_submitted pursuing"`
	Phrases []string `yaml:"phrases" validate:"required,min=1,dive,required"`
}

// CategoryRule is one entry of an ordered first-match-wins rule list
type CategoryRule struct {
	Category string   `yaml:"category" validate:"required"`
	Keywords []string `yaml:"keywords" validate:"required,min=1,dive,required"`
}

// PublicationRules configures the publication counter
type PublicationRules struct {
	Rules []CategoryRule `yaml:"rules" validate:"dive"`
	// DefaultCategory receives entries no rule matched. Empty keeps them unclassified.
	DefaultCategory string `yaml:"default_category" validate:"omitempty,oneof=articles books conference_papers"`
}

// DepartmentKeyword maps a field-of-study keyword to a department name
type DepartmentKeyword struct {
	Keyword    string `yaml:"keyword" validate:"required"`
	Department string `yaml:"department" validate:"required"`
}

// ScoringWeights is the scoring policy. Every weight is non-negative.
type ScoringWeights struct {
	Baseline          float64            `yaml:"baseline" validate:"gte=0"`
	DegreeLevel       map[string]float64 `yaml:"degree_level" validate:"dive,gte=0"`
	PhDBonus          float64            `yaml:"phd_bonus" validate:"gte=0"`
	ExperiencePerYear float64            `yaml:"experience_per_year" validate:"gte=0"`
	ExperienceCap     float64            `yaml:"experience_cap" validate:"gte=0"`
	DepartmentMatch   float64            `yaml:"department_match" validate:"gte=0"`
	PerPublication    float64            `yaml:"per_publication" validate:"gte=0"`
	PublicationCap    float64            `yaml:"publication_cap" validate:"gte=0"`
}

// Default returns a fresh copy of the built-in tables
func Default() *Lexicon {
	return &Lexicon{
		Headings: []HeadingSynonyms{
			{Label: types.SectionEducation, Synonyms: []string{
				"education", "educational qualification", "educational qualifications",
				"academic background", "academic qualifications", "academic qualification",
				"academic profile", "academic credentials", "academics", "qualifications",
				"degrees", "training",
			}},
			{Label: types.SectionExperience, Synonyms: []string{
				"experience", "work experience", "professional experience", "teaching experience",
				"industry experience", "employment", "employment history", "work history",
				"career history", "positions held", "appointments",
			}},
			{Label: types.SectionPublications, Synonyms: []string{
				"publications", "research publications", "details of research publications",
				"list of publications", "selected publications", "research papers",
				"books", "articles", "presentations",
			}},
			{Label: types.SectionHeader, Synonyms: []string{
				"contact", "contact information", "contact details",
				"personal details", "personal information", "personal profile",
			}},
			{Label: types.SectionOther, Synonyms: []string{
				"skills", "technical skills", "projects", "awards", "honors", "honours",
				"achievements", "certifications", "certificates", "languages", "interests",
				"hobbies", "references", "declaration", "summary", "objective",
				"career objective", "profile", "refresher courses", "workshops attended",
				"memberships", "professional memberships", "activities",
				"extracurricular activities", "strengths",
			}},
		},
		Degrees: []DegreePattern{
			{Pattern: `(?i)\bph\.?\s?d\b\.?`, Type: types.DegreePhD},
			{Pattern: `(?i)\bdoctor of philosophy\b`, Type: types.DegreePhD},
			{Pattern: `(?i)\bdoctorate\b`, Type: types.DegreePhD},
			{Pattern: `(?i)\bdoctoral (?:degree|studies|candidate|program|programme)\b`, Type: types.DegreePhD},
			{Pattern: `(?i)\bd\.?\s?phil\b\.?`, Type: types.DegreePhD},

			{Pattern: `(?i)\bmaster(?:['’]?s)? of (?:science|arts|engineering|technology|business administration|computer applications|philosophy|education|commerce|fine arts|public health)\b`, Type: types.DegreeMaster},
			{Pattern: `(?i)\bmaster(?:['’]?s)?(?: degree)?\b`, Type: types.DegreeMaster},
			{Pattern: `(?i)\bm\.?\s?tech\b\.?`, Type: types.DegreeMaster},
			{Pattern: `(?i)\bm\.?\s?sc\b\.?`, Type: types.DegreeMaster},
			{Pattern: `(?i)\bm\.?\s?phil\b\.?`, Type: types.DegreeMaster},
			{Pattern: `(?i)\bm\.\s?com\b\.?`, Type: types.DegreeMaster},
			{Pattern: `(?i)\b(?:mba|mca)\b`, Type: types.DegreeMaster},
			{Pattern: `\bM\.?S\b\.?`, Type: types.DegreeMaster},
			{Pattern: `\bM\.\s?A\b\.?`, Type: types.DegreeMaster},
			{Pattern: `\bM\.\s?E\b\.?`, Type: types.DegreeMaster},
			{Pattern: `\bMEng\b`, Type: types.DegreeMaster},

			{Pattern: `(?i)\bbachelor(?:['’]?s)? of (?:science|arts|engineering|technology|commerce|computer applications|business administration|education|fine arts)\b`, Type: types.DegreeBachelor},
			{Pattern: `(?i)\bbachelor(?:['’]?s)?(?: degree)?\b`, Type: types.DegreeBachelor},
			{Pattern: `(?i)\bb\.?\s?tech\b\.?`, Type: types.DegreeBachelor},
			{Pattern: `(?i)\bb\.?\s?sc\b\.?`, Type: types.DegreeBachelor},
			{Pattern: `(?i)\bb\.\s?com\b\.?`, Type: types.DegreeBachelor},
			{Pattern: `(?i)\b(?:bca|bba)\b`, Type: types.DegreeBachelor},
			{Pattern: `\bB\.?S\b\.?`, Type: types.DegreeBachelor},
			{Pattern: `\bB\.\s?A\b\.?`, Type: types.DegreeBachelor},
			{Pattern: `\bB\.\s?E\b\.?`, Type: types.DegreeBachelor},
			{Pattern: `\bBEng\b`, Type: types.DegreeBachelor},

			{Pattern: `(?i)\b(?:post[- ]?graduate |advanced )?diploma\b`, Type: types.DegreeDiploma},

			{Pattern: `(?i)\b(?:higher|senior) secondary\b`, Type: types.DegreeHighSchool},
			{Pattern: `(?i)\bhigh school\b`, Type: types.DegreeHighSchool},
			{Pattern: `(?i)\b(?:ssc|hsc)\b`, Type: types.DegreeHighSchool},
		},
		DegreeRanks: map[string]int{
			types.DegreeHighSchool: 1,
			types.DegreeDiploma:    2,
			types.DegreeBachelor:   3,
			types.DegreeMaster:     4,
			types.DegreePhD:        5,
		},
		PresentTokens:   []string{"present", "current", "currently", "now", "ongoing", "till date", "to date", "pursuing", "continuing"},
		InProgressWords: []string{"pursuing", "ongoing", "currently", "in progress", "expected"},
		PhDQualifiers: []PhDQualifier{
			{Status: types.PhDAwarded, Phrases: []string{"awarded", "conferred"}},
			{Status: types.PhDThesisSubmitted, Phrases: []string{"thesis submitted", "submitted thesis", "synopsis submitted"}},
			{Status: types.PhDPursuing, Phrases: []string{"pursuing", "ongoing", "in progress", "currently"}},
		},
		InstitutionKeywords: []string{
			"university", "college", "institute", "institution", "school", "academy",
			"polytechnic", "iit", "nit", "iiit",
		},
		OrganizationKeywords: []string{
			"university", "college", "institute", "school", "academy", "company", "inc",
			"ltd", "llc", "pvt", "corp", "corporation", "technologies", "solutions",
			"labs", "group", "bank", "hospital", "gmbh",
		},
		ExperienceRules: []CategoryRule{
			{Category: string(types.CategoryTeaching), Keywords: []string{
				"lecturer", "professor", "assistant professor", "associate professor",
				"teaching assistant", "teaching fellow", "teacher", "instructor",
				"faculty", "tutor", "adjunct", "teaching",
			}},
			{Category: string(types.CategoryIndustry), Keywords: []string{
				"engineer", "developer", "analyst", "company", "corp", "corporation",
				"industry", "industrial", "consultant", "manager", "software", "programmer",
				"architect", "pvt", "ltd", "inc", "llc", "technologies", "solutions",
			}},
		},
		Publications: PublicationRules{
			Rules: []CategoryRule{
				{Category: PubArticles, Keywords: []string{"journal", "article", "transactions", "issn"}},
				{Category: PubBooks, Keywords: []string{"book", "chapter", "isbn", "monograph", "textbook"}},
				{Category: PubConferencePapers, Keywords: []string{"conference", "proceedings", "proc.", "symposium", "workshop", "seminar"}},
			},
		},
		Departments: []DepartmentKeyword{
			{Keyword: "computer science", Department: "Computer Science"},
			{Keyword: "computer engineering", Department: "Computer Science"},
			{Keyword: "computer applications", Department: "Computer Science"},
			{Keyword: "information technology", Department: "Computer Science"},
			{Keyword: "information systems", Department: "Computer Science"},
			{Keyword: "software", Department: "Computer Science"},
			{Keyword: "computer", Department: "Computer Science"},
			{Keyword: "data science", Department: "Computer Science"},
			{Keyword: "artificial intelligence", Department: "Computer Science"},
			{Keyword: "machine learning", Department: "Computer Science"},
			{Keyword: "cse", Department: "Computer Science"},
			{Keyword: "electronics and communication", Department: "Electronics and Communication Engineering"},
			{Keyword: "electronics", Department: "Electronics and Communication Engineering"},
			{Keyword: "ece", Department: "Electronics and Communication Engineering"},
			{Keyword: "vlsi", Department: "Electronics and Communication Engineering"},
			{Keyword: "signal processing", Department: "Electronics and Communication Engineering"},
			{Keyword: "embedded systems", Department: "Electronics and Communication Engineering"},
			{Keyword: "electrical", Department: "Electrical Engineering"},
			{Keyword: "eee", Department: "Electrical Engineering"},
			{Keyword: "mechanical", Department: "Mechanical Engineering"},
			{Keyword: "thermal engineering", Department: "Mechanical Engineering"},
			{Keyword: "thermodynamics", Department: "Mechanical Engineering"},
			{Keyword: "fluid mechanics", Department: "Mechanical Engineering"},
			{Keyword: "civil", Department: "Civil Engineering"},
			{Keyword: "structural engineering", Department: "Civil Engineering"},
			{Keyword: "chemical engineering", Department: "Chemical Engineering"},
			{Keyword: "physics", Department: "Physics"},
			{Keyword: "mathematics", Department: "Mathematics"},
			{Keyword: "statistics", Department: "Mathematics"},
			{Keyword: "chemistry", Department: "Chemistry"},
			{Keyword: "biotechnology", Department: "Biotechnology"},
			{Keyword: "english", Department: "English"},
			{Keyword: "economics", Department: "Economics"},
			{Keyword: "business administration", Department: "Management"},
			{Keyword: "management", Department: "Management"},
			{Keyword: "commerce", Department: "Commerce"},
		},
		TitleWords: []string{"resume", "résumé", "curriculum vitae", "cv", "biodata", "bio-data"},
		Honorifics: []string{"dr", "prof", "mr", "mrs", "ms", "miss", "er"},
		Scoring: ScoringWeights{
			Baseline: 10,
			DegreeLevel: map[string]float64{
				types.DegreeHighSchool: 0,
				types.DegreeDiploma:    5,
				types.DegreeBachelor:   10,
				types.DegreeMaster:     20,
				types.DegreePhD:        20,
			},
			PhDBonus:          30,
			ExperiencePerYear: 2,
			ExperienceCap:     30,
			DepartmentMatch:   20,
			PerPublication:    1,
			PublicationCap:    10,
		},
	}
}
