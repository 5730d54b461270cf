// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// DegreeStatus is the completion state of a degree
type DegreeStatus string

const (
	StatusCompleted  DegreeStatus = "completed"
	StatusInProgress DegreeStatus = "in-progress"
	StatusUnknown    DegreeStatus = "unknown"
)

// Canonical degree types
const (
	DegreePhD        = "PhD"
	DegreeMaster     = "Master"
	DegreeBachelor   = "Bachelor"
	DegreeDiploma    = "Diploma"
	DegreeHighSchool = "HighSchool"
)

// PhD qualifiers recognized near a PhD mention
const (
	PhDAwarded         = "awarded"
	PhDThesisSubmitted = "thesis_submitted"
	PhDPursuing        = "pursuing"
)

// ExperienceCategory classifies a dated work entry
type ExperienceCategory string

const (
	CategoryTeaching ExperienceCategory = "teaching"
	CategoryIndustry ExperienceCategory = "industry"
	CategoryOther    ExperienceCategory = "other"
)

// Extraction quality statuses
const (
	QualityGood  = "good"
	QualityPoor  = "poor"
	QualityEmpty = "empty"
)

// AnalyzeRequest is the engine input: extracted plain text and an optional department hint
type AnalyzeRequest struct {
	Text             string `json:"text"`
	TargetDepartment string `json:"target_department,omitempty" validate:"max=200"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// DegreeRecord is a single degree mention found in the education section
type DegreeRecord struct {
	DegreeType   string       `json:"degree_type"`
	FieldOfStudy *string      `json:"field_of_study"`
	Institution  *string      `json:"institution"`
	StartYear    *int         `json:"start_year"`
	EndYear      *int         `json:"end_year"`
	Status       DegreeStatus `json:"status"`
	PhDStatus    *string      `json:"phd_status,omitempty"` // awarded, thesis_submitted or pursuing
	RawText      string       `json:"raw_text"`
}

// ExperienceEntry is a dated span from the experience section
type ExperienceEntry struct {
	Category       ExperienceCategory `json:"category"`
	StartYear      int                `json:"start_year"`
	StartMonth     *int               `json:"start_month,omitempty"`
	EndYear        *int               `json:"end_year"`
	EndMonth       *int               `json:"end_month,omitempty"`
	Current        bool               `json:"current"`
	DurationMonths int                `json:"duration_months"`
	DurationYears  float64            `json:"duration_years"`
	Description    string             `json:"description"`
}

// ExperienceSummary holds classified entries and per-category totals in tenths of a year
type ExperienceSummary struct {
	Entries        []ExperienceEntry
	TeachingTenths int
	IndustryTenths int
	OtherTenths    int
}

// TotalTenths is the sum of the three category totals
func (s ExperienceSummary) TotalTenths() int {
	return s.TeachingTenths + s.IndustryTenths + s.OtherTenths
}

// PublicationCounts holds publication totals per category.
// Total is always the sum of the four buckets.
type PublicationCounts struct {
	Articles         int `json:"articles"`
	Books            int `json:"books"`
	ConferencePapers int `json:"conference_papers"`
	Unclassified     int `json:"unclassified"`
	Total            int `json:"total"`
}

// Identity holds the contact fields found in the resume header
type Identity struct {
	Name         *string
	Email        *string
	Phone        *string
	Location     *string
	Organization *string
}

// EducationSummary is the result of PhD and department inference
type EducationSummary struct {
	HasPhD          bool
	PhDStartYear    *int
	PhDEndYear      *int
	PhDStatus       *string
	HighestDegree   *DegreeRecord
	Department      *string
	DepartmentMatch bool
}

// ExtractionQuality reports how usable the input text was and whether the run finished
type ExtractionQuality struct {
	Status       string   `json:"status"`        // good, poor or empty
	Partial      bool     `json:"partial"`       // a budget stopped the run before every stage ran
	Truncated    bool     `json:"truncated"`     // input exceeded the rune budget
	FailedStages []string `json:"failed_stages"` // stages whose output was replaced by defaults
}

// ResumeProfile is the structured analysis result returned to callers
type ResumeProfile struct {
	Name                *string `json:"name"`
	Email               *string `json:"email"`
	Phone               *string `json:"phone"`
	CurrentLocation     *string `json:"current_location"`
	CurrentOrganization *string `json:"current_organization"`

	TeachingExperienceYears float64 `json:"teaching_experience_years"`
	IndustryExperienceYears float64 `json:"industry_experience_years"`
	OtherExperienceYears    float64 `json:"other_experience_years"`
	TotalExperienceYears    float64 `json:"total_experience_years"`

	HasPhD          bool    `json:"has_phd"`
	PhDStartYear    *int    `json:"phd_start_year"`
	PhDEndYear      *int    `json:"phd_end_year"`
	PhDStatus       *string `json:"phd_status"`
	HighestDegree   *string `json:"highest_degree"`
	Department      *string `json:"department"`
	DepartmentMatch bool    `json:"department_match"`
	Score           float64 `json:"score"`

	PublicationsTotalCount        int `json:"publications_total_count"`
	ResearchArticlesCount         int `json:"research_articles_count"`
	BooksCount                    int `json:"books_count"`
	ConferencePapersCount         int `json:"conference_papers_count"`
	UnclassifiedPublicationsCount int `json:"unclassified_publications_count"`

	DegreesInfo       []DegreeRecord    `json:"degrees_info"`
	DegreesDetected   []string          `json:"degrees_detected"`
	FieldsOfStudy     []string          `json:"fields_of_study"`
	ExperienceEntries []ExperienceEntry `json:"experience_entries"`

	ExtractionQuality ExtractionQuality `json:"extraction_quality"`
	TextPreview       string            `json:"text_preview"`
}
