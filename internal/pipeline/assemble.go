package pipeline

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultPreviewRunes is the length of text_preview when none is configured
const DefaultPreviewRunes = 8000

// Parts holds every stage output that goes into a profile
type Parts struct {
	Identity     types.Identity
	Degrees      []types.DegreeRecord
	Education    types.EducationSummary
	Experience   types.ExperienceSummary
	Publications types.PublicationCounts
	Score        float64
	Quality      types.ExtractionQuality
	// Text is the normalized body the preview is cut from
	Text         string
	PreviewRunes int
}

// Assemble merges stage outputs into a profile. It never returns nil
// slices and recomputes the publication total from its buckets.
func Assemble(p Parts) *types.ResumeProfile {
	profile := &types.ResumeProfile{
		Name:                p.Identity.Name,
		Email:               p.Identity.Email,
		Phone:               p.Identity.Phone,
		CurrentLocation:     p.Identity.Location,
		CurrentOrganization: p.Identity.Organization,

		TeachingExperienceYears: years(p.Experience.TeachingTenths),
		IndustryExperienceYears: years(p.Experience.IndustryTenths),
		OtherExperienceYears:    years(p.Experience.OtherTenths),
		TotalExperienceYears:    years(p.Experience.TotalTenths()),

		HasPhD:          p.Education.HasPhD,
		PhDStartYear:    p.Education.PhDStartYear,
		PhDEndYear:      p.Education.PhDEndYear,
		PhDStatus:       p.Education.PhDStatus,
		Department:      p.Education.Department,
		DepartmentMatch: p.Education.DepartmentMatch,
		Score:           p.Score,

		ResearchArticlesCount:         p.Publications.Articles,
		BooksCount:                    p.Publications.Books,
		ConferencePapersCount:         p.Publications.ConferencePapers,
		UnclassifiedPublicationsCount: p.Publications.Unclassified,
		PublicationsTotalCount: p.Publications.Articles + p.Publications.Books +
			p.Publications.ConferencePapers + p.Publications.Unclassified,

		DegreesInfo:       []types.DegreeRecord{},
		DegreesDetected:   []string{},
		FieldsOfStudy:     []string{},
		ExperienceEntries: []types.ExperienceEntry{},

		ExtractionQuality: p.Quality,
	}

	if p.Education.HighestDegree != nil {
		degree := p.Education.HighestDegree.DegreeType
		profile.HighestDegree = &degree
	}

	profile.DegreesInfo = append(profile.DegreesInfo, p.Degrees...)
	profile.ExperienceEntries = append(profile.ExperienceEntries, p.Experience.Entries...)

	var degreeTypes, fields []string
	for _, rec := range p.Degrees {
		degreeTypes = append(degreeTypes, rec.DegreeType)
		if rec.FieldOfStudy != nil {
			fields = append(fields, *rec.FieldOfStudy)
		}
	}
	profile.DegreesDetected = dedupeFold(degreeTypes)
	profile.FieldsOfStudy = dedupeFold(fields)

	if profile.ExtractionQuality.FailedStages == nil {
		profile.ExtractionQuality.FailedStages = []string{}
	}

	previewRunes := p.PreviewRunes
	if previewRunes <= 0 {
		previewRunes = DefaultPreviewRunes
	}
	profile.TextPreview, _ = ingestion.TruncateRunes(p.Text, previewRunes)

	return profile
}

func years(tenths int) float64 {
	return float64(tenths) / 10
}

// dedupeFold drops case-insensitive repeats, keeping first-seen order and spelling
func dedupeFold(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
