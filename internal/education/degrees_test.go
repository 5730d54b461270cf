package education

import (
	"bytes"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/sections"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, educationBody string) []types.DegreeRecord {
	t.Helper()
	text := sections.New(nil).Segment(ingestion.Normalize("Jane Doe\n\nEducation\n" + educationBody))
	return New(nil).Extract(text)
}

func str(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func num(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

func TestExtract_PhDScenario(t *testing.T) {
	records := extract(t, "PhD in Computer Science, Stanford University, 2015-2019")

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, types.DegreePhD, rec.DegreeType)
	assert.Equal(t, "Computer Science", str(rec.FieldOfStudy))
	assert.Equal(t, "Stanford University", str(rec.Institution))
	assert.Equal(t, 2015, num(rec.StartYear))
	assert.Equal(t, 2019, num(rec.EndYear))
	assert.Equal(t, types.StatusCompleted, rec.Status)
	assert.Nil(t, rec.PhDStatus)
}

func TestExtract_Variants(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		degree      string
		field       string
		institution string
		start       int
		end         int
		status      types.DegreeStatus
	}{
		{
			name:        "abbreviation with bare field",
			line:        "M.Sc. Physics, University of Delhi, 2010 - 2012",
			degree:      types.DegreeMaster,
			field:       "Physics",
			institution: "University of Delhi",
			start:       2010, end: 2012,
			status: types.StatusCompleted,
		},
		{
			name:        "parenthesised field",
			line:        "B.Tech (Computer Science) from IIT Bombay, 2008",
			degree:      types.DegreeBachelor,
			field:       "Computer Science",
			institution: "IIT Bombay",
			start:       -1, end: 2008,
			status: types.StatusCompleted,
		},
		{
			name:        "expansion in parentheses skipped",
			line:        "M.Tech (Master of Technology) in Thermal Engineering, XYZ College",
			degree:      types.DegreeMaster,
			field:       "Thermal Engineering",
			institution: "XYZ College",
			start:       -1, end: -1,
			status: types.StatusUnknown,
		},
		{
			name:        "in progress",
			line:        "Master's in Data Science, Boston University, 2023 - Present",
			degree:      types.DegreeMaster,
			field:       "Data Science",
			institution: "Boston University",
			start:       2023, end: -1,
			status: types.StatusInProgress,
		},
		{
			name:        "connector of",
			line:        "Bachelor of Engineering in Mechanical Engineering at Pune University 2006-2010",
			degree:      types.DegreeBachelor,
			field:       "Mechanical Engineering",
			institution: "Pune University",
			start:       2006, end: 2010,
			status: types.StatusCompleted,
		},
		{
			name:        "no field after comma",
			line:        "MBA, Harvard Business School, 2015",
			degree:      types.DegreeMaster,
			field:       "<nil>",
			institution: "Harvard Business School",
			start:       -1, end: 2015,
			status: types.StatusCompleted,
		},
		{
			name:        "high school",
			line:        "Higher Secondary, St. Xavier's School, 2002",
			degree:      types.DegreeHighSchool,
			field:       "<nil>",
			institution: "St. Xavier's School",
			start:       -1, end: 2002,
			status: types.StatusCompleted,
		},
		{
			name:        "diploma with from",
			line:        "Diploma in Civil Engineering from ABC Polytechnic",
			degree:      types.DegreeDiploma,
			field:       "Civil Engineering",
			institution: "ABC Polytechnic",
			start:       -1, end: -1,
			status: types.StatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := extract(t, tt.line)
			require.Len(t, records, 1)
			rec := records[0]
			assert.Equal(t, tt.degree, rec.DegreeType)
			assert.Equal(t, tt.field, str(rec.FieldOfStudy))
			assert.Equal(t, tt.institution, str(rec.Institution))
			assert.Equal(t, tt.start, num(rec.StartYear))
			assert.Equal(t, tt.end, num(rec.EndYear))
			assert.Equal(t, tt.status, rec.Status)
		})
	}
}

func TestExtract_PhDQualifiers(t *testing.T) {
	tests := []struct {
		line   string
		status string
	}{
		{"Ph.D. in Chemistry (Thesis Submitted), IIT Madras", types.PhDThesisSubmitted},
		{"PhD in Physics, awarded 2014, MIT", types.PhDAwarded},
		{"PhD (Pursuing), Anna University", types.PhDPursuing},
		{"Doctorate in Economics, 2019 - ongoing", types.PhDPursuing},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			records := extract(t, tt.line)
			require.Len(t, records, 1)
			assert.Equal(t, types.DegreePhD, records[0].DegreeType)
			assert.Equal(t, tt.status, str(records[0].PhDStatus))
		})
	}
}

func TestExtract_MultipleMentionsInDocumentOrder(t *testing.T) {
	records := extract(t, `PhD in Computer Science, Stanford University, 2015-2019
M.S. in Computer Science, Stanford University, 2013-2015
B.Tech in Computer Science, IIT Delhi, 2009-2013
B.Tech in Computer Science, IIT Delhi, 2009-2013`)

	require.Len(t, records, 4)
	assert.Equal(t, types.DegreePhD, records[0].DegreeType)
	assert.Equal(t, types.DegreeMaster, records[1].DegreeType)
	assert.Equal(t, types.DegreeBachelor, records[2].DegreeType)
	// repeated degrees are not deduplicated here
	assert.Equal(t, records[2], records[3])
}

func TestExtract_TwoDegreesOnOneLine(t *testing.T) {
	records := extract(t, "B.Sc. Mathematics 2005 and M.Sc. Statistics 2007")

	require.Len(t, records, 2)
	assert.Equal(t, types.DegreeBachelor, records[0].DegreeType)
	assert.Equal(t, "Mathematics", str(records[0].FieldOfStudy))
	assert.Equal(t, 2005, num(records[0].EndYear))
	assert.Equal(t, types.DegreeMaster, records[1].DegreeType)
	assert.Equal(t, "Statistics", str(records[1].FieldOfStudy))
	assert.Equal(t, 2007, num(records[1].EndYear))
}

func TestExtract_SameTypeTwiceInLineIsOneMention(t *testing.T) {
	records := extract(t, "Master of Science (MS) in Physics, 2012")
	require.Len(t, records, 1)
	assert.Equal(t, "Physics", str(records[0].FieldOfStudy))
}

func TestExtract_ContinuationLines(t *testing.T) {
	records := extract(t, `Doctor of Philosophy
Computer Science, Stanford University
2015 - 2019

Bachelor of Science, 2010`)

	require.Len(t, records, 2)
	phd := records[0]
	assert.Equal(t, types.DegreePhD, phd.DegreeType)
	assert.Equal(t, "Computer Science", str(phd.FieldOfStudy))
	assert.Equal(t, "Stanford University", str(phd.Institution))
	assert.Equal(t, 2015, num(phd.StartYear))
	assert.Equal(t, 2019, num(phd.EndYear))
	assert.Equal(t, "Doctor of Philosophy\nComputer Science, Stanford University\n2015 - 2019", phd.RawText)

	assert.Equal(t, 2010, num(records[1].EndYear))
}

func TestExtract_YearsBeforeMention(t *testing.T) {
	records := extract(t, "2004 - 2008: Stanford University, Bachelor of Arts")
	require.Len(t, records, 1)
	assert.Equal(t, 2004, num(records[0].StartYear))
	assert.Equal(t, 2008, num(records[0].EndYear))
	assert.Equal(t, "Stanford University", str(records[0].Institution))
}

func TestExtract_ReversedRangeDropsStartYear(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	text := sections.New(nil).Segment(ingestion.Normalize("Education\nPhD in Physics, 2019 - 2015"))
	records := New(nil).WithLogger(logger).Extract(text)

	require.Len(t, records, 1)
	assert.Nil(t, records[0].StartYear)
	assert.Equal(t, 2015, num(records[0].EndYear))
	assert.Contains(t, buf.String(), "reversed degree year range")
}

func TestExtract_NoEducationSection(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantTypes []string
		wantInst  []string
	}{
		{
			name:      "headless document",
			doc:       "Jane Doe\nPhD in Computer Science, Stanford University, 2015-2019\nLecturer at XYZ University, 2018-2021",
			wantTypes: []string{types.DegreePhD},
			wantInst:  []string{"Stanford University"},
		},
		{
			name:      "wrapped undated line keeps its continuation",
			doc:       "Jane Doe\nM.S. in Physics\nBoston University, 2012",
			wantTypes: []string{types.DegreeMaster},
			wantInst:  []string{"Boston University"},
		},
		{
			name:      "unknown heading",
			doc:       "Jane Doe\n\nAcademic Record\nB.Sc. in Chemistry, Delhi University, 2010\n\nExperience\nMBA Program Coordinator, 2015-2018",
			wantTypes: []string{types.DegreeBachelor},
			wantInst:  []string{"Delhi University"},
		},
		{
			name: "no degrees",
			doc:  "Jane Doe\nEngineer, 2018-2021",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := sections.New(nil).Segment(ingestion.Normalize(tt.doc))
			require.False(t, text.HasSection(types.SectionEducation))

			records := New(nil).Extract(text)
			require.NotNil(t, records)
			require.Len(t, records, len(tt.wantTypes))
			for i, rec := range records {
				assert.Equal(t, tt.wantTypes[i], rec.DegreeType)
				assert.Equal(t, tt.wantInst[i], str(rec.Institution))
			}
		})
	}
}

func TestExtract_IgnoresFalseAbbreviations(t *testing.T) {
	records := extract(t, "Coursework: machine learning, me and my team, be kind")
	assert.Empty(t, records)
}

func TestExtract_YearsAreOrdered(t *testing.T) {
	records := extract(t, `PhD in Physics, 2020 - 2016
MSc Chemistry 2010-2012
BSc 2008`)

	for _, rec := range records {
		if rec.StartYear != nil && rec.EndYear != nil {
			assert.LessOrEqual(t, *rec.StartYear, *rec.EndYear)
		}
	}
}
