package identity

import (
	"testing"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/sections"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, raw string) types.Identity {
	t.Helper()
	text := sections.New(nil).Segment(ingestion.Normalize(raw))
	return New(nil).Extract(text)
}

func value(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestExtract_FullHeader(t *testing.T) {
	id := extract(t, `CURRICULUM VITAE
Dr. Jane Doe
Associate Professor at XYZ University
jane.doe@example.com | +1 (555) 123-4567 | Boston, MA

Education
PhD in Computer Science, Stanford University, 2015-2019`)

	assert.Equal(t, "Jane Doe", value(id.Name))
	assert.Equal(t, "jane.doe@example.com", value(id.Email))
	assert.Equal(t, "+1 (555) 123-4567", value(id.Phone))
	assert.Equal(t, "Boston, MA", value(id.Location))
	assert.Equal(t, "XYZ University", value(id.Organization))
}

func TestExtract_LabeledFields(t *testing.T) {
	id := extract(t, `Name: John Smith
Address: 12 Park Street, Pune
Mobile: +91 98765 43210
Email: john.smith@mail.co.in`)

	assert.Equal(t, "John Smith", value(id.Name))
	assert.Equal(t, "12 Park Street, Pune", value(id.Location))
	assert.Equal(t, "+91 98765 43210", value(id.Phone))
	assert.Equal(t, "john.smith@mail.co.in", value(id.Email))
}

func TestExtract_OrganizationFromCurrentExperience(t *testing.T) {
	id := extract(t, `Jane Doe

Experience
Lecturer, XYZ University, 2018-2021
Software Engineer, Acme Corp, 2021-Present`)

	assert.Equal(t, "Acme Corp", value(id.Organization))
}

func TestExtract_EmailFallsBackToWholeDocument(t *testing.T) {
	id := extract(t, `Jane Doe

Skills
Go, Python

References
Contact me at jane@example.org`)

	assert.Equal(t, "jane@example.org", value(id.Email))
}

func TestExtract_RejectsYearRangesAsPhones(t *testing.T) {
	id := extract(t, `Jane Doe
2015-2019
Member since 2010 2012`)

	assert.Nil(t, id.Phone)
}

func TestExtract_Empty(t *testing.T) {
	id := extract(t, "")

	assert.Nil(t, id.Name)
	assert.Nil(t, id.Email)
	assert.Nil(t, id.Phone)
	assert.Nil(t, id.Location)
	assert.Nil(t, id.Organization)
}

func TestExtract_NoHeaderSection(t *testing.T) {
	id := extract(t, `Education
PhD in Physics, MIT, 2010`)

	assert.Nil(t, id.Name)
	assert.Nil(t, id.Location)
}

func TestIsPhone(t *testing.T) {
	tests := []struct {
		candidate string
		want      bool
	}{
		{"+1 (555) 123-4567", true},
		{"98765 43210", true},
		{"555-1234", true},
		{"2015-2019", false},
		{"2015 - 19", false},
		{"12/05/2019", false},
		{"2010 2012", false},
		{"12345", false},
		{"1234567890123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			assert.Equal(t, tt.want, isPhone(tt.candidate))
		})
	}
}

func TestNameCandidate(t *testing.T) {
	e := New(nil)

	tests := []struct {
		segment string
		want    string
	}{
		{"Prof. Alan Turing", "Alan Turing"},
		{"Jane Doe, PhD", "Jane Doe"},
		{"Name - Mary O'Neil", "Mary O'Neil"},
		{"Resume", ""},
		{"jane@example.com", ""},
		{"www.janedoe.dev", ""},
		{"Phone: 555 1234", ""},
		{"XYZ University", ""},
		{"Education", ""},
		{"Room 42", ""},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			assert.Equal(t, tt.want, e.nameCandidate(tt.segment))
		})
	}
}

func TestSegments(t *testing.T) {
	require.Equal(t, []string{"a", "b c", "d", "e"}, segments(" a | b c • d ; e |"))
}
