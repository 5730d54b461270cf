package publications

import (
	"testing"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/lexicon"
	"github.com/jonathan/resume-analyzer/internal/sections"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segment(doc string) types.ResumeText {
	return sections.New(nil).Segment(ingestion.Normalize(doc))
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want types.PublicationCounts
	}{
		{
			name: "numbered entries with ordered rules",
			doc: `Publications
1. A. Author, Deep nets, IEEE Transactions on Neural Networks, 2019
2. B. Author, A book on graphs, ISBN 978-3-16-148410-0
3. C. Author, Proceedings of the 3rd Symposium on Y, 2020
4. D. Author, Some untitled note, 2021`,
			want: types.PublicationCounts{Articles: 1, Books: 1, ConferencePapers: 1, Unclassified: 1, Total: 4},
		},
		{
			name: "sub-headings set the default category",
			doc: `Publications
Journal Papers
1. X. Author, Fast sorting, Algorithmica, 2019
2. Y. Author, Slow sorting, 2020
Book Chapters
1. Z. Author, On heaps, Springer, 2017
Conference Papers
1. W. Author, Trees, Proc. of ICALP, 2018
2. V. Author, Tries, 2016`,
			want: types.PublicationCounts{Articles: 2, Books: 1, ConferencePapers: 2, Total: 5},
		},
		{
			name: "section heading sets the default category",
			doc: `Books
- Graph Theory Basics, Springer, 2012
- Advanced Topics, Wiley, 2016`,
			want: types.PublicationCounts{Books: 2, Total: 2},
		},
		{
			name: "unmarked entries split on closing years and blank lines",
			doc: `Publications
A. Author, Title one, Journal X, 2019
B. Author, Title two, 2020

C. Author, Title three`,
			want: types.PublicationCounts{Articles: 1, Unclassified: 2, Total: 3},
		},
		{
			name: "no publications section",
			doc:  "Jane Doe\nExperience\nEngineer, 2019 - 2020",
			want: types.PublicationCounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(nil).Count(segment(tt.doc))
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.Total, got.Articles+got.Books+got.ConferencePapers)
		})
	}
}

func TestEntries_ContinuationLines(t *testing.T) {
	entries := New(nil).Entries(segment(`Publications
- A. Author, "Learning to rank",
  Journal of Machine Learning Research,
  vol. 5, pp. 1-20, 2018
- B. Author, "Graphs", Springer, 2015`))

	require.Len(t, entries, 2)
	assert.Equal(t, `A. Author, "Learning to rank", Journal of Machine Learning Research, vol. 5, pp. 1-20, 2018`, entries[0].Text)
	assert.Equal(t, lexicon.PubArticles, entries[0].Category)
	assert.Equal(t, Unclassified, entries[1].Category)
}

func TestEntries_EmptyIsNotNil(t *testing.T) {
	entries := New(nil).Entries(segment(""))
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestCount_DefaultCategory(t *testing.T) {
	lex, err := lexicon.Parse([]byte("publications:\n  default_category: articles\n"))
	require.NoError(t, err)
	compiled, err := lex.Compile()
	require.NoError(t, err)

	got := New(compiled).Count(segment("Publications\n1. A. Author, Untitled, 2019\n2. B. Author, A chapter, 2020"))
	assert.Equal(t, types.PublicationCounts{Articles: 1, Books: 1, Total: 2}, got)
}

func TestSubheading(t *testing.T) {
	c := New(nil)
	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{"Journal Papers", lexicon.PubArticles, true},
		{"Book Chapters:", lexicon.PubBooks, true},
		{"Papers in Conferences and Workshops", lexicon.PubConferencePapers, true},
		{"Journal of Applied Physics,", "", false},
		{"Journal papers published in 2019", "", false},
		{"Invited Talks", "", false},
		{":", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := c.subheading(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
