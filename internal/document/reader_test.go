package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	doc := `=== VIDEO CHAPTERS ===

1. Intro (00:00)
2. Deep Dive (01:30)

=== TRANSCRIPT BY CHAPTERS ===


## Chapter 1: Intro (00:00)

  first line  
second line

## Chapter 2: Deep Dive (01:30)

more text
`

	p := Parse(doc)
	assert.Equal(t, []string{"1. Intro (00:00)", "2. Deep Dive (01:30)"}, p.Entries)
	assert.Equal(t, []string{"first line", "second line"}, p.Sections[0])
	assert.Equal(t, "more text", p.Text(1))
	assert.Equal(t, []int{0, 1}, p.Indexes())
	assert.True(t, p.HasChapters())
	assert.Equal(t, []Chapter{
		{Number: 1, Title: "Intro", Clock: "00:00"},
		{Number: 2, Title: "Deep Dive", Clock: "01:30"},
	}, p.Chapters())
}

func TestParse_MalformedHeader(t *testing.T) {
	doc := `=== VIDEO CHAPTERS ===
1. A (00:00)
=== TRANSCRIPT BY CHAPTERS ===
## Chapter 1: A (00:00)
kept
## Chapter one: broken
ignored
also ignored
## Chapter 2: B (00:10)
back again
`

	p := Parse(doc)
	require.Len(t, p.Skipped, 1)

	var malformed *MalformedChapterHeaderError
	assert.True(t, errors.As(p.Skipped[0], &malformed))
	assert.Equal(t, "## Chapter one: broken", malformed.Line)

	assert.Equal(t, []string{"kept"}, p.Sections[0])
	assert.Equal(t, []string{"back again"}, p.Sections[1])
	assert.Len(t, p.Sections, 2)
}

func TestParse_HeadingBeforeContentMarkerIgnored(t *testing.T) {
	p := Parse("## Chapter 1: early\ntext\n")
	assert.Empty(t, p.Sections)
	assert.False(t, p.HasChapters())
}

func TestParse_FlatDocument(t *testing.T) {
	p := Parse(FlatMarker + "\n\n[00:00:01.000] hi")
	assert.Empty(t, p.Entries)
	assert.Empty(t, p.Sections)
}

func TestParse_ChapterZeroIsMalformed(t *testing.T) {
	p := Parse(ContentMarker + "\n## Chapter 0: nope\nx\n")
	assert.Len(t, p.Skipped, 1)
	assert.Empty(t, p.Sections)
}

func TestParsed_TitlesFallback(t *testing.T) {
	p := &Parsed{Entries: []string{"free form entry"}}
	assert.Equal(t, []string{"free form entry"}, p.Titles())
}
