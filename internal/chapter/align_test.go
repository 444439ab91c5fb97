package chapter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyentantai21042004/transcript-flow/internal/caption"
)

func cueAt(seconds float64, text string) caption.Cue {
	return caption.Cue{Start: caption.FormatTimestamp(seconds), Text: text}
}

func TestAlign(t *testing.T) {
	boundaries := []Boundary{
		{Index: 0, StartSeconds: 0, Title: "Intro"},
		{Index: 1, StartSeconds: 60, Title: "Middle"},
		{Index: 2, StartSeconds: 180, Title: "End"},
	}

	tests := []struct {
		name    string
		seconds float64
		want    int
	}{
		{name: "just before second", seconds: 59, want: 0},
		{name: "exactly on second", seconds: 60, want: 1},
		{name: "far past last", seconds: 1000, want: 2},
		{name: "at zero", seconds: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Align([]caption.Cue{cueAt(tt.seconds, "x")}, boundaries)
			assert.Len(t, got[tt.want], 1)
		})
	}
}

func TestAlign_TwoChapters(t *testing.T) {
	boundaries := []Boundary{
		{Index: 0, StartSeconds: 0, Title: "Intro"},
		{Index: 1, StartSeconds: 90, Title: "Deep Dive"},
	}

	got := Align([]caption.Cue{cueAt(45, "hello")}, boundaries)
	assert.Equal(t, []caption.Cue{cueAt(45, "hello")}, got[0])
	assert.Empty(t, got[1])
}

func TestAlign_UnsortedBoundaries(t *testing.T) {
	boundaries := []Boundary{
		{Index: 0, StartSeconds: 120, Title: "Later"},
		{Index: 1, StartSeconds: 30, Title: "Earlier"},
	}

	got := Align([]caption.Cue{cueAt(10, "a"), cueAt(40, "b"), cueAt(130, "c")}, boundaries)
	assert.Equal(t, []string{"b"}, caption.Texts(got[1]))
	assert.Equal(t, []string{"a", "c"}, caption.Texts(got[0]))
}

func TestAlign_TiesGoToLastBoundary(t *testing.T) {
	boundaries := []Boundary{
		{Index: 0, StartSeconds: 0},
		{Index: 1, StartSeconds: 50},
		{Index: 2, StartSeconds: 50},
	}

	got := Align([]caption.Cue{cueAt(50, "tie")}, boundaries)
	assert.Len(t, got[2], 1)
}

func TestAlign_MalformedTimestamp(t *testing.T) {
	boundaries := []Boundary{
		{Index: 0, StartSeconds: 0},
		{Index: 1, StartSeconds: 10},
	}

	got := Align([]caption.Cue{{Start: "garbage", Text: "x"}, cueAt(20, "y")}, boundaries)
	assert.Equal(t, []string{"x"}, caption.Texts(got[0]))
	assert.Equal(t, []string{"y"}, caption.Texts(got[1]))
}

func TestAlign_Partition(t *testing.T) {
	boundaries := []Boundary{
		{Index: 0, StartSeconds: 5},
		{Index: 1, StartSeconds: 15},
		{Index: 2, StartSeconds: 25},
	}

	var cues []caption.Cue
	for i := 0; i < 40; i++ {
		// disordered on purpose
		cues = append(cues, cueAt(float64((i*7)%40), string(rune('a'+i%26))+string(rune('A'+i/26))))
	}

	got := Align(cues, boundaries)
	assert.Equal(t, len(cues), got.Count())

	seen := map[string]int{}
	for idx, list := range got {
		for _, c := range list {
			seen[c.Text]++
			assert.Contains(t, []int{0, 1, 2}, idx)
		}
	}
	for _, c := range cues {
		assert.Equal(t, 1, seen[c.Text], c.Text)
	}
}

func TestAlign_NoBoundaries(t *testing.T) {
	got := Align([]caption.Cue{cueAt(1, "a"), cueAt(2, "b")}, nil)
	assert.Equal(t, 2, len(got[0]))
}

func TestFromMetadata(t *testing.T) {
	got := FromMetadata([]Metadata{
		{StartTime: 0, EndTime: 60, Title: "Intro"},
		{StartTime: 60, EndTime: 125, Title: "  "},
	})

	assert.Equal(t, []Boundary{
		{Index: 0, StartSeconds: 0, Title: "Intro"},
		{Index: 1, StartSeconds: 60, Title: "Chapter 2"},
	}, got)
	assert.Equal(t, "01:00", got[1].Clock())
}
