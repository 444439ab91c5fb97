package chapter

import (
	"sort"

	"github.com/nguyentantai21042004/transcript-flow/internal/caption"
)

// Assignment maps a boundary Index to its cues in stream order.
type Assignment map[int][]caption.Cue

// Count returns the total number of assigned cues.
func (a Assignment) Count() int {
	n := 0
	for _, cues := range a {
		n += len(cues)
	}
	return n
}

// Align places every cue in the chapter whose start is the latest one not
// after the cue. Cues that precede all boundaries, or whose start cannot be
// parsed, land in chapter 0. No cue is dropped.
func Align(cues []caption.Cue, boundaries []Boundary) Assignment {
	sorted := make([]Boundary, len(boundaries))
	copy(sorted, boundaries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartSeconds != sorted[j].StartSeconds {
			return sorted[i].StartSeconds < sorted[j].StartSeconds
		}
		return sorted[i].Index < sorted[j].Index
	})

	out := make(Assignment)
	for _, cue := range cues {
		idx := locate(sorted, cue)
		out[idx] = append(out[idx], cue)
	}
	return out
}

func locate(sorted []Boundary, cue caption.Cue) int {
	ts, err := cue.Timestamp()
	if err != nil {
		return 0
	}

	// first boundary that starts after the cue; its predecessor owns the cue
	i := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].StartSeconds > ts
	})
	if i == 0 {
		return 0
	}
	return sorted[i-1].Index
}
