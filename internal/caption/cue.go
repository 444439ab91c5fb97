package caption

import "fmt"

// Cue is one caption fragment. Start is the raw block start as written in the
// stream; Text is already tag-stripped and trimmed.
type Cue struct {
	Start string
	Text  string
}

// Timestamp returns the cue start in seconds.
func (c Cue) Timestamp() (float64, error) {
	return ParseTimestamp(c.Start)
}

// String renders the cue the way the flat transcript lists it.
func (c Cue) String() string {
	return fmt.Sprintf("[%s] %s", c.Start, c.Text)
}

// Texts returns the text of every cue, in order.
func Texts(cues []Cue) []string {
	out := make([]string, 0, len(cues))
	for _, c := range cues {
		out = append(out, c.Text)
	}
	return out
}
