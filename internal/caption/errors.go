package caption

import (
	"errors"
	"fmt"
)

// ErrEmptyStream is returned when a caption stream yields no usable cues.
var ErrEmptyStream = errors.New("caption stream has no cues")

// MalformedTimestampError reports a cue start that is not HH:MM:SS.mmm.
type MalformedTimestampError struct {
	Value string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q", e.Value)
}
