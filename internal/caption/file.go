package caption

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/asticode/go-astisub"
)

// FromSRT converts SubRip input into WebVTT text.
func FromSRT(r io.Reader) (string, error) {
	subs, err := astisub.ReadFromSRT(r)
	if err != nil {
		return "", fmt.Errorf("read srt: %w", err)
	}
	if len(subs.Items) == 0 {
		return "", ErrEmptyStream
	}

	var buf bytes.Buffer
	if err := subs.WriteToWebVTT(&buf); err != nil {
		return "", fmt.Errorf("write webvtt: %w", err)
	}
	return buf.String(), nil
}

// ReadFile loads a .vtt or .srt file and returns its content as WebVTT text.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open caption file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".srt") {
		return FromSRT(f)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read caption file: %w", err)
	}
	return string(data), nil
}

// IsCaptionFile reports whether path has a caption extension the parser reads.
func IsCaptionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt", ".srt":
		return true
	}
	return false
}
