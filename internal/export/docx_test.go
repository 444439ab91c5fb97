package export

import (
	"archive/zip"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	assert.Equal(t, "/out/2024-01-01_Talk.docx", Path("/out/2024-01-01_Talk.txt"))
	assert.Equal(t, "x_summary.docx", Path("x_summary.txt"))
}

func TestSummary(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "talk_summary.docx")
	md := "# VIDEO SUMMARY\n\n## Overview\nA **bold** claim.\n\n- one\n1. first\n---\n"

	require.NoError(t, Summary("Talk", md, out))
	assertDocx(t, out)
}

func TestTranscript(t *testing.T) {
	out := filepath.Join(t.TempDir(), "talk.docx")
	content := "=== VIDEO CHAPTERS ===\n\n1. Intro (00:00)\n\n=== TRANSCRIPT BY CHAPTERS ===\n\n" +
		"## Chapter 1: Intro (00:00)\nhello there\nwrapped line\n\nsecond paragraph\n"

	require.NoError(t, Transcript("Talk", content, out))
	assertDocx(t, out)
}

func TestCleanMarkdownInline(t *testing.T) {
	assert.Equal(t, "bold and code", cleanMarkdownInline("**bold** and `code`"))
}

func assertDocx(t *testing.T, path string) {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "word/document.xml")
}
