package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyentantai21042004/transcript-flow/internal/document"
)

func TestChapterInstruction(t *testing.T) {
	withSections := document.Parse("=== VIDEO CHAPTERS ===\n1. Intro (00:00)\n=== TRANSCRIPT BY CHAPTERS ===\n## Chapter 1: Intro (00:00)\nhi\n")
	listOnly := document.Parse("=== VIDEO CHAPTERS ===\n1. Intro (00:00)\n2. End (05:00)\n")
	flat := document.Parse("=== TRANSCRIPT WITH TIMESTAMPS ===\n[00:00:01.000] hi\n")

	got := ChapterInstruction(withSections)
	assert.True(t, strings.HasPrefix(got, "\n**IMPORTANT: This video has chapters with content already organized by timestamp."))
	assert.Contains(t, got, "CHAPTERS:\n1. Intro (00:00)\n\n")
	assert.Contains(t, got, "'📚 Chapter Breakdown'")

	got = ChapterInstruction(listOnly)
	assert.True(t, strings.HasPrefix(got, "\n**IMPORTANT: This video has chapters. Please organize"))
	assert.Contains(t, got, "where possible:**\n1. Intro (00:00)\n2. End (05:00)\n\nWhen summarizing")

	assert.Empty(t, ChapterInstruction(flat))
	assert.Empty(t, ChapterInstruction(nil))
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("the transcript", document.Parse("no markers"))

	assert.True(t, strings.HasPrefix(got, promptIntro+"\n\n\n\nFormat your response exactly as follows:\n\n# VIDEO SUMMARY\n"))
	assert.True(t, strings.HasSuffix(got, "---\n\nTranscript:\nthe transcript"))
	for _, section := range []string{
		"## 🎯 Overview",
		"## 📚 Chapter Breakdown",
		"## 📝 Main Topics Covered",
		"## 💡 Key Takeaways & Insights",
		"## 🎯 Actionable Strategies & Recommendations",
		"### For Students:",
		"### For Parents:",
		"### Timeline & Deadlines:",
		"## 📊 Specific Details & Examples",
		"## ⚠️ Critical Warnings & Common Mistakes",
		"## 🔗 Resources & Next Steps",
	} {
		assert.Contains(t, got, section)
	}
}
