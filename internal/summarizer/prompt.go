package summarizer

import (
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/document"
)

// SystemPrompt frames every summary request.
const SystemPrompt = "You are a helpful assistant that creates clear, concise summaries of educational video transcripts about college admissions and academic preparation."

const promptIntro = "Please provide a comprehensive, detailed summary of the following video transcript. Create a well-structured, in-depth analysis that captures all important information, strategies, and insights."

const chapteredInstruction = `
**IMPORTANT: This video has chapters with content already organized by timestamp. Please create a detailed summary that follows this chapter structure:**

CHAPTERS:
%CHAPTERS%

The transcript content is already organized by chapters. In your summary, reference specific chapters and organize your analysis according to this structure. Pay special attention to the '📚 Chapter Breakdown' section where you should provide detailed analysis of each chapter's content.
`

const listedInstruction = `
**IMPORTANT: This video has chapters. Please organize your summary to align with these chapters where possible:**
%CHAPTERS%

When summarizing, reference specific chapters in your analysis and organize content according to the chapter structure.
`

const responseFormat = `Format your response exactly as follows:

# VIDEO SUMMARY

## 🎯 Overview
[Provide a detailed 4-5 sentence overview explaining what this video covers, the main educational goals, and the context/background of the content]

## 📚 Chapter Breakdown
[If chapters exist, provide a detailed analysis of each chapter. Format each chapter description with proper line breaks for readability. Break long paragraphs into shorter lines (60-80 characters) and use multiple paragraphs when needed. If no chapters, state "This video does not have defined chapters."]

## 📝 Main Topics Covered
[Provide a comprehensive list of all major topics, subtopics, and themes discussed. Include specific strategies, frameworks, methods, and concepts mentioned]
- [Topic 1 with detailed explanation]
- [Topic 2 with detailed explanation]
- [Topic 3 with detailed explanation]
- [Continue with all relevant topics...]

## 💡 Key Takeaways & Insights
[Provide detailed explanations of the most important lessons, strategies, and insights. Include specific examples, data points, statistics, or case studies mentioned]
1. [Detailed key point 1 with explanation and context]
2. [Detailed key point 2 with explanation and context]
3. [Detailed key point 3 with explanation and context]
[Continue with all significant takeaways...]

## 🎯 Actionable Strategies & Recommendations
[Provide specific, detailed action items organized by category. Include step-by-step processes, timelines, and implementation details]

### For Students:
- [Detailed strategy 1 with implementation steps]
- [Detailed strategy 2 with implementation steps]
- [Continue with all student-specific advice...]

### For Parents:
- [Detailed strategy 1 with implementation steps]
- [Detailed strategy 2 with implementation steps]
- [Continue with all parent-specific advice...]

### Timeline & Deadlines:
- [Specific dates, deadlines, and timing recommendations with explanations]
- [Grade-level specific timing advice]
- [Seasonal or annual planning recommendations]

## 📊 Specific Details & Examples
[Include any specific examples, case studies, success stories, statistics, or data points mentioned in the video]
- [Specific example 1 with details]
- [Specific example 2 with details]
- [Continue with all relevant specifics...]

## ⚠️ Critical Warnings & Common Mistakes
[Provide detailed explanations of mistakes to avoid, potential pitfalls, and important cautions mentioned]
- [Detailed warning 1 with explanation of consequences]
- [Detailed warning 2 with explanation of consequences]
- [Continue with all warnings and mistakes to avoid...]

## 🔗 Resources & Next Steps
[Include any specific resources, tools, websites, programs, or follow-up actions recommended in the video]
- [Resource 1 with description and how to access]
- [Resource 2 with description and how to access]
- [Continue with all mentioned resources...]

---

Transcript:
`

// ChapterInstruction returns the chapter guidance for a parsed document: the
// detailed form when chapter sections were recovered, a short form when only
// the chapter list was, and nothing otherwise.
func ChapterInstruction(parsed *document.Parsed) string {
	if parsed == nil || !parsed.HasChapters() {
		return ""
	}
	entries := strings.Join(parsed.Entries, "\n")
	if len(parsed.Sections) > 0 {
		return strings.Replace(chapteredInstruction, "%CHAPTERS%", entries, 1)
	}
	return strings.Replace(listedInstruction, "%CHAPTERS%", entries, 1)
}

// BuildPrompt builds the user prompt for a transcript.
func BuildPrompt(content string, parsed *document.Parsed) string {
	var b strings.Builder
	b.WriteString(promptIntro)
	b.WriteString("\n\n")
	b.WriteString(ChapterInstruction(parsed))
	b.WriteString("\n\n")
	b.WriteString(responseFormat)
	b.WriteString(content)
	return b.String()
}
