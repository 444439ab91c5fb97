// Package naming derives file names from video metadata.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	UnknownDate   = "unknown-date"
	maxTitleRunes = 80

	TranscriptExt = ".txt"
	summarySuffix = "_summary"
)

var (
	reUnsafe   = regexp.MustCompile(`[<>:"/\\|?*]`)
	reLangTag  = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]+)*$`)
	reDigits8  = regexp.MustCompile(`^\d{8}$`)
	reISODate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	reNonSlug  = regexp.MustCompile(`[^a-z0-9]+`)
	dateLayout = "2006-01-02"
)

// CleanTitle replaces characters that are unsafe in file names and caps the
// result at 80 runes.
func CleanTitle(title string) string {
	clean := reUnsafe.ReplaceAllString(title, "_")
	if r := []rune(clean); len(r) > maxTitleRunes {
		clean = string(r[:maxTitleRunes])
	}
	return clean
}

// Stem is the shared base name of a video's transcript and summary files.
func Stem(date, title string) string {
	if date == "" {
		date = UnknownDate
	}
	return date + "_" + CleanTitle(title)
}

// SplitStem recovers the date and a display title from a stem. Underscores in
// the title read as spaces.
func SplitStem(stem string) (date, title string) {
	spaced := strings.ReplaceAll(stem, "_", " ")
	date, title, ok := strings.Cut(spaced, " ")
	if !ok || title == "" {
		return date, "Unknown Title"
	}
	return date, title
}

// TranscriptName is the transcript file name for stem.
func TranscriptName(stem string) string {
	return stem + TranscriptExt
}

// SummaryName is the summary file name for a transcript file name.
func SummaryName(transcript string) string {
	return strings.TrimSuffix(transcript, TranscriptExt) + summarySuffix + TranscriptExt
}

// IsSummary reports whether name is a summary file.
func IsSummary(name string) bool {
	return strings.HasSuffix(name, summarySuffix+TranscriptExt)
}

// StemFromCaption strips the caption extension and a trailing language tag,
// so "2024-01-02_Talk.en.vtt" yields "2024-01-02_Talk".
func StemFromCaption(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.LastIndex(base, "."); i > 0 && reLangTag.MatchString(base[i+1:]) {
		base = base[:i]
	}
	return base
}

// NormalizeDate turns the date forms yt-dlp reports into YYYY-MM-DD.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "" || raw == "unknown":
		return UnknownDate
	case reDigits8.MatchString(raw):
		return raw[:4] + "-" + raw[4:6] + "-" + raw[6:8]
	case reISODate.MatchString(raw):
		return raw[:10]
	case strings.Index(raw, "T") > 0:
		return raw[:strings.Index(raw, "T")]
	}
	return UnknownDate
}

// DateFromUnix formats a unix timestamp as a UTC date.
func DateFromUnix(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(dateLayout)
}

// Slug returns a lowercase ASCII identifier for s.
func Slug(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r < unicode.MaxASCII {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Trim(reNonSlug.ReplaceAllString(b.String(), "-"), "-")
}
