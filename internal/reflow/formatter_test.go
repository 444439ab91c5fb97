package reflow

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = "word"
	}
	return strings.Join(w, " ")
}

func TestFormatter_Line(t *testing.T) {
	f := New(Options{})
	long := words(30) // 149 runes

	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "blank", line: "   ", want: []string{"   "}},
		{name: "short", line: "short line", want: []string{"short line"}},
		{name: "short header", line: "# " + words(20), want: []string{"# " + words(20)}},
		{
			name: "plain keeps indent",
			line: "  " + words(20),
			want: []string{"  " + words(15), "  " + words(5)},
		},
		{
			name: "bullet hanging indent",
			line: "- " + long,
			want: []string{"- " + words(14), "  " + words(14), "  " + words(2)},
		},
		{
			name: "numbered hanging indent",
			line: "12. " + long,
			want: []string{"12. " + words(14), "    " + words(14), "    " + words(2)},
		},
		{
			name: "bold is not a bullet",
			line: "**Note** " + words(20),
			want: []string{"**Note** " + words(14), words(6)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Line(tt.line))
		})
	}
}

func TestFormatter_LongHeaderIsWrapped(t *testing.T) {
	f := New(Options{})
	line := "# " + words(30)
	got := f.Line(line)
	assert.Greater(t, len(got), 1)
	for _, l := range got {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), DefaultWidth)
	}
}

func TestFormatter_LongWordIsNotBroken(t *testing.T) {
	f := New(Options{Width: 10})
	word := strings.Repeat("x", 25)
	got := f.Line("ab " + word + " cd")
	assert.Equal(t, []string{"ab", word, "cd"}, got)
}

func TestFormatter_Threshold(t *testing.T) {
	f := New(Options{Width: 80, Threshold: 100})
	ninety := strings.Repeat("a ", 45)[:90]
	assert.Equal(t, []string{ninety}, f.Line(ninety))

	long := words(25)
	for _, l := range f.Line(long) {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), 80)
	}
}

func TestFormatter_Idempotent(t *testing.T) {
	f := New(Options{})
	text := "# Title\n\n- " + words(30) + "\n1. " + words(30) + "\n" + words(40)
	once := f.Format(text)
	assert.Equal(t, once, f.Format(once))
	for _, l := range strings.Split(once, "\n") {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), DefaultWidth)
	}
}

func TestFormatter_DecimalIsNotNumbered(t *testing.T) {
	f := New(Options{})
	line := "1.5 million students applied this year, which is a record number compared to the previous admissions cycle overall"
	got := f.Line(line)
	assert.Greater(t, len(got), 1)
	assert.True(t, strings.HasPrefix(got[0], "1.5 million"))
	assert.Equal(t, line, strings.Join(got, " "))
	for _, l := range got {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), DefaultWidth)
	}
}

func TestFormatter_PreservesLineOrder(t *testing.T) {
	f := New(Options{})
	got := f.Format("first\n\nsecond\nthird")
	assert.Equal(t, "first\n\nsecond\nthird", got)
}

func TestTranscript(t *testing.T) {
	got := Transcript([]string{"one thing", "here. two things. three", "things. four. five"}, 100)
	assert.Equal(t, "one thing here. two things. three things. four. five.", got)

	long := make([]string, 0, 60)
	for i := 0; i < 60; i++ {
		long = append(long, "lorem ipsum dolor")
	}
	for _, l := range strings.Split(Transcript(long, 0), "\n") {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), TranscriptWidth)
	}
}
