package processing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/disaster-radar/internal/processing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "punctuation", input: "Hello!!!   world", want: "Hello world"},
		{name: "collapse whitespace", input: "foo\n\nbar\t baz", want: "foo bar baz"},
		{name: "remove urls", input: "Check https://example.com for info", want: "Check for info"},
		{name: "html entities", input: "Roads &amp; bridges", want: "Roads bridges"},
		{name: "retweet and mention", input: "RT @ndrf: Flood alert in #Assam https://t.co/x", want: "Flood alert in Assam"},
		{name: "keeps hyphenated words", input: "life-threatening surge.", want: "life-threatening surge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, processing.CleanText(tt.input))
		})
	}
}

func TestBuildPostID(t *testing.T) {
	ts := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	id1 := processing.BuildPostID("Twitter", "text", ts)
	id2 := processing.BuildPostID("twitter", "text", ts.In(time.FixedZone("IST", 19800)))
	require.Len(t, id1, 40)
	require.Equal(t, id1, id2)
	require.NotEqual(t, id1, processing.BuildPostID("RSS", "text", ts))
}

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "no urls", input: "Hello world", want: nil},
		{name: "single url", input: "Check https://example.com for more", want: []string{"https://example.com"}},
		{name: "multiple urls", input: "Go to https://example.com or http://test.org now", want: []string{"https://example.com", "http://test.org"}},
		{name: "duplicate urls", input: "https://example.com and https://example.com again", want: []string{"https://example.com"}},
		{name: "urls with path", input: "Visit https://example.com/path/to/page for details", want: []string{"https://example.com/path/to/page"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, processing.ExtractURLs(tt.input))
		})
	}
}

func TestRemoveURLs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "no urls", input: "Hello world", want: "Hello world"},
		{name: "single url", input: "Check https://example.com for more", want: "Check   for more"},
		{name: "url only", input: "https://example.com", want: " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, processing.RemoveURLs(tt.input))
		})
	}
}

func TestGenerateTitleFromText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWords int
		want     string
	}{
		{name: "empty", text: "", maxWords: 10, want: ""},
		{name: "single sentence", text: "Heavy rain floods Chennai.", maxWords: 10, want: "Heavy rain floods Chennai"},
		{name: "multiple sentences", text: "Bridge collapse in Assam! Rescue teams on site. More soon.", maxWords: 10, want: "Bridge collapse in Assam"},
		{name: "long text truncated", text: "Residents of low lying areas are asked to move to relief camps immediately", maxWords: 5, want: "Residents of low lying areas..."},
		{name: "question mark", text: "Anyone near Puri? Need boats", maxWords: 10, want: "Anyone near Puri"},
		{name: "unlimited words", text: "Cyclone warning issued for Odisha coast", maxWords: 0, want: "Cyclone warning issued for Odisha coast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, processing.GenerateTitleFromText(tt.text, tt.maxWords))
		})
	}
}

func TestExcerpt(t *testing.T) {
	require.Equal(t, "short text", processing.Excerpt("  short   text ", 50))
	require.Equal(t, "water levels...", processing.Excerpt("water levels rising fast", 15))
	require.Equal(t, "abcde...", processing.Excerpt("abcdefgh", 5))
	require.Equal(t, "unbounded text", processing.Excerpt("unbounded text", 0))
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC)
	require.True(t, want.Equal(processing.ParseTimestamp("2026-10-14T08:30:00Z")))
	require.True(t, want.Equal(processing.ParseTimestamp("2026-10-14 08:30:00")))
	require.True(t, processing.ParseTimestamp("yesterday").IsZero())
	require.True(t, processing.ParseTimestamp("").IsZero())
}
