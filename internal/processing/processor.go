package processing

import (
	"crypto/sha1"
	"encoding/hex"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var urlRegex = regexp.MustCompile(`https?://[^\s]+`)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s#@'-]+`)
	mention     = regexp.MustCompile(`(^|\s)@\w+`)
	retweet     = regexp.MustCompile(`^(?i)rt\s+`)
)

// ExtractURLs returns the distinct HTTP(S) URLs in input, in order.
func ExtractURLs(input string) []string {
	if input == "" {
		return nil
	}
	matches := urlRegex.FindAllString(input, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var urls []string
	for _, url := range matches {
		if _, ok := seen[url]; !ok {
			seen[url] = struct{}{}
			urls = append(urls, url)
		}
	}
	return urls
}

// RemoveURLs replaces every URL in input with a space.
func RemoveURLs(input string) string {
	return urlRegex.ReplaceAllString(input, " ")
}

// CleanText decodes HTML entities and drops URLs, user mentions, a leading
// retweet marker and punctuation. Hashtag words are kept.
func CleanText(input string) string {
	if input == "" {
		return ""
	}
	decoded := html.UnescapeString(input)
	decoded = RemoveURLs(decoded)
	decoded = retweet.ReplaceAllString(strings.TrimSpace(decoded), "")
	decoded = mention.ReplaceAllString(decoded, " ")
	decoded = punctuation.ReplaceAllString(decoded, " ")
	decoded = strings.ReplaceAll(decoded, "#", "")
	decoded = whitespace.ReplaceAllString(decoded, " ")
	return strings.TrimSpace(decoded)
}

// BuildPostID hashes the most stable fields to form deterministic IDs.
func BuildPostID(source, text string, ts time.Time) string {
	s := sha1.Sum([]byte(strings.ToLower(source) + "|" + text + "|" + ts.UTC().Format(time.RFC3339)))
	return hex.EncodeToString(s[:])
}

// GenerateTitleFromText creates a title from the first sentence or the first
// maxWords words of text.
func GenerateTitleFromText(text string, maxWords int) string {
	if text == "" {
		return ""
	}

	withoutURLs := RemoveURLs(text)

	first := withoutURLs
	if end := strings.IndexAny(withoutURLs, ".!?"); end > 0 {
		first = strings.TrimSpace(withoutURLs[:end])
	}

	words := strings.Fields(first)
	if len(words) == 0 {
		return ""
	}

	if maxWords > 0 && len(words) > maxWords {
		return strings.Join(words[:maxWords], " ") + "..."
	}

	return strings.Join(words, " ")
}

// Excerpt shortens text to at most maxRunes runes, cutting on a word
// boundary when one exists, and appends an ellipsis when it had to cut.
func Excerpt(text string, maxRunes int) string {
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:maxRunes])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}

// ParseTimestamp accepts the formats producers use; a zero time means none matched.
func ParseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		time.RubyDate,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, f := range formats {
		if ts, err := time.Parse(f, raw); err == nil {
			return ts
		}
	}

	return time.Time{}
}
