package processing

import (
	"errors"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/DeafMist/disaster-radar/internal/models"
	"github.com/DeafMist/disaster-radar/internal/nlp"
	"github.com/DeafMist/disaster-radar/internal/priority"
)

// ErrEmptyPost is returned for payloads with neither a title nor a body.
var ErrEmptyPost = errors.New("empty post")

const titleWords = 12

// RawPost is what scrapers publish on the ingest topic.
type RawPost struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Text         string `json:"text"`
	Timestamp    string `json:"timestamp"`
	Source       string `json:"source"`
	URL          string `json:"url"`
	ImageURL     string `json:"image_url"`
	Location     string `json:"location"`
	DisasterType string `json:"disaster_type"`
	Priority     string `json:"priority"`
	Likes        int    `json:"likes"`
	Retweets     int    `json:"retweets"`
}

// TypeMatcher finds a disaster keyword phrase in free text.
type TypeMatcher interface {
	Match(text string) (string, bool)
}

// Analyzer recognises place names. *nlp.Pipeline satisfies it.
type Analyzer interface {
	Process(text string) nlp.Doc
}

// Normalizer turns raw posts into the stored template, deriving the
// fields a producer left out.
type Normalizer struct {
	matcher    TypeMatcher
	analyzer   Analyzer
	excerptLen int
	clock      clockwork.Clock
}

// NewNormalizer builds a normalizer. A nil clock uses wall time.
func NewNormalizer(matcher TypeMatcher, analyzer Analyzer, excerptLen int, clock clockwork.Clock) *Normalizer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Normalizer{matcher: matcher, analyzer: analyzer, excerptLen: excerptLen, clock: clock}
}

// Normalize fills a models.Post from raw.
func (n *Normalizer) Normalize(raw RawPost) (models.Post, error) {
	title := strings.TrimSpace(raw.Title)
	text := strings.TrimSpace(raw.Text)
	if title == "" && text == "" {
		return models.Post{}, ErrEmptyPost
	}
	if title == "" {
		title = GenerateTitleFromText(text, titleWords)
	}
	if text == "" {
		text = title
	}

	now := n.clock.Now().UTC()
	ts := ParseTimestamp(raw.Timestamp)
	if ts.IsZero() {
		ts = now
	}
	date := ts.UTC().Format(time.RFC3339)

	source := strings.TrimSpace(raw.Source)
	if source == "" {
		source = "unknown"
	}

	url := strings.TrimSpace(raw.URL)
	if url == "" {
		if urls := ExtractURLs(text); len(urls) > 0 {
			url = urls[0]
		}
	}

	cleaned := CleanText(title + " " + text)

	post := models.Post{
		PostID:       strings.TrimSpace(raw.ID),
		PostTitle:    title,
		PostBody:     Excerpt(RemoveURLs(text), n.excerptLen),
		PostBodyFull: text,
		Date:         &date,
		Likes:        raw.Likes,
		Retweets:     raw.Retweets,
		PostImageURL: strings.TrimSpace(raw.ImageURL),
		Location:     strings.TrimSpace(raw.Location),
		URL:          url,
		DisasterType: strings.ToLower(strings.TrimSpace(raw.DisasterType)),
		Source:       source,
		CreatedAt:    now.Format(time.RFC3339),
		Priority:     string(priority.Parse(raw.Priority)),
	}

	if post.PostID == "" {
		post.PostID = BuildPostID(source, cleaned, ts)
	}
	if post.DisasterType == "" && n.matcher != nil {
		if phrase, ok := n.matcher.Match(cleaned); ok {
			post.DisasterType = phrase
		}
	}
	if post.Location == "" && n.analyzer != nil {
		for _, ent := range n.analyzer.Process(cleaned).Ents {
			if ent.Label == nlp.LabelPlace {
				post.Location = ent.Text
				break
			}
		}
	}
	if post.Priority == "" {
		post.Priority = string(priority.Classify(cleaned))
	}

	return post, nil
}
