// Package extract turns an operator's free-text search request into
// structured Entities.
//
// Every field follows a first-match-wins policy: the extractor scans in
// document order and stops at the first usable value, it never aggregates.
package extract

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jonboulle/clockwork"

	"github.com/DeafMist/disaster-radar/internal/daterange"
	"github.com/DeafMist/disaster-radar/internal/nlp"
	"github.com/DeafMist/disaster-radar/internal/priority"
)

// Entities is the structured form of one search request. Empty strings and a
// nil Date mean the field is absent.
type Entities struct {
	Query        string
	DisasterType string
	Location     string
	Date         *daterange.Range
	Priority     priority.Level
	Source       string
}

// IsZero reports whether no field is set.
func (e Entities) IsZero() bool {
	return e == Entities{}
}

// Analyzer runs tokenization and entity recognition.
type Analyzer interface {
	Process(text string) nlp.Doc
}

// PhraseMatcher finds a disaster keyword in a lemma sequence.
type PhraseMatcher interface {
	MatchLemmas(lemmas []string) (string, bool)
}

// Extractor is stateless apart from its collaborators and may be shared.
type Extractor struct {
	analyzer Analyzer
	matcher  PhraseMatcher
	clock    clockwork.Clock
}

// New wires an extractor. A nil clock uses the real clock.
func New(analyzer Analyzer, matcher PhraseMatcher, clock clockwork.Clock) *Extractor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Extractor{analyzer: analyzer, matcher: matcher, clock: clock}
}

// Extract interprets query with the NLP pipeline. Unresolved fields stay absent.
func (x *Extractor) Extract(query string) Entities {
	var e Entities
	now := x.clock.Now()
	lower := strings.ToLower(query)

	doc := x.analyzer.Process(lower)
	if phrase, ok := x.matcher.MatchLemmas(doc.Lemmas()); ok {
		e.DisasterType = phrase
	}
	e.Priority = priority.Classify(query)

	for _, ent := range doc.Ents {
		switch ent.Label {
		case nlp.LabelPlace:
			if e.Location == "" {
				e.Location = ent.Text
			}
		case nlp.LabelDate:
			if e.Date != nil {
				continue
			}
			if r := daterange.Resolve(ent.Text, now); !r.IsZero() {
				e.Date = &r
			}
		}
	}

	if strings.Contains(lower, "recent") {
		r := daterange.Since(now)
		e.Date = &r
	}

	return e
}

// ManualFields are caller supplied values that bypass NLP.
type ManualFields struct {
	Query        string
	DisasterType string
	Location     string
	Date         string
	Source       string
	Priority     string
}

// Manual builds Entities from explicit fields. Date is parsed with a
// permissive free-text parser and becomes an open-ended range; an
// unparseable date is dropped.
func (x *Extractor) Manual(f ManualFields) Entities {
	e := Entities{
		Query:        strings.TrimSpace(f.Query),
		DisasterType: strings.TrimSpace(f.DisasterType),
		Location:     strings.TrimSpace(f.Location),
		Source:       strings.TrimSpace(f.Source),
		Priority:     priority.Level(strings.TrimSpace(f.Priority)),
	}
	if d, ok := parseDate(f.Date, x.clock.Now().Location()); ok {
		r := daterange.Since(d)
		e.Date = &r
	}
	return e
}

func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
