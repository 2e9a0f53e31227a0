// Package nlp is a small English analysis pipeline: tokenization,
// lemmatization and a rule-based named-entity recognizer that tags places
// (from a gazetteer) and date expressions.
//
// A Pipeline is immutable after NewPipeline and safe for concurrent use.
package nlp

import (
	"regexp"
	"sort"
	"strings"

	"github.com/surgebase/porter2"
)

// Label is the entity type assigned by the recognizer.
type Label string

const (
	LabelPlace Label = "GPE"
	LabelDate  Label = "DATE"
)

// Token is a word with its byte offsets into the analyzed text.
type Token struct {
	Text  string
	Lemma string
	Start int
	End   int
}

// Entity is a recognized span. Start and End are byte offsets.
type Entity struct {
	Text  string
	Label Label
	Start int
	End   int
}

// Doc is the result of running the pipeline over one text.
type Doc struct {
	Text   string
	Tokens []Token
	Ents   []Entity
}

// Lemmas returns the lemma of every token in order.
func (d Doc) Lemmas() []string {
	out := make([]string, len(d.Tokens))
	for i, tok := range d.Tokens {
		out[i] = tok.Lemma
	}
	return out
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’-][\p{L}\p{N}]+)*`)

// Tokenize splits text into word tokens and lemmatizes each one.
func Tokenize(text string) []Token {
	spans := wordPattern.FindAllStringIndex(text, -1)
	tokens := make([]Token, 0, len(spans))
	for _, s := range spans {
		word := text[s[0]:s[1]]
		tokens = append(tokens, Token{
			Text:  word,
			Lemma: Lemmatize(word),
			Start: s[0],
			End:   s[1],
		})
	}
	return tokens
}

// Lemmatize reduces a word to its lowercase base form.
func Lemmatize(word string) string {
	return porter2.Stem(strings.ToLower(word))
}

// LemmatizePhrase lemmatizes every word of a phrase.
func LemmatizePhrase(phrase string) []string {
	tokens := Tokenize(phrase)
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Lemma
	}
	return out
}

// Pipeline tags places and dates on top of tokenization.
type Pipeline struct {
	places   map[string]string
	maxWords int
	dates    *regexp.Regexp
}

// NewPipeline builds a pipeline recognizing the given place names. A nil
// list uses the built-in gazetteer.
func NewPipeline(places []string) *Pipeline {
	if places == nil {
		places = defaultPlaces
	}
	p := &Pipeline{
		places: make(map[string]string, len(places)),
		dates:  datePattern,
	}
	for _, name := range places {
		words := strings.Fields(strings.ToLower(name))
		if len(words) == 0 {
			continue
		}
		key := strings.Join(words, " ")
		if _, ok := p.places[key]; !ok {
			p.places[key] = name
		}
		if len(words) > p.maxWords {
			p.maxWords = len(words)
		}
	}
	return p
}

// Process tokenizes text and returns its entities sorted by position.
func (p *Pipeline) Process(text string) Doc {
	doc := Doc{Text: text, Tokens: Tokenize(text)}
	doc.Ents = append(p.findPlaces(doc.Tokens), p.findDates(text)...)
	sort.SliceStable(doc.Ents, func(i, j int) bool {
		return doc.Ents[i].Start < doc.Ents[j].Start
	})
	return doc
}

// findPlaces prefers the longest gazetteer name starting at each token.
func (p *Pipeline) findPlaces(tokens []Token) []Entity {
	var ents []Entity
	for i := 0; i < len(tokens); {
		matched := 0
		for n := min(p.maxWords, len(tokens)-i); n > 0; n-- {
			words := make([]string, n)
			for k := 0; k < n; k++ {
				words[k] = strings.ToLower(tokens[i+k].Text)
			}
			name, ok := p.places[strings.Join(words, " ")]
			if !ok {
				continue
			}
			ents = append(ents, Entity{
				Text:  name,
				Label: LabelPlace,
				Start: tokens[i].Start,
				End:   tokens[i+n-1].End,
			})
			matched = n
			break
		}
		if matched == 0 {
			matched = 1
		}
		i += matched
	}
	return ents
}

func (p *Pipeline) findDates(text string) []Entity {
	lower := strings.ToLower(text)
	var ents []Entity
	for _, loc := range p.dates.FindAllStringIndex(lower, -1) {
		ents = append(ents, Entity{
			Text:  lower[loc[0]:loc[1]],
			Label: LabelDate,
			Start: loc[0],
			End:   loc[1],
		})
	}
	return ents
}

const monthNames = `january|february|march|april|may|june|july|august|september|october|november|december`

var datePattern = regexp.MustCompile(`\b(?:` +
	`(?:last|this|past|previous|next|coming)\s+(?:\d+\s+)?(?:weekends?|weeks?|months?|years?|quarters?|days?|` + monthNames + `)` +
	`|yesterday|today|tonight|tomorrow` +
	`|(?:` + monthNames + `)\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?` +
	`|(?:` + monthNames + `),?\s+\d{4}` +
	`|\d{4}-\d{2}-\d{2}` +
	`|\d{1,2}/\d{1,2}/\d{2,4}` +
	`)\b`)
