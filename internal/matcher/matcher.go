// Package matcher finds disaster keyword phrases in text.
//
// Phrases and text are compared on lemmas, so "floods" and "flooding" both
// match the phrase "flood". The scan is ordered: the phrase whose span starts
// earliest wins, and among phrases starting on the same token the shorter
// one is tried first. A later or longer candidate never replaces an earlier
// match.
package matcher

import (
	"sort"
	"strings"

	"github.com/DeafMist/disaster-radar/internal/nlp"
)

type pattern struct {
	phrase string
	lemmas []string
}

// Matcher is built once and never mutated, so it is safe to share.
type Matcher struct {
	byFirst map[string][]pattern
}

// New compiles phrases into a matcher. Phrases that lemmatize to nothing are skipped.
func New(phrases []string) *Matcher {
	m := &Matcher{byFirst: make(map[string][]pattern)}
	for _, phrase := range phrases {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		lemmas := nlp.LemmatizePhrase(phrase)
		if len(lemmas) == 0 {
			continue
		}
		m.byFirst[lemmas[0]] = append(m.byFirst[lemmas[0]], pattern{phrase: phrase, lemmas: lemmas})
	}
	for first := range m.byFirst {
		sort.SliceStable(m.byFirst[first], func(i, j int) bool {
			return len(m.byFirst[first][i].lemmas) < len(m.byFirst[first][j].lemmas)
		})
	}
	return m
}

// Match returns the first keyword phrase occurring in text.
func (m *Matcher) Match(text string) (string, bool) {
	return m.MatchLemmas(nlp.LemmatizePhrase(text))
}

// MatchLemmas scans an already lemmatized token sequence.
func (m *Matcher) MatchLemmas(lemmas []string) (string, bool) {
	for i, lemma := range lemmas {
		for _, p := range m.byFirst[lemma] {
			if hasPrefix(lemmas[i:], p.lemmas) {
				return p.phrase, true
			}
		}
	}
	return "", false
}

func hasPrefix(seq, prefix []string) bool {
	if len(prefix) > len(seq) {
		return false
	}
	for i := range prefix {
		if seq[i] != prefix[i] {
			return false
		}
	}
	return true
}
