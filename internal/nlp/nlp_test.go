package nlp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/disaster-radar/internal/nlp"
)

func TestTokenizeKeepsOffsets(t *testing.T) {
	tokens := nlp.Tokenize("Floods, in Chennai!")
	require.Len(t, tokens, 3)

	require.Equal(t, "Floods", tokens[0].Text)
	require.Equal(t, "flood", tokens[0].Lemma)
	require.Equal(t, 0, tokens[0].Start)
	require.Equal(t, 6, tokens[0].End)

	require.Equal(t, "Chennai", tokens[2].Text)
	require.Equal(t, 11, tokens[2].Start)
}

func TestLemmatizeIsCaseInsensitive(t *testing.T) {
	require.Equal(t, nlp.Lemmatize("flooding"), nlp.Lemmatize("FLOODS"))
	require.Equal(t, nlp.Lemmatize("earthquake"), nlp.Lemmatize("Earthquakes"))
}

func TestProcessTagsPlacesAndDates(t *testing.T) {
	p := nlp.NewPipeline(nil)
	doc := p.Process("flood in chennai last week urgent")

	require.Len(t, doc.Ents, 2)
	require.Equal(t, nlp.LabelPlace, doc.Ents[0].Label)
	require.Equal(t, "Chennai", doc.Ents[0].Text)
	require.Equal(t, nlp.LabelDate, doc.Ents[1].Label)
	require.Equal(t, "last week", doc.Ents[1].Text)
}

func TestProcessPrefersLongestPlaceName(t *testing.T) {
	p := nlp.NewPipeline(nil)
	doc := p.Process("cyclone warning for new delhi and tamil nadu")

	require.Len(t, doc.Ents, 2)
	require.Equal(t, "New Delhi", doc.Ents[0].Text)
	require.Equal(t, "Tamil Nadu", doc.Ents[1].Text)
}

func TestProcessOrdersEntitiesByPosition(t *testing.T) {
	p := nlp.NewPipeline([]string{"Pune"})
	doc := p.Process("yesterday a fire in pune, also last 2 weeks")

	require.Len(t, doc.Ents, 3)
	require.Equal(t, "yesterday", doc.Ents[0].Text)
	require.Equal(t, "Pune", doc.Ents[1].Text)
	require.Equal(t, "last 2 weeks", doc.Ents[2].Text)
}

func TestProcessRecognizesDateIdioms(t *testing.T) {
	p := nlp.NewPipeline([]string{})
	for _, phrase := range []string{
		"this weekend", "past 30 days", "last quarter", "last august", "this year", "march 3, 2024",
	} {
		doc := p.Process("storm " + phrase)
		require.Len(t, doc.Ents, 1, phrase)
		require.Equal(t, nlp.LabelDate, doc.Ents[0].Label, phrase)
		require.Equal(t, phrase, doc.Ents[0].Text)
	}
}

func TestProcessWithoutEntities(t *testing.T) {
	p := nlp.NewPipeline(nil)
	doc := p.Process("gas leak reported")
	require.Empty(t, doc.Ents)
	require.Equal(t, []string{"gas", "leak", nlp.Lemmatize("reported")}, doc.Lemmas())
}

func TestProcessTagsWorldCities(t *testing.T) {
	p := nlp.NewPipeline(nil)
	cases := map[string]string{
		"storm in tokyo":              "Tokyo",
		"fire in los angeles":         "Los Angeles",
		"earthquake in türkiye":       "Türkiye",
		"flooding across mexico city": "Mexico City",
	}
	for text, want := range cases {
		doc := p.Process(text)
		require.Len(t, doc.Ents, 1, text)
		require.Equal(t, nlp.LabelPlace, doc.Ents[0].Label, text)
		require.Equal(t, want, doc.Ents[0].Text, text)
	}
}

func TestProcessIgnoresEverydayWords(t *testing.T) {
	p := nlp.NewPipeline(nil)
	for _, text := range []string{"roast turkey recipe", "puri with potato curry"} {
		require.Empty(t, p.Process(text).Ents, text)
	}
}
