package query

import "slices"

// sourceRanks orders sources ahead of any relevance score. Unknown sources
// share otherRank.
var sourceRanks = map[string]int{
	"RSS":     0,
	"Twitter": 1,
}

const otherRank = 2

const rankScript = `def s = doc['source.keyword'].size() == 0 ? '' : doc['source.keyword'].value;
return params.ranks.containsKey(s) ? params.ranks[s] : params.other;`

// SourceRank returns the sort key for a document source.
func SourceRank(source string) int {
	if r, ok := sourceRanks[source]; ok {
		return r
	}
	return otherRank
}

// SourceRankSort is the painless script sort placing RSS before Twitter
// before everything else.
func SourceRankSort() map[string]any {
	ranks := make(map[string]any, len(sourceRanks))
	for k, v := range sourceRanks {
		ranks[k] = v
	}
	return map[string]any{
		"_script": map[string]any{
			"type": "number",
			"script": map[string]any{
				"lang":   "painless",
				"source": rankScript,
				"params": map[string]any{
					"ranks": ranks,
					"other": otherRank,
				},
			},
			"order": "asc",
		},
	}
}

// SortBySource stably orders items by the rank of their source, keeping the
// store's order within a rank.
func SortBySource[T any](items []T, source func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		return SourceRank(source(a)) - SourceRank(source(b))
	})
}
