package taxonomy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/disaster-radar/internal/taxonomy"
)

func TestDefaultKeywordsAreDeduplicated(t *testing.T) {
	tx := taxonomy.Default()
	kws := tx.Keywords()

	seen := make(map[string]int)
	for _, kw := range kws {
		seen[kw]++
	}
	require.Equal(t, 1, seen["explosion"])
	require.Equal(t, 1, seen["train derailment"])
	require.Equal(t, "earthquake", kws[0])
}

func TestKeywordsReturnsCopy(t *testing.T) {
	tx := taxonomy.Default()
	kws := tx.Keywords()
	kws[0] = "mutated"

	require.Equal(t, "earthquake", tx.Keywords()[0])
}

func TestNewNormalizesKeywords(t *testing.T) {
	tx := taxonomy.New([]taxonomy.Category{
		{Name: "a", Keywords: []string{"  Gas Leak ", "", "FIRE"}},
		{Name: "b", Keywords: []string{"fire", "riot"}},
	})

	require.Equal(t, []string{"gas leak", "fire", "riot"}, tx.Keywords())
	require.Equal(t, []string{"a", "b"}, tx.Categories())

	cat, ok := tx.CategoryOf("Fire")
	require.True(t, ok)
	require.Equal(t, "a", cat)

	_, ok = tx.CategoryOf("picnic")
	require.False(t, ok)
}
