package taxonomy

import "strings"

// Category groups related disaster keywords.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is an ordered, read-only set of keyword categories.
type Taxonomy struct {
	categories []Category
	keywords   []string
}

// New normalizes the categories (lowercase, trimmed, empty dropped) and
// precomputes the de-duplicated keyword union in category order.
func New(categories []Category) *Taxonomy {
	t := &Taxonomy{categories: make([]Category, 0, len(categories))}
	seen := make(map[string]struct{})

	for _, c := range categories {
		normalized := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			normalized = append(normalized, kw)
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			t.keywords = append(t.keywords, kw)
		}
		t.categories = append(t.categories, Category{Name: c.Name, Keywords: normalized})
	}

	return t
}

// Default returns the built-in disaster taxonomy.
func Default() *Taxonomy {
	return New(disasterCategories)
}

// Keywords returns the union of all category keywords, first occurrence kept.
func (t *Taxonomy) Keywords() []string {
	out := make([]string, len(t.keywords))
	copy(out, t.keywords)
	return out
}

// Categories returns the category names in declaration order.
func (t *Taxonomy) Categories() []string {
	out := make([]string, 0, len(t.categories))
	for _, c := range t.categories {
		out = append(out, c.Name)
	}
	return out
}

// CategoryOf reports the first category containing keyword.
func (t *Taxonomy) CategoryOf(keyword string) (string, bool) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	for _, c := range t.categories {
		for _, kw := range c.Keywords {
			if kw == keyword {
				return c.Name, true
			}
		}
	}
	return "", false
}
