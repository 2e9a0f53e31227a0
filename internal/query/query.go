// Package query compiles extracted Entities into an Elasticsearch request
// body: a bool query with one clause per populated field and a script sort
// that ranks documents by their source.
package query

import (
	"encoding/json"
	"time"

	"github.com/DeafMist/disaster-radar/internal/daterange"
	"github.com/DeafMist/disaster-radar/internal/extract"
)

// MaxResults caps every search.
const MaxResults = 1000

// Document fields targeted by the compiler.
const (
	FieldBody         = "post_body"
	FieldDisasterType = "disaster_type"
	FieldLocation     = "location"
	FieldPriority     = "priority"
	FieldSource       = "source"
	FieldDate         = "date"
)

const dateLayout = "2006-01-02"

// Clause is one Elasticsearch query clause.
type Clause map[string]any

// Compiled is a ready-to-send search request.
type Compiled struct {
	Must   []Clause
	Filter []Clause
	Size   int
}

// Compile builds the request for e. Absent fields add no clause, so empty
// Entities match every document.
func Compile(e extract.Entities) Compiled {
	c := Compiled{
		Must:   []Clause{},
		Filter: []Clause{},
		Size:   MaxResults,
	}

	if e.Query != "" {
		c.Must = append(c.Must, match("match", FieldBody, e.Query))
	}
	if e.DisasterType != "" {
		c.Must = append(c.Must, match("match", FieldDisasterType, e.DisasterType))
	}
	if e.Location != "" {
		c.Must = append(c.Must, match("match_phrase", FieldLocation, e.Location))
	}
	if e.Priority != "" {
		c.Must = append(c.Must, match("match_phrase", FieldPriority, string(e.Priority)))
	}
	if e.Source != "" {
		c.Must = append(c.Must, match("match", FieldSource, e.Source))
	}
	if e.Date != nil && !e.Date.IsZero() {
		c.Filter = append(c.Filter, dateFilter(*e.Date))
	}

	return c
}

func match(kind, field, value string) Clause {
	return Clause{kind: map[string]any{field: value}}
}

func dateFilter(r daterange.Range) Clause {
	bounds := map[string]any{}
	if r.Start != nil {
		bounds["gte"] = r.Start.Format(dateLayout)
	}
	if r.End != nil {
		bounds["lte"] = r.End.Format(dateLayout)
	}
	return Clause{"range": map[string]any{FieldDate: bounds}}
}

// Body returns the request body sent to the store.
func (c Compiled) Body() map[string]any {
	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   c.Must,
				"filter": c.Filter,
			},
		},
		"sort": []map[string]any{SourceRankSort()},
		"size": c.Size,
	}
}

// MarshalJSON encodes the request body.
func (c Compiled) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Body())
}

// FormatDate renders a date the way range filters expect it.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
