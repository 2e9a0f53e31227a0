package priority

import "strings"

// Level is a coarse urgency bucket. The zero value means no priority.
type Level string

const (
	None   Level = ""
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

type tier struct {
	level    Level
	keywords []string
}

// tiers are checked in order; the first tier with a hit wins.
var tiers = []tier{
	{level: High, keywords: []string{
		"high", "emergency", "urgent", "sos", "critical", "immediate",
		"life-threatening", "evacuate", "high alert", "rescue", "catastrophic",
	}},
	{level: Medium, keywords: []string{
		"medium", "important", "warning", "caution", "alert", "moderate",
		"significant", "serious", "needs attention",
	}},
	{level: Low, keywords: []string{
		"low", "update", "minor", "low priority", "routine", "informational",
		"no immediate danger",
	}},
}

// Classify returns the priority implied by text. Keywords match as plain
// substrings of the lowercased text, not on word boundaries.
func Classify(text string) Level {
	lower := strings.ToLower(text)
	for _, t := range tiers {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				return t.level
			}
		}
	}
	return None
}

// Parse accepts a caller supplied level. Unknown values yield None.
func Parse(raw string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(raw))) {
	case High:
		return High
	case Medium:
		return Medium
	case Low:
		return Low
	default:
		return None
	}
}
