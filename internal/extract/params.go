package extract

// Parameters is the JSON echo of Entities returned to callers. Absent
// fields serialize as null and the date is rendered as "dd-mm-yyyy to dd-mm-yyyy".
type Parameters struct {
	Query        *string `json:"query"`
	DisasterType *string `json:"disaster_type"`
	Location     *string `json:"location"`
	Date         *string `json:"date"`
	Priority     *string `json:"priority"`
	Source       *string `json:"source"`
}

// Parameters renders e for a response body.
func (e Entities) Parameters() Parameters {
	p := Parameters{
		Query:        optional(e.Query),
		DisasterType: optional(e.DisasterType),
		Location:     optional(e.Location),
		Priority:     optional(string(e.Priority)),
		Source:       optional(e.Source),
	}
	if e.Date != nil {
		p.Date = optional(e.Date.String())
	}
	return p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
