package taxonomy

var disasterCategories = []Category{
	{
		Name: "natural_disasters",
		Keywords: []string{
			"earthquake", "flood", "tsunami", "landslide", "avalanche",
			"hurricane", "typhoon", "cyclone", "tornado", "storm",
			"wildfire", "forest fire", "drought", "volcano", "eruption",
		},
	},
	{
		Name: "man_made_disasters",
		Keywords: []string{
			"explosion", "fire", "chemical spill", "gas leak", "building collapse",
			"pollution", "oil spill", "plane crash", "train derailment", "car crash",
		},
	},
	{
		Name: "violence_and_security",
		Keywords: []string{
			"shooting", "attack", "terrorist", "riot", "protest", "bomb",
			"hostage", "war", "gunfire", "looting", "explosion", "armed",
		},
	},
	{
		Name: "health_disasters",
		Keywords: []string{
			"pandemic", "epidemic", "outbreak", "infection", "disease",
			"quarantine", "virus", "vaccine", "contamination", "poisoning",
		},
	},
	{
		Name: "infrastructure_disasters",
		Keywords: []string{
			"power outage", "blackout", "bridge collapse", "roadblock",
			"traffic", "closure", "train derailment",
		},
	},
}
