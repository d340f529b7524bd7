package metrics

// PlayerProfile configures how a player series is scored against a line
type PlayerProfile struct {
	AvgShare   float64   `yaml:"avg_share"`
	CoverShare float64   `yaml:"cover_share"`
	Tiers      TierTable `yaml:"tiers"`
}

// DefaultPlayerProfile weighs cover rate over the average
var DefaultPlayerProfile = PlayerProfile{
	AvgShare:   0.3,
	CoverShare: 0.7,
	Tiers:      PlayerTiers,
}

// Sample is a player's stat series in one context. Values is chronological;
// GamesPlayed selects the tier and Outer sizes the last window.
type Sample struct {
	Values      []float64
	GamesPlayed int
	Outer       int
}

// PlayerScore blends average-vs-line and cover rate over the tier's windows.
// Samples below every tier, or a non-positive line, have no score. An empty
// window contributes 0.
func (pp PlayerProfile) PlayerScore(s Sample, line float64) Score {
	if line <= 0 {
		return Score{}
	}
	tier, ok := pp.Tiers.Lookup(s.GamesPlayed, s.Outer)
	if !ok {
		return Score{}
	}

	var total float64
	for i, size := range tier.Sizes(s.GamesPlayed, s.Outer) {
		window := Tail(s.Values, size)
		if len(window) == 0 {
			continue
		}
		avl := AvgVsLine(Average(window), line)
		cover := CoverRate(window, line)
		total += tier.Weights[i] * (pp.AvgShare*avl + pp.CoverShare*cover)
	}
	return Some(total)
}
