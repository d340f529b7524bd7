package metrics

// DefenseProfile configures how rank windows turn into a defense score
type DefenseProfile struct {
	Tiers TierTable `yaml:"tiers"`
}

// DefaultDefenseProfile leans on the season window once it means something
var DefaultDefenseProfile = DefenseProfile{Tiers: DefenseTiers}

// DefenseScore weights rank/leagueSize per window. Ranks are in window
// order. A worse defense (higher rank) scores higher.
func (dp DefenseProfile) DefenseScore(ranks []int, leagueSize, seasonGames int) Score {
	if leagueSize <= 0 || len(ranks) == 0 {
		return Score{}
	}
	tier, ok := dp.Tiers.Lookup(seasonGames, 0)
	if !ok || len(tier.Weights) != len(ranks) {
		return Score{}
	}

	var total float64
	for i, r := range ranks {
		total += tier.Weights[i] * float64(r) / float64(leagueSize)
	}
	return Some(total)
}
