package metrics

import "math"

// WindowRule sizes one trailing window from the number of games available:
// a fixed count, or games/Divisor rounded half to even.
type WindowRule struct {
	Games   int     `yaml:"games"`
	Divisor float64 `yaml:"divisor"`
}

// Size resolves the rule for gp games
func (r WindowRule) Size(gp int) int {
	if r.Divisor > 0 {
		return int(math.RoundToEven(float64(gp) / r.Divisor))
	}
	return r.Games
}

// Tier is one row of a sample-size table. Windows are the leading windows;
// the last window is always the context's outer span and is supplied by the
// caller. Weights has one more entry than Windows.
type Tier struct {
	MinGames int          `yaml:"min_games"`
	MinOuter int          `yaml:"min_outer"`
	Windows  []WindowRule `yaml:"windows"`
	Weights  []float64    `yaml:"weights"`
}

// TierTable is ordered most demanding first; the first row a sample meets wins
type TierTable []Tier

// Lookup returns the first tier whose thresholds gp and outer both meet
func (tt TierTable) Lookup(gp, outer int) (Tier, bool) {
	for _, t := range tt {
		if gp >= t.MinGames && outer >= t.MinOuter {
			return t, true
		}
	}
	return Tier{}, false
}

// Sizes resolves every window for a sample, the outer span last
func (t Tier) Sizes(gp, outer int) []int {
	sizes := make([]int, 0, len(t.Windows)+1)
	for _, w := range t.Windows {
		sizes = append(sizes, w.Size(gp))
	}
	return append(sizes, outer)
}

func w20(ws ...float64) []float64 {
	out := make([]float64, len(ws))
	for i, w := range ws {
		out[i] = w / 20
	}
	return out
}

var (
	fixedWindows        = []WindowRule{{Games: 5}, {Games: 10}, {Games: 20}}
	proportionalWindows = []WindowRule{{Divisor: 7.99}, {Divisor: 4}, {Divisor: 2}}
)

// PlayerTiers: from 40 games the windows are fixed, from 4 they scale with
// the sample. The outer window only carries weight once it spans 4 games.
var PlayerTiers = TierTable{
	{MinGames: 40, MinOuter: 4, Windows: fixedWindows, Weights: w20(7, 5, 4, 4)},
	{MinGames: 40, MinOuter: 0, Windows: fixedWindows, Weights: w20(9, 6, 5, 0)},
	{MinGames: 4, MinOuter: 4, Windows: proportionalWindows, Weights: w20(7, 5, 4, 4)},
	{MinGames: 4, MinOuter: 0, Windows: proportionalWindows, Weights: w20(9, 6, 5, 0)},
}

// DefenseTiers weight rank windows by the defending team's season games
var DefenseTiers = TierTable{
	{MinGames: 3, Weights: w20(4, 5, 5, 6)},
	{MinGames: 0, Weights: w20(6, 6, 8, 0)},
}
