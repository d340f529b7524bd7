// Package ranking ranks every team defense by what it allowed over several
// rolling windows, split by the position group of the opposing players.
package ranking

import (
	"math"
	"sort"

	"github.com/fortuna/delphi/internal/model"
	"github.com/fortuna/delphi/internal/query"
)

// Window is a trailing span of games. A Season window spans the team's
// games in the current season.
type Window struct {
	Label  string `json:"label" yaml:"label"`
	Games  int    `json:"games" yaml:"games"`
	Season bool   `json:"season,omitempty" yaml:"season"`
}

// DefaultWindows are L5, L10, L20 and the season
var DefaultWindows = []Window{
	{Label: "L5", Games: 5},
	{Label: "L10", Games: 10},
	{Label: "L20", Games: 20},
	{Label: "Season", Season: true},
}

// Rank is one team's standing in one window. Rank 1 allowed the least.
type Rank struct {
	Rank  int     `json:"rank"`
	Value float64 `json:"value"`
}

// Table holds the ranks of every team for one stat
type Table struct {
	Stat       model.StatKey                           `json:"stat"`
	Season     int                                     `json:"season"`
	LeagueSize int                                     `json:"league_size"`
	Windows    []Window                                `json:"windows"`
	Ranks      map[int]map[model.Group]map[string]Rank `json:"ranks"`
}

// Lookup returns one cell of the table
func (t *Table) Lookup(teamID int, group model.Group, label string) (Rank, bool) {
	r, ok := t.Ranks[teamID][group][label]
	return r, ok
}

// Row returns a team's ranks in window order, false when the team or group
// is missing
func (t *Table) Row(teamID int, group model.Group) ([]Rank, bool) {
	cells, ok := t.Ranks[teamID][group]
	if !ok {
		return nil, false
	}
	row := make([]Rank, len(t.Windows))
	for i, w := range t.Windows {
		row[i] = cells[w.Label]
	}
	return row, true
}

// Build ranks every team on stat allowed, for each group and window.
// Ties on the window value fall back to the season value, then input order.
func Build(teams []*model.Team, stat model.StatKey, season int, windows []Window) *Table {
	t := &Table{
		Stat:       stat,
		Season:     season,
		LeagueSize: len(teams),
		Windows:    windows,
		Ranks:      make(map[int]map[model.Group]map[string]Rank, len(teams)),
	}
	for _, team := range teams {
		t.Ranks[team.ID] = make(map[model.Group]map[string]Rank, len(model.Groups))
		for _, group := range model.Groups {
			t.Ranks[team.ID][group] = make(map[string]Rank, len(windows))
		}
	}

	seasonIdx := -1
	widest := 0
	for i, w := range windows {
		if w.Season {
			seasonIdx = i
		}
		if w.Games > widest {
			widest = w.Games
		}
	}

	for _, group := range model.Groups {
		averages := make([][]float64, len(teams))
		for i, team := range teams {
			averages[i] = windowAverages(team, stat, group, season, windows, widest)
		}

		for w, window := range windows {
			order := make([]int, len(teams))
			for i := range order {
				order[i] = i
			}
			sort.SliceStable(order, func(a, b int) bool {
				va, vb := averages[order[a]][w], averages[order[b]][w]
				if va != vb || seasonIdx < 0 {
					return va < vb
				}
				return averages[order[a]][seasonIdx] < averages[order[b]][seasonIdx]
			})

			sorted := make([]float64, len(order))
			for i, idx := range order {
				sorted[i] = averages[idx][w]
			}
			ranks := CompetitionRanks(sorted)
			for i, idx := range order {
				t.Ranks[teams[idx].ID][group][window.Label] = Rank{Rank: ranks[i], Value: sorted[i]}
			}
		}
	}

	return t
}

func windowAverages(team *model.Team, stat model.StatKey, group model.Group, season int, windows []Window, widest int) []float64 {
	seasonGames := query.DefenseGamesPlayed(team, query.Filter{Seasons: []int{season}})
	n := widest
	if seasonGames > n {
		n = seasonGames
	}
	allowed := query.DefenseAllowed(team, stat, group, query.Filter{Last: n})

	out := make([]float64, len(windows))
	for i, w := range windows {
		size := w.Games
		if w.Season {
			size = seasonGames
		}
		out[i] = round2(mean(tail(allowed, size)))
	}
	return out
}

// CompetitionRanks ranks values already sorted ascending: equal neighbours
// share a rank and the next distinct value takes its 1-based position.
func CompetitionRanks(sorted []float64) []int {
	ranks := make([]int, len(sorted))
	for i, v := range sorted {
		if i > 0 && v == sorted[i-1] {
			ranks[i] = ranks[i-1]
		} else {
			ranks[i] = i + 1
		}
	}
	return ranks
}

func tail(values []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
