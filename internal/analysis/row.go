package analysis

import (
	"fmt"

	"github.com/fortuna/delphi/internal/scoring"
)

// Row is one player's line analysis
type Row struct {
	PlayerID int            `json:"player_id"`
	Player   PlayerInfo     `json:"player"`
	Matchup  Matchup        `json:"matchup"`
	Injuries []InjuryBlock  `json:"injuries"`
	Prop     PropInfo       `json:"prop"`
	Averages Averages       `json:"averages"`
	Defense  DefenseBlock   `json:"defense"`
	Without  []WithoutBlock `json:"without"`
	Series   SeriesBlock    `json:"series"`
	Score    scoring.Result `json:"score"`
}

// PlayerInfo identifies the player
type PlayerInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Team       string `json:"team"`
	Attributes string `json:"attributes"`
}

// Matchup is "vs LAL" / "at BOS" and when the game tips
type Matchup struct {
	Display string `json:"display"`
	When    string `json:"when"`
}

// InjuryEntry is one injured player
type InjuryEntry struct {
	Position string `json:"position"`
	Name     string `json:"name"`
	Tag      string `json:"tag"`
}

// InjuryBlock lists a team's injured players in roster order, padded
type InjuryBlock struct {
	Team    string        `json:"team"`
	Entries []InjuryEntry `json:"entries"`
}

// BookLine is one bookmaker's line and prices; nil prices were not offered
type BookLine struct {
	Book  string   `json:"book"`
	Line  *float64 `json:"line"`
	Over  *float64 `json:"over"`
	Under *float64 `json:"under"`
}

// PropInfo is the market with the consensus line and per-book detail
type PropInfo struct {
	Market    string     `json:"market"`
	Consensus float64    `json:"consensus"`
	Books     []BookLine `json:"books"`
}

// Averages are trailing stat averages; nil when the player has fewer games
// than the window
type Averages struct {
	All      []*float64 `json:"all"`
	Location []*float64 `json:"location"`
	Opponent []*float64 `json:"opponent"`
}

// RankCell is a window's value allowed and the ordinal rank
type RankCell struct {
	Value float64 `json:"value"`
	Rank  string  `json:"rank"`
}

// DefenseBlock is how the opponent defends everyone and the player's group,
// plus the top lines it recently allowed to that group
type DefenseBlock struct {
	All      []RankCell   `json:"all"`
	Position []RankCell   `json:"position"`
	Recent   []RecentGame `json:"recent"`
}

// RecentEntry is one opposing player's line in a recent defensive game
type RecentEntry struct {
	Position string  `json:"position"`
	Name     string  `json:"name"`
	Stat     float64 `json:"stat"`
}

// RecentGame is one of the opponent's recent defensive games, best lines first
type RecentGame struct {
	Matchup string        `json:"matchup"`
	Players []RecentEntry `json:"players"`
}

// SeriesPoint is one charted game. Over and Under hold the value only on
// their side of the line; padding points are all empty.
type SeriesPoint struct {
	Minutes float64  `json:"minutes"`
	Value   *float64 `json:"value"`
	Over    *float64 `json:"over"`
	Under   *float64 `json:"under"`
	Matchup string   `json:"matchup"`
}

// SeriesBlock charts the last 20 games, the last 20 at the game's location
// and the last 10 against the opponent, oldest first
type SeriesBlock struct {
	All      []SeriesPoint `json:"all"`
	Location []SeriesPoint `json:"location"`
	Opponent []SeriesPoint `json:"opponent"`
}

// WithoutGame is one game played without an injured teammate
type WithoutGame struct {
	Minutes float64 `json:"minutes"`
	Stat    float64 `json:"stat"`
	Game    string  `json:"game"`
}

// WithoutBlock is the player's recent games without one injured teammate
type WithoutBlock struct {
	Teammate string        `json:"teammate"`
	Games    []WithoutGame `json:"games"`
}

// Values flattens the row in display order. The composite components and
// total are always last.
func (r Row) Values() []any {
	v := []any{r.Player.FirstName, r.Player.LastName, r.Player.Team, r.Player.Attributes, r.Matchup.Display, r.Matchup.When}

	for _, block := range r.Injuries {
		v = append(v, block.Team)
		for _, e := range block.Entries {
			v = append(v, e.Position, e.Name, e.Tag)
		}
	}

	v = append(v, r.Prop.Market, r.Prop.Consensus)
	for _, b := range r.Prop.Books {
		v = append(v, b.Book, floatOrNil(b.Line), floatOrNil(b.Over), floatOrNil(b.Under))
	}

	for _, avgs := range [][]*float64{r.Averages.All, r.Averages.Location, r.Averages.Opponent} {
		for _, a := range avgs {
			v = append(v, floatOrNil(a))
		}
	}

	for _, cells := range [][]RankCell{r.Defense.All, r.Defense.Position} {
		for _, c := range cells {
			v = append(v, c.Value, c.Rank)
		}
	}

	for _, g := range r.Defense.Recent {
		for _, e := range g.Players {
			v = append(v, e.Position, e.Name, e.Stat)
		}
		v = append(v, g.Matchup)
	}

	for _, w := range r.Without {
		v = append(v, w.Teammate)
		for _, g := range w.Games {
			v = append(v, g.Minutes, g.Stat, g.Game)
		}
	}

	for _, c := range r.Score.Components {
		if c == nil {
			v = append(v, nil)
		} else {
			v = append(v, *c)
		}
	}
	return append(v, r.Score.Total)
}

func floatOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// Ordinal renders 1st, 2nd, 3rd, 4th, 11th, 21st...
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
