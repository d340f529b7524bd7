// Package graph builds the read-only relational model that every analysis
// reads from. A Graph is never mutated after Build returns; refreshing the
// data means building a new one.
package graph

import (
	"time"

	"github.com/fortuna/delphi/internal/model"
)

// Graph is the frozen result of a build
type Graph struct {
	Season      int
	Games       []*model.Game
	Teams       []*model.Team
	Players     []*model.Player
	Diagnostics Diagnostics

	games   map[int]*model.Game
	teams   map[int]*model.Team
	players map[int]*model.Player
	codes   map[string]*model.Team
}

// Diagnostics summarizes what the build could not join
type Diagnostics struct {
	UnmatchedProps    []string `json:"unmatched_props"`
	UnmatchedInjuries []string `json:"unmatched_injuries"`
	DroppedGameLogs   int      `json:"dropped_game_logs"`
	DidNotPlay        int      `json:"did_not_play"`
	UnsettledGames    int      `json:"unsettled_games"`
	UnknownTeamSides  int      `json:"unknown_team_sides"`
}

// Game looks up a game by id
func (g *Graph) Game(id int) (*model.Game, bool) {
	game, ok := g.games[id]
	return game, ok
}

// Team looks up a team by id
func (g *Graph) Team(id int) (*model.Team, bool) {
	team, ok := g.teams[id]
	return team, ok
}

// TeamByCode looks up a team by its abbreviation
func (g *Graph) TeamByCode(code string) (*model.Team, bool) {
	team, ok := g.codes[code]
	return team, ok
}

// Player looks up a player by id
func (g *Graph) Player(id int) (*model.Player, bool) {
	player, ok := g.players[id]
	return player, ok
}

// GamesOn returns the games starting on the calendar date of day in loc,
// in start time order
func (g *Graph) GamesOn(day time.Time, loc *time.Location) []*model.Game {
	y, m, d := day.In(loc).Date()
	var games []*model.Game
	for _, game := range g.Games {
		gy, gm, gd := game.Time.In(loc).Date()
		if gy == y && gm == m && gd == d {
			games = append(games, game)
		}
	}
	return games
}

// LastFinished returns the most recent finished game, used to key caches of
// derived tables to the data they were computed from
func (g *Graph) LastFinished() *model.Game {
	for i := len(g.Games) - 1; i >= 0; i-- {
		if g.Games[i].Finished {
			return g.Games[i]
		}
	}
	return nil
}
