// Package query answers filtered stat questions against a built graph.
package query

import (
	"fmt"

	"github.com/fortuna/delphi/internal/model"
)

// Filter narrows a chronological log. Every field is optional and the
// fields combine with AND; Last is applied after everything else.
type Filter struct {
	Seasons        []int
	Location       model.Location
	Opponents      []int
	WithPlayers    []int
	WithoutPlayers []int
	Last           int
}

func (f Filter) validate() {
	if f.Last < 0 {
		panic(fmt.Sprintf("query: negative Last %d", f.Last))
	}
	if f.Location != "" && f.Location != model.Home && f.Location != model.Away {
		panic(fmt.Sprintf("query: unknown location %q", f.Location))
	}
	for _, w := range f.WithPlayers {
		for _, wo := range f.WithoutPlayers {
			if w == wo {
				panic(fmt.Sprintf("query: player %d both required and excluded", w))
			}
		}
	}
}

// keep reports whether a game seen from loc passes every non-Last clause
func (f Filter) keep(game *model.Game, loc model.Location) bool {
	if len(f.Seasons) > 0 && !contains(f.Seasons, game.Season) {
		return false
	}
	if f.Location != "" && f.Location != loc {
		return false
	}
	if len(f.Opponents) > 0 && !contains(f.Opponents, game.Side(loc.Other()).TeamID) {
		return false
	}
	if len(f.WithPlayers) > 0 || len(f.WithoutPlayers) > 0 {
		present := make(map[int]bool)
		for _, gl := range game.Side(loc).Logs {
			present[gl.PlayerID] = true
		}
		for _, id := range f.WithPlayers {
			if !present[id] {
				return false
			}
		}
		for _, id := range f.WithoutPlayers {
			if present[id] {
				return false
			}
		}
	}
	return true
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func last[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
