package query

import (
	"github.com/fortuna/delphi/internal/model"
)

// DefenseLogs returns the team's defensive games passing f, oldest first.
// Teammate presence has no meaning for a defense and panics.
func DefenseLogs(t *model.Team, f Filter) []*model.DefenseLog {
	f.validate()
	if len(f.WithPlayers) > 0 || len(f.WithoutPlayers) > 0 {
		panic("query: player presence filters do not apply to a defense")
	}
	var logs []*model.DefenseLog
	for _, dl := range t.Defense.Logs {
		if f.keep(dl.Game, dl.Location) {
			logs = append(logs, dl)
		}
	}
	return last(logs, f.Last)
}

// DefenseAllowed returns, per game, the total of key allowed to opposing
// players in group
func DefenseAllowed(t *model.Team, key model.StatKey, group model.Group, f Filter) []float64 {
	logs := DefenseLogs(t, f)
	out := make([]float64, len(logs))
	for i, dl := range logs {
		out[i] = dl.Allowed(key, group)
	}
	return out
}

// DefenseIndividual returns, per game, the opposing player logs in group
func DefenseIndividual(t *model.Team, group model.Group, f Filter) [][]*model.GameLog {
	logs := DefenseLogs(t, f)
	out := make([][]*model.GameLog, len(logs))
	for i, dl := range logs {
		out[i] = dl.PlayerLogs(group)
	}
	return out
}

// DefenseGamesPlayed counts the team's defensive games passing f
func DefenseGamesPlayed(t *model.Team, f Filter) int {
	return len(DefenseLogs(t, f))
}
