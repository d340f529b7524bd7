package query

import (
	"github.com/fortuna/delphi/internal/model"
)

// Series holds one column per requested stat, aligned by game
type Series struct {
	Logs    []*model.GameLog
	columns map[model.StatKey][]model.Value
}

// Len is the number of games in the series
func (s Series) Len() int {
	return len(s.Logs)
}

// Floats returns a numeric column
func (s Series) Floats(key model.StatKey) []float64 {
	col := s.column(key)
	out := make([]float64, len(col))
	for i, v := range col {
		out[i] = v.Num
	}
	return out
}

// Texts returns a column rendered as text
func (s Series) Texts(key model.StatKey) []string {
	col := s.column(key)
	out := make([]string, len(col))
	for i, v := range col {
		out[i] = v.Text
	}
	return out
}

func (s Series) column(key model.StatKey) []model.Value {
	col, ok := s.columns[key]
	if !ok {
		panic("query: stat " + string(key) + " was not requested")
	}
	return col
}

// PlayerLogs returns the player's logs passing f, oldest first
func PlayerLogs(p *model.Player, f Filter) []*model.GameLog {
	f.validate()
	var logs []*model.GameLog
	for _, gl := range p.GameLog {
		if f.keep(gl.Game, gl.Location) {
			logs = append(logs, gl)
		}
	}
	return last(logs, f.Last)
}

// PlayerStats reads keys off every log passing f
func PlayerStats(p *model.Player, keys []model.StatKey, f Filter) Series {
	logs := PlayerLogs(p, f)
	s := Series{Logs: logs, columns: make(map[model.StatKey][]model.Value, len(keys))}
	for _, key := range keys {
		col := make([]model.Value, len(logs))
		for i, gl := range logs {
			col[i] = gl.StatByName(key)
		}
		s.columns[key] = col
	}
	return s
}

// PlayerGamesPlayed counts the player's logs passing f
func PlayerGamesPlayed(p *model.Player, f Filter) int {
	return len(PlayerLogs(p, f))
}
