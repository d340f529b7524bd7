package ranking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/delphi/internal/model"
	"github.com/fortuna/delphi/internal/ranking"
)

const season = 2024

// defenseTeam builds a team whose finished games each allowed one guard
// the given points
func defenseTeam(id int, allowed ...int) *model.Team {
	team := &model.Team{ID: id}
	team.Defense = &model.Defense{Team: team}
	base := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)
	for i, pts := range allowed {
		game := &model.Game{
			ID:       id*100 + i,
			Season:   season,
			Time:     base.AddDate(0, 0, i),
			Finished: true,
			Home:     &model.Side{TeamID: id},
			Away:     &model.Side{TeamID: 99},
		}
		game.Away.Logs = []*model.GameLog{{Game: game, Location: model.Away, Position: "PG", Points: pts}}
		team.Finished = append(team.Finished, game)
		team.Defense.Logs = append(team.Defense.Logs, &model.DefenseLog{Game: game, Location: model.Home})
	}
	return team
}

func TestCompetitionRanks(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []int
	}{
		{"ties share a rank", []float64{10, 10, 12, 15}, []int{1, 1, 3, 4}},
		{"distinct", []float64{1, 2, 3}, []int{1, 2, 3}},
		{"all tied", []float64{5, 5, 5}, []int{1, 1, 1}},
		{"zero first", []float64{0, 0, 1}, []int{1, 1, 3}},
		{"empty", nil, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ranking.CompetitionRanks(tt.values))
		})
	}
}

func TestBuildTiesFallBackToSeason(t *testing.T) {
	a := defenseTeam(1, 30, 20, 20, 20, 20, 20)
	b := defenseTeam(2, 10, 20, 20, 20, 20, 20)
	c := defenseTeam(3, 25, 25, 25, 25, 25, 25)

	table := ranking.Build([]*model.Team{a, b, c}, model.StatPoints, season, ranking.DefaultWindows)

	assert.Equal(t, 3, table.LeagueSize)

	l5a, ok := table.Lookup(1, model.GroupAll, "L5")
	require.True(t, ok)
	l5b, _ := table.Lookup(2, model.GroupAll, "L5")
	l5c, _ := table.Lookup(3, model.GroupAll, "L5")
	assert.Equal(t, ranking.Rank{Rank: 1, Value: 20}, l5a)
	assert.Equal(t, ranking.Rank{Rank: 1, Value: 20}, l5b)
	assert.Equal(t, ranking.Rank{Rank: 3, Value: 25}, l5c)

	seasonA, _ := table.Lookup(1, model.GroupAll, "Season")
	seasonB, _ := table.Lookup(2, model.GroupAll, "Season")
	assert.Equal(t, ranking.Rank{Rank: 2, Value: 21.67}, seasonA)
	assert.Equal(t, ranking.Rank{Rank: 1, Value: 18.33}, seasonB)

	row, ok := table.Row(3, model.GroupGuard)
	require.True(t, ok)
	require.Len(t, row, 4)
	assert.Equal(t, 3, row[0].Rank)

	// no forwards were ever allowed anything: everyone ties at zero
	fwd, _ := table.Row(1, model.GroupForward)
	for _, r := range fwd {
		assert.Equal(t, ranking.Rank{Rank: 1, Value: 0}, r)
	}

	_, ok = table.Row(42, model.GroupAll)
	assert.False(t, ok)
}

func TestBuildUsesOnlyTrailingGames(t *testing.T) {
	// 25 games: the oldest five must not reach the L20 window
	allowed := make([]int, 25)
	for i := range allowed {
		allowed[i] = 10
		if i < 5 {
			allowed[i] = 100
		}
	}
	team := defenseTeam(1, allowed...)

	table := ranking.Build([]*model.Team{team}, model.StatPoints, season, ranking.DefaultWindows)

	l20, _ := table.Lookup(1, model.GroupAll, "L20")
	assert.Equal(t, 10.0, l20.Value)
	full, _ := table.Lookup(1, model.GroupAll, "Season")
	assert.Equal(t, 28.0, full.Value)
}
