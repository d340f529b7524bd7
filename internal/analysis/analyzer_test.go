package analysis_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/delphi/internal/analysis"
	"github.com/fortuna/delphi/internal/graph"
	"github.com/fortuna/delphi/internal/model"
	"github.com/fortuna/delphi/internal/ranking"
	"github.com/fortuna/delphi/internal/testutil"
)

const (
	bos = 1
	lal = 2
	nyk = 3
)

func fixture() *graph.Graph {
	l := testutil.NewLeague().
		Team(bos, "BOS").Team(lal, "LAL").Team(nyk, "NYK").
		Player(10, "Jayson", "Tatum", "SF").
		Player(11, "Jrue", "Holiday", "PG").
		Player(20, "LeBron", "James", "SF").
		Player(22, "Rookie", "Guard", "PG").
		Player(30, "Jalen", "Brunson", "PG")

	tatum := func(pts int) testutil.Line {
		return testutil.Line{PlayerID: 10, TeamID: bos, Pos: "SF", Minutes: "36:00", Points: pts}
	}
	holiday := func(pts int) testutil.Line {
		return testutil.Line{PlayerID: 11, TeamID: bos, Pos: "PG", Minutes: "30:00", Points: pts}
	}
	lebron := func(pts int) testutil.Line { return testutil.Line{PlayerID: 20, TeamID: lal, Pos: "SF", Points: pts} }
	rookie := func(pts int) testutil.Line { return testutil.Line{PlayerID: 22, TeamID: lal, Pos: "PG", Points: pts} }
	brunson := func(pts int) testutil.Line { return testutil.Line{PlayerID: 30, TeamID: nyk, Pos: "PG", Points: pts} }

	s := testutil.Season
	l.Game(s, 1, bos, lal, tatum(30), holiday(15), lebron(20), rookie(5))
	l.Game(s, 2, nyk, bos, tatum(28), holiday(12), brunson(30))
	l.Game(s, 3, lal, bos, tatum(22), lebron(22), rookie(6))
	l.Game(s, 4, bos, nyk, tatum(31), brunson(25))
	l.Game(s, 5, bos, lal, tatum(27), lebron(18), rookie(7))
	l.Game(s, 6, nyk, bos, tatum(26), holiday(10), brunson(28))
	l.Game(s, 7, lal, bos, tatum(33), lebron(25))
	l.Game(s, 8, bos, nyk, tatum(29), brunson(27))
	l.Scheduled(s, 10, bos, lal)

	l.Prop("Jayson Tatum", "player_points", 25.5, "fanduel").
		Prop("Jayson Tatum", "player_points", 26.5, "draftkings").
		Prop("Jayson Tatum", "player_points", 25.5, "betmgm").
		Prop("LeBron James", "player_points", 24.5, "fanduel").
		Prop("Rookie Guard", "player_points", 4.5, "fanduel").
		Prop("Jayson Tatum", "player_rebounds", 8.5, "fanduel").
		Injury("Jrue Holiday", "Out")

	return l.Build()
}

func analyzer(g *graph.Graph) *analysis.Analyzer {
	settings := analysis.DefaultSettings()
	settings.Location = time.UTC
	return analysis.NewAnalyzer(g, settings, zerolog.Nop())
}

func TestPropTable(t *testing.T) {
	a := analyzer(fixture())

	table, err := a.PropTable(testutil.Opening.AddDate(0, 0, 10), "player_points")
	require.NoError(t, err)

	assert.Equal(t, "2023-11-03", table.Date)
	require.Len(t, table.Rows, 2, "the rookie is below the minimum sample")
	assert.Equal(t, 10, table.Rows[0].PlayerID)
	assert.Equal(t, 20, table.Rows[1].PlayerID)
	assert.GreaterOrEqual(t, table.Rows[0].Score.Total, table.Rows[1].Score.Total)

	row := table.Rows[0]
	assert.Equal(t, "SF ● BOS ● #10", row.Player.Attributes)
	assert.Equal(t, "vs LAL", row.Matchup.Display)
	assert.Equal(t, "Friday, November 3 @ 11:30PM", row.Matchup.When)

	require.Len(t, row.Injuries, 2)
	assert.Equal(t, "BOS", row.Injuries[0].Team)
	require.Len(t, row.Injuries[0].Entries, 5)
	assert.Equal(t, analysis.InjuryEntry{Position: "PG", Name: "J. Holiday", Tag: "OUT"}, row.Injuries[0].Entries[0])
	assert.Equal(t, analysis.InjuryEntry{}, row.Injuries[1].Entries[0])

	assert.Equal(t, "Points", row.Prop.Market)
	assert.Equal(t, 25.5, row.Prop.Consensus)
	require.Len(t, row.Prop.Books, 4)
	assert.Equal(t, "draftkings", row.Prop.Books[1].Book)
	assert.Equal(t, 26.5, *row.Prop.Books[1].Line)
	assert.Equal(t, -110.0, *row.Prop.Books[1].Under)
	assert.Nil(t, row.Prop.Books[3].Line)

	// eight games: the 10- and 20-game windows are empty
	require.Len(t, row.Averages.All, 4)
	assert.Equal(t, 29.2, *row.Averages.All[0])
	assert.Nil(t, row.Averages.All[1])
	assert.Equal(t, 28.3, *row.Averages.All[3])
	assert.Equal(t, 27.3, *row.Averages.Opponent[0])
	assert.Nil(t, row.Averages.Opponent[1])
	assert.Equal(t, 28.0, *row.Averages.Opponent[3])

	require.Len(t, row.Defense.All, 4)
	require.Len(t, row.Defense.Position, 4)

	// only Tatum is a forward on Boston's side of the Lakers' games
	require.Len(t, row.Defense.Recent, 6)
	assert.Equal(t, analysis.RecentGame{
		Matchup: "at LAL 10/31/23",
		Players: []analysis.RecentEntry{{Position: "SF", Name: "J. Tatum", Stat: 33}, {}},
	}, row.Defense.Recent[0])
	assert.Equal(t, "vs LAL 10/25/23", row.Defense.Recent[3].Matchup)
	assert.Equal(t, analysis.RecentGame{Players: make([]analysis.RecentEntry, 2)}, row.Defense.Recent[5])

	require.Len(t, row.Series.All, 20)
	require.Len(t, row.Series.Location, 20)
	require.Len(t, row.Series.Opponent, 10)
	assert.Equal(t, 30.0, *row.Series.All[0].Value)
	assert.Equal(t, 22.0, *row.Series.All[2].Under)
	assert.Nil(t, row.Series.All[2].Over)
	assert.Equal(t, "vs NYK 11/01/23", row.Series.All[7].Matchup)
	assert.Equal(t, analysis.SeriesPoint{}, row.Series.All[8])
	assert.Equal(t, 29.0, *row.Series.Location[3].Value)
	assert.Nil(t, row.Series.Location[4].Value)
	assert.Equal(t, 33.0, *row.Series.Opponent[3].Over)
	assert.Equal(t, "at LAL 10/31/23", row.Series.Opponent[3].Matchup)

	require.Len(t, row.Without, 2)
	assert.Equal(t, "J. Holiday", row.Without[0].Teammate)
	require.Len(t, row.Without[0].Games, 6)
	assert.Equal(t, analysis.WithoutGame{Minutes: 36, Stat: 29, Game: "vs NYK 11/01/23"}, row.Without[0].Games[0])
	assert.Equal(t, analysis.WithoutGame{}, row.Without[0].Games[5])
	assert.Empty(t, row.Without[1].Teammate)

	for c, v := range row.Score.Components {
		assert.NotNil(t, v, "component %d", c)
	}

	values := row.Values()
	require.NotEmpty(t, values)
	assert.Equal(t, "Jayson", values[0])
	assert.Contains(t, values, "at LAL 10/31/23", "recent games vs the defense are flattened")
	assert.Equal(t, row.Score.Total, values[len(values)-1])
	assert.Equal(t, *row.Score.Components[4], values[len(values)-2])
}

func TestPropTableOtherMarket(t *testing.T) {
	a := analyzer(fixture())

	table, err := a.PropTable(testutil.Opening.AddDate(0, 0, 10), "player_rebounds")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Rebounds", table.Rows[0].Prop.Market)

	table, err = a.PropTable(testutil.Opening.AddDate(0, 0, 9), "player_points")
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestPropTableUnknownMarket(t *testing.T) {
	a := analyzer(fixture())

	_, err := a.PropTable(testutil.Opening, "player_dunks")
	assert.True(t, errors.Is(err, analysis.ErrUnknownMarket))
}

func TestRankTableIsShared(t *testing.T) {
	g := fixture()
	a := analyzer(g)

	first := a.RankTable(model.StatPoints)
	assert.Same(t, first, a.RankTable(model.StatPoints))

	primed := ranking.Build(g.Teams, model.StatRebounds, g.Season, ranking.DefaultWindows)
	a.PrimeRanks(primed)
	assert.Same(t, primed, a.RankTable(model.StatRebounds))
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 30: "30th", 101: "101st", 111: "111th"}
	for n, want := range tests {
		assert.Equal(t, want, analysis.Ordinal(n))
	}
}
