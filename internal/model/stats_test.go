package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame() *Game {
	return &Game{
		ID:   1,
		Time: time.Date(2024, 1, 2, 19, 30, 0, 0, time.UTC),
		Home: &Side{TeamID: 10, Code: "BOS"},
		Away: &Side{TeamID: 20, Code: "LAL"},
	}
}

func TestStatByName(t *testing.T) {
	gl := &GameLog{
		Game: testGame(), Location: Away, Position: "SF",
		Minutes: 35.5, Points: 28, Rebounds: 11, Assists: 9, Steals: 1, Blocks: 2,
		FGM: 10, FGA: 20, FTA: 0, TPM: 3,
	}

	tests := []struct {
		key  StatKey
		num  float64
		text string
	}{
		{StatPoints, 28, "28"},
		{StatMinutes, 35.5, "35.5"},
		{StatFGP, 0.5, "0.5"},
		{StatFTP, 0, "0"},
		{StatPointsReboundsAssists, 48, "48"},
		{StatBlocksSteals, 3, "3"},
		{StatDoubleDouble, 1, "1"},
		{StatTripleDouble, 0, "0"},
		{StatThrees, 3, "3"},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			v := gl.StatByName(tt.key)
			assert.False(t, v.IsText)
			assert.InDelta(t, tt.num, v.Num, 1e-9)
			assert.Equal(t, tt.text, v.Text)
		})
	}

	assert.Equal(t, Value{Text: "away", IsText: true}, gl.StatByName(StatLocation))
	assert.Equal(t, "BOS", gl.StatByName(StatOpponent).Text)
	assert.Equal(t, "01/02/24", gl.StatByName(StatDate).Text)
	assert.Equal(t, "at BOS", gl.Matchup())
}

func TestStatByNameUnknownKeyPanics(t *testing.T) {
	gl := &GameLog{Game: testGame()}
	assert.Panics(t, func() { gl.StatByName("dunks") })
	assert.Panics(t, func() { gl.Stat(StatOpponent) })
}

func TestParseStatKey(t *testing.T) {
	key, err := ParseStatKey("points_rebounds")
	require.NoError(t, err)
	assert.Equal(t, StatPointsRebounds, key)
	assert.True(t, key.Numeric())
	assert.False(t, StatDate.Numeric())

	_, err = ParseStatKey("dunks")
	assert.Error(t, err)
}

func TestGroupOf(t *testing.T) {
	tests := map[string]Group{"PG": GroupGuard, "SG": GroupGuard, "SF": GroupForward, "PF": GroupForward, "C": GroupCenter}
	for pos, want := range tests {
		g, ok := GroupOf(pos)
		require.True(t, ok, pos)
		assert.Equal(t, want, g)
	}

	_, ok := GroupOf("")
	assert.False(t, ok)
	_, ok = GroupOf("X")
	assert.False(t, ok)

	assert.True(t, GroupAll.Contains(""))
	assert.True(t, GroupGuard.Contains("SG"))
	assert.False(t, GroupGuard.Contains("C"))
}

func TestSettle(t *testing.T) {
	g := testGame()
	g.Finished = true
	g.Home.Score = &Score{Total: 101}
	g.Away.Score = &Score{Total: 99}

	require.True(t, g.Settle())
	assert.Equal(t, Win, g.Home.Outcome)
	assert.Equal(t, Loss, g.Away.Outcome)
	assert.Equal(t, -2, *g.Away.Margin)

	g2 := testGame()
	g2.Finished = true
	g2.Home.Score = &Score{Total: 90}
	assert.False(t, g2.Settle())
	assert.False(t, g2.Finished)
	assert.Nil(t, g2.Home.Score)
}

func TestInjuryTag(t *testing.T) {
	assert.Equal(t, "OUT", (&Injury{Status: "Out"}).Tag())
	assert.Equal(t, "GTD", (&Injury{Status: "Day-To-Day"}).Tag())
	assert.Equal(t, "", (&Injury{Status: "Questionable"}).Tag())
}
