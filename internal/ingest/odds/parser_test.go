package odds

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = `[
  {
    "id": "evt-42",
    "sport_key": "basketball_nba",
    "home_team": "Boston Celtics",
    "away_team": "Los Angeles Lakers",
    "bookmakers": [
      {
        "key": "fanduel",
        "title": "FanDuel",
        "markets": [
          {
            "key": "player_points",
            "last_update": "2024-02-03T18:04:05Z",
            "outcomes": [
              {"name": "Over", "description": "Jayson Tatum", "price": -112, "point": 27.5},
              {"name": "Under", "description": "Jayson Tatum", "price": -108, "point": 27.5}
            ]
          },
          {
            "key": "player_double_double",
            "last_update": "2024-02-03T18:04:05Z",
            "outcomes": [
              {"name": "Yes", "description": "Anthony Davis", "price": -150}
            ]
          }
        ]
      }
    ]
  },
  [
    {
      "id": "evt-43",
      "bookmakers": [
        {"key": "draftkings", "markets": [
          {"key": "totals", "outcomes": [{"name": "Over", "price": -110, "point": 228.5}]},
          {"key": "player_assists", "outcomes": [{"name": "Over", "description": "Jalen Brunson", "price": "105", "point": "6.5"}]}
        ]}
      ]
    }
  ]
]`

func TestParse(t *testing.T) {
	props, err := Parse([]byte(payload))
	require.NoError(t, err)
	require.Len(t, props, 4, "the totals outcome has no player")

	tatum := props[0]
	assert.Equal(t, "evt-42", tatum.EventID)
	assert.Equal(t, "FanDuel", tatum.Bookmaker)
	assert.Equal(t, "player_points", tatum.MarketKey)
	assert.Equal(t, "Over", tatum.Side)
	assert.Equal(t, 27.5, tatum.Line)
	assert.Equal(t, -112.0, tatum.Price)
	assert.Equal(t, time.Date(2024, 2, 3, 18, 4, 5, 0, time.UTC), tatum.LastUpdate)

	dd := props[2]
	assert.Equal(t, "Anthony Davis", dd.PlayerName)
	assert.Equal(t, 0.5, dd.Line)

	brunson := props[3]
	assert.Equal(t, "draftkings", brunson.Bookmaker)
	assert.Equal(t, 6.5, brunson.Line)
	assert.Equal(t, 105.0, brunson.Price)
	assert.True(t, brunson.LastUpdate.IsZero())
}

func TestParseSingleEvent(t *testing.T) {
	props, err := Parse([]byte(`{"id": "e", "bookmakers": []}`))
	require.NoError(t, err)
	assert.Empty(t, props)

	_, err = Parse([]byte(`{"id": `))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odds.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	props, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, props, 4)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
