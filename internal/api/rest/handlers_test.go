package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/delphi/internal/analysis"
	"github.com/fortuna/delphi/internal/api/rest"
	"github.com/fortuna/delphi/internal/testutil"
)

func newTestServer() *rest.Server {
	l := testutil.NewLeague().
		Team(1, "BOS").Team(2, "LAL").
		Player(10, "Jayson", "Tatum", "SF").
		Player(20, "LeBron", "James", "SF")

	tatum := func(pts int) testutil.Line { return testutil.Line{PlayerID: 10, TeamID: 1, Pos: "SF", Minutes: "36:00", Points: pts} }
	lebron := func(pts int) testutil.Line { return testutil.Line{PlayerID: 20, TeamID: 2, Pos: "SF", Points: pts} }

	s := testutil.Season
	l.Game(s, 1, 1, 2, tatum(30), lebron(20))
	l.Game(s, 2, 2, 1, tatum(28), lebron(22))
	l.Game(s, 3, 1, 2, tatum(22), lebron(25))
	l.Game(s, 4, 2, 1, tatum(31), lebron(18))
	l.Scheduled(s, 6, 1, 2)
	l.Prop("Jayson Tatum", "player_points", 26.5, "fanduel")

	settings := analysis.DefaultSettings()
	settings.Location = time.UTC
	return rest.NewServer(0, analysis.NewAnalyzer(l.Build(), settings, zerolog.Nop()))
}

func get(t *testing.T, srv *rest.Server, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealthCheck(t *testing.T) {
	rec, body := get(t, newTestServer(), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(testutil.Season), body["season"])
	assert.Equal(t, float64(5), body["games"])
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetMarkets(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/markets", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var markets []analysis.Market
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &markets))
	assert.Len(t, markets, len(analysis.DefaultMarkets))
	assert.Equal(t, "player_points", markets[0].Key)
}

func TestGetPropTable(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"known market", "/api/v1/props/player_points?date=2023-10-30", http.StatusOK},
		{"unknown market", "/api/v1/props/player_dunks?date=2023-10-30", http.StatusNotFound},
		{"bad date", "/api/v1/props/player_points?date=10-30-2023", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := get(t, srv, tt.path)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "2023-10-30", body["date"])
				assert.NotNil(t, body["rows"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestGetPlayerGameLog(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		name    string
		path    string
		status  int
		values  []float64
		average float64
	}{
		{"defaults", "/api/v1/players/10/gamelog", http.StatusOK, []float64{30, 28, 22, 31}, 27.8},
		{"last two", "/api/v1/players/10/gamelog?last=2", http.StatusOK, []float64{22, 31}, 26.5},
		{"home only", "/api/v1/players/10/gamelog?location=home", http.StatusOK, []float64{30, 22}, 26},
		{"opponent", "/api/v1/players/20/gamelog?opponent=bos&last=1", http.StatusOK, []float64{18}, 18},
		{"minutes", "/api/v1/players/10/gamelog?stat=minutes&last=1", http.StatusOK, []float64{36}, 36},
		{"bad id", "/api/v1/players/abc/gamelog", http.StatusBadRequest, nil, 0},
		{"missing player", "/api/v1/players/999/gamelog", http.StatusNotFound, nil, 0},
		{"text stat", "/api/v1/players/10/gamelog?stat=date", http.StatusBadRequest, nil, 0},
		{"bad location", "/api/v1/players/10/gamelog?location=neutral", http.StatusBadRequest, nil, 0},
		{"unknown opponent", "/api/v1/players/10/gamelog?opponent=XXX", http.StatusBadRequest, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := get(t, srv, tt.path)
			require.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusOK {
				return
			}

			games := body["games"].([]interface{})
			got := make([]float64, len(games))
			for i, g := range games {
				got[i] = g.(map[string]interface{})["value"].(float64)
			}
			assert.Equal(t, tt.values, got)
			assert.Equal(t, tt.average, body["average"])
		})
	}
}

func TestGetPlayerGameLogColumns(t *testing.T) {
	_, body := get(t, newTestServer(), "/api/v1/players/10/gamelog?last=1")

	assert.Equal(t, "Jayson Tatum", body["name"])
	assert.Equal(t, "BOS", body["team"])
	game := body["games"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "10/28/23", game["date"])
	assert.Equal(t, "LAL", game["opponent"])
	assert.Equal(t, "away", game["location"])
	assert.Equal(t, float64(36), game["minutes"])
}

func TestGetTeamRoster(t *testing.T) {
	srv := newTestServer()

	rec, body := get(t, srv, "/api/v1/teams/1/roster")
	require.Equal(t, http.StatusOK, rec.Code)
	players := body["players"].([]interface{})
	require.Len(t, players, 1)
	tatum := players[0].(map[string]interface{})
	assert.Equal(t, float64(10), tatum["id"])
	assert.Equal(t, float64(4), tatum["games_played"])

	rec, _ = get(t, srv, "/api/v1/teams/9/roster")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDefenseRanks(t *testing.T) {
	srv := newTestServer()

	rec, body := get(t, srv, "/api/v1/defense/points/ranks")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "points", body["stat"])
	assert.Equal(t, float64(2), body["league_size"])

	rec, _ = get(t, srv, "/api/v1/defense/dunks/ranks")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDiagnostics(t *testing.T) {
	rec, body := get(t, newTestServer(), "/api/v1/diagnostics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["dropped_game_logs"])
}
