package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/delphi/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "delphi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DELPHI_CONFIG", "")
	t.Setenv("REST_PORT", "9001")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.RESTPort)
	assert.Equal(t, 8088, cfg.WSPort)
	assert.Equal(t, 6*time.Hour, cfg.RankTTL)
	assert.Equal(t, 15*time.Minute, cfg.Refresh)
	assert.Equal(t, 5, cfg.Analysis.InjuryRows)
	assert.NotEmpty(t, cfg.Analysis.Markets)
	assert.Equal(t, 0.7, cfg.Analysis.Player.CoverShare)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
season: 2024
timezone: America/Chicago
rank_ttl: 30m
refresh_interval: 2m
markets:
  - { key: player_points, name: Points, abbrev: PTS, stat: points }
player:
  avg_share: 0.4
  cover_share: 0.6
defense:
  tiers:
    - { min_games: 0, weights: [0.4, 0.6] }
windows:
  - { label: L3, games: 3 }
  - { label: Season, season: true }
display:
  bookmakers: 2
  recent_players: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2024, cfg.Season)
	assert.Equal(t, "America/Chicago", cfg.Analysis.Location.String())
	assert.Equal(t, 30*time.Minute, cfg.RankTTL)
	assert.Equal(t, 2*time.Minute, cfg.Refresh)
	require.Len(t, cfg.Analysis.Markets, 1)
	assert.Equal(t, model.StatPoints, cfg.Analysis.Markets[0].Stat)
	assert.Equal(t, 0.4, cfg.Analysis.Player.AvgShare)
	assert.NotEmpty(t, cfg.Analysis.Player.Tiers, "tiers keep their defaults")
	require.Len(t, cfg.Analysis.Windows, 2)
	assert.True(t, cfg.Analysis.Windows[1].Season)
	assert.Len(t, cfg.Analysis.Defense.Tiers[0].Weights, len(cfg.Analysis.Windows))
	assert.Equal(t, 2, cfg.Analysis.Bookmakers)
	assert.Equal(t, 6, cfg.Analysis.WithoutGames)
	assert.Equal(t, 6, cfg.Analysis.RecentGames)
	assert.Equal(t, 3, cfg.Analysis.RecentPlayers)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown stat", "markets:\n  - { key: player_dunks, stat: dunks }\n"},
		{"text stat", "markets:\n  - { key: player_date, stat: date }\n"},
		{"shares", "player:\n  avg_share: 0.5\n  cover_share: 0.7\n"},
		{"tier weights", "defense:\n  tiers:\n    - { min_games: 0, weights: [0.5, 0.2] }\n"},
		{"timezone", "timezone: Mars/Olympus\n"},
		{"refresh", "refresh_interval: soon\n"},
		{"windows without defense weights", "windows:\n  - { label: L5, games: 5 }\n  - { label: L10, games: 10 }\n  - { label: Season, season: true }\n"},
		{"duplicate windows", "windows:\n  - { label: L5, games: 5 }\n  - { label: L5, games: 10 }\n  - { label: L20, games: 20 }\n  - { label: Season, season: true }\n"},
		{"defense weights without windows", "defense:\n  tiers:\n    - { min_games: 0, weights: [0.5, 0.5] }\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}

	_, err := Load(writeConfig(t, "season: [1, 2"))
	assert.Error(t, err)
}

func TestRepositoryConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "delphi.yaml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Analysis.Markets, 14)
	assert.Equal(t, 0.4, cfg.Analysis.Weights.PlayerAll)
}
