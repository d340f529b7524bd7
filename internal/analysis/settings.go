package analysis

import (
	"time"

	"github.com/fortuna/delphi/internal/metrics"
	"github.com/fortuna/delphi/internal/model"
	"github.com/fortuna/delphi/internal/ranking"
	"github.com/fortuna/delphi/internal/scoring"
)

// Market is a sportsbook player market and the stat it settles on
type Market struct {
	Key    string        `yaml:"key" json:"key"`
	Name   string        `yaml:"name" json:"name"`
	Abbrev string        `yaml:"abbrev" json:"abbrev"`
	Stat   model.StatKey `yaml:"stat" json:"stat"`
}

// Settings tune an analysis run
type Settings struct {
	Markets          []Market
	Player           metrics.PlayerProfile
	Defense          metrics.DefenseProfile
	Weights          scoring.Weights
	Windows          []ranking.Window
	Location         *time.Location
	InjuryRows       int
	Bookmakers       int
	WithoutTeammates int
	WithoutGames     int
	RecentGames      int
	RecentPlayers    int
}

// DefaultMarkets are the player markets the odds feed carries
var DefaultMarkets = []Market{
	{Key: "player_points", Name: "Points", Abbrev: "PTS", Stat: model.StatPoints},
	{Key: "player_rebounds", Name: "Rebounds", Abbrev: "REB", Stat: model.StatRebounds},
	{Key: "player_assists", Name: "Assists", Abbrev: "AST", Stat: model.StatAssists},
	{Key: "player_threes", Name: "Threes", Abbrev: "3PM", Stat: model.StatThrees},
	{Key: "player_blocks", Name: "Blocks", Abbrev: "BLK", Stat: model.StatBlocks},
	{Key: "player_steals", Name: "Steals", Abbrev: "STL", Stat: model.StatSteals},
	{Key: "player_blocks_steals", Name: "Blocks + Steals", Abbrev: "BLK+STL", Stat: model.StatBlocksSteals},
	{Key: "player_turnovers", Name: "Turnovers", Abbrev: "TO", Stat: model.StatTurnovers},
	{Key: "player_points_rebounds_assists", Name: "Pts + Reb + Ast", Abbrev: "PRA", Stat: model.StatPointsReboundsAssists},
	{Key: "player_points_rebounds", Name: "Pts + Reb", Abbrev: "PR", Stat: model.StatPointsRebounds},
	{Key: "player_points_assists", Name: "Pts + Ast", Abbrev: "PA", Stat: model.StatPointsAssists},
	{Key: "player_rebounds_assists", Name: "Reb + Ast", Abbrev: "RA", Stat: model.StatReboundsAssists},
	{Key: "player_double_double", Name: "Double Double", Abbrev: "DD", Stat: model.StatDoubleDouble},
	{Key: "player_triple_double", Name: "Triple Double", Abbrev: "TD", Stat: model.StatTripleDouble},
}

// DefaultSettings returns the production tuning
func DefaultSettings() Settings {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return Settings{
		Markets:          DefaultMarkets,
		Player:           metrics.DefaultPlayerProfile,
		Defense:          metrics.DefaultDefenseProfile,
		Weights:          scoring.DefaultWeights,
		Windows:          ranking.DefaultWindows,
		Location:         loc,
		InjuryRows:       5,
		Bookmakers:       4,
		WithoutTeammates: 2,
		WithoutGames:     6,
		RecentGames:      6,
		RecentPlayers:    2,
	}
}
