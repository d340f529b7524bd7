package store

import (
	"database/sql"
	"time"
)

// Team represents an NBA franchise row
type Team struct {
	TeamID       int            `json:"team_id" db:"team_id"`
	Abbreviation string         `json:"abbreviation" db:"abbreviation"`
	FullName     string         `json:"full_name" db:"full_name"`
	City         sql.NullString `json:"city,omitempty" db:"city"`
	ShortName    string         `json:"short_name" db:"short_name"`
	Conference   sql.NullString `json:"conference,omitempty" db:"conference"`
	Division     sql.NullString `json:"division,omitempty" db:"division"`
	LogoURL      sql.NullString `json:"logo_url,omitempty" db:"logo_url"`
}

// LineScore is the per-period scoring of one side of a finished game
type LineScore struct {
	Q1       int `json:"q1"`
	Q2       int `json:"q2"`
	Q3       int `json:"q3"`
	Q4       int `json:"q4"`
	Overtime int `json:"ot"`
	Total    int `json:"total"`
}

// GameSide is one team's half of a game row. Score is nil until the game is final.
type GameSide struct {
	TeamID       int        `json:"team_id"`
	Abbreviation string     `json:"abbreviation"`
	Score        *LineScore `json:"score,omitempty"`
}

// Game represents a scheduled or finished game
type Game struct {
	GameID    int            `json:"game_id" db:"game_id"`
	Season    int            `json:"season" db:"season"`
	StartTime time.Time      `json:"start_time" db:"start_time"`
	Finished  bool           `json:"finished" db:"finished"`
	Overtime  bool           `json:"overtime" db:"overtime"`
	Playoffs  bool           `json:"playoffs" db:"playoffs"`
	Venue     sql.NullString `json:"venue,omitempty" db:"venue"`
	Home      GameSide       `json:"home"`
	Away      GameSide       `json:"away"`
}

// Player represents a player row
type Player struct {
	PlayerID     int            `json:"player_id" db:"player_id"`
	FirstName    string         `json:"first_name" db:"first_name"`
	LastName     string         `json:"last_name" db:"last_name"`
	Position     sql.NullString `json:"position,omitempty" db:"position"`
	JerseyNumber sql.NullString `json:"jersey_number,omitempty" db:"jersey_number"`
	HeightInches sql.NullInt32  `json:"height_inches,omitempty" db:"height_inches"`
	Weight       sql.NullInt32  `json:"weight,omitempty" db:"weight"`
}

// PlayerGameStats represents player stats for a single game
type PlayerGameStats struct {
	GameID                 int            `json:"game_id" db:"game_id"`
	PlayerID               int            `json:"player_id" db:"player_id"`
	TeamID                 int            `json:"team_id" db:"team_id"`
	FirstName              string         `json:"first_name" db:"first_name"`
	LastName               string         `json:"last_name" db:"last_name"`
	Position               sql.NullString `json:"position,omitempty" db:"position"`
	Minutes                string         `json:"minutes" db:"minutes"`
	Points                 int            `json:"points" db:"points"`
	FieldGoalsMade         int            `json:"field_goals_made" db:"field_goals_made"`
	FieldGoalsAttempted    int            `json:"field_goals_attempted" db:"field_goals_attempted"`
	FreeThrowsMade         int            `json:"free_throws_made" db:"free_throws_made"`
	FreeThrowsAttempted    int            `json:"free_throws_attempted" db:"free_throws_attempted"`
	ThreePointersMade      int            `json:"three_pointers_made" db:"three_pointers_made"`
	ThreePointersAttempted int            `json:"three_pointers_attempted" db:"three_pointers_attempted"`
	OffensiveRebounds      int            `json:"offensive_rebounds" db:"offensive_rebounds"`
	DefensiveRebounds      int            `json:"defensive_rebounds" db:"defensive_rebounds"`
	Rebounds               int            `json:"rebounds" db:"rebounds"`
	Assists                int            `json:"assists" db:"assists"`
	PersonalFouls          int            `json:"personal_fouls" db:"personal_fouls"`
	Steals                 int            `json:"steals" db:"steals"`
	Turnovers              int            `json:"turnovers" db:"turnovers"`
	Blocks                 int            `json:"blocks" db:"blocks"`
	PlusMinus              sql.NullInt32  `json:"plus_minus,omitempty" db:"plus_minus"`
	Comment                sql.NullString `json:"comment,omitempty" db:"comment"`
}

// PlayerProp is one bookmaker outcome for a player market
type PlayerProp struct {
	EventID      string    `json:"event_id" db:"event_id"`
	BookmakerKey string    `json:"bookmaker_key" db:"bookmaker_key"`
	Bookmaker    string    `json:"bookmaker" db:"bookmaker"`
	MarketKey    string    `json:"market_key" db:"market_key"`
	Side         string    `json:"side" db:"side"`
	PlayerName   string    `json:"player_name" db:"player_name"`
	Price        float64   `json:"price" db:"price"`
	Line         float64   `json:"line" db:"line"`
	LastUpdate   time.Time `json:"last_update" db:"last_update"`
}

// InjuryReport is one row of a league injury report
type InjuryReport struct {
	PlayerName string `json:"player_name" db:"player_name"`
	Status     string `json:"status" db:"status"`
	Comment    string `json:"comment" db:"comment"`
}

// Dataset is everything the graph builder consumes, already deserialized
type Dataset struct {
	Teams     []*Team            `json:"teams"`
	Games     map[int]*Game      `json:"games"`
	Players   []*Player          `json:"players"`
	AltNames  map[int][]string   `json:"alt_names"`
	GameStats []*PlayerGameStats `json:"game_stats"`
	Props     []*PlayerProp      `json:"props"`
	Injuries  []*InjuryReport    `json:"injuries"`
}
