package model

import "time"

// Location is the side of a game a team plays on
type Location string

const (
	Home Location = "home"
	Away Location = "away"
)

// Other returns the opposite side
func (l Location) Other() Location {
	if l == Home {
		return Away
	}
	return Home
}

// Outcome of a finished game for one side
type Outcome string

const (
	Win  Outcome = "W"
	Loss Outcome = "L"
)

// Score is one side's line score
type Score struct {
	Q1       int `json:"q1"`
	Q2       int `json:"q2"`
	Q3       int `json:"q3"`
	Q4       int `json:"q4"`
	Overtime int `json:"ot"`
	Total    int `json:"total"`
}

// Side is one team's half of a game. Score, Outcome and Margin are only set
// once the game is finished.
type Side struct {
	TeamID  int        `json:"team_id"`
	Code    string     `json:"code"`
	Team    *Team      `json:"-"`
	Score   *Score     `json:"score,omitempty"`
	Outcome Outcome    `json:"outcome,omitempty"`
	Margin  *int       `json:"margin,omitempty"`
	Logs    []*GameLog `json:"-"`
}

// Game is a scheduled or finished game
type Game struct {
	ID       int       `json:"id"`
	Season   int       `json:"season"`
	Time     time.Time `json:"datetime"`
	Finished bool      `json:"finished"`
	Overtime bool      `json:"overtime"`
	Playoffs bool      `json:"playoffs"`
	Arena    string    `json:"arena,omitempty"`
	Home     *Side     `json:"home"`
	Away     *Side     `json:"away"`
}

// Side returns the requested half of the game
func (g *Game) Side(loc Location) *Side {
	if loc == Home {
		return g.Home
	}
	return g.Away
}

// SideOf returns the location a team plays at in this game
func (g *Game) SideOf(teamID int) (Location, bool) {
	switch teamID {
	case g.Home.TeamID:
		return Home, true
	case g.Away.TeamID:
		return Away, true
	}
	return "", false
}

// Settle fills outcome and margin from both scores. Games missing either
// score stay unsettled.
func (g *Game) Settle() bool {
	if g.Home.Score == nil || g.Away.Score == nil {
		g.Finished = false
		g.Home.Score, g.Away.Score = nil, nil
		return false
	}

	home, away := g.Home.Score.Total, g.Away.Score.Total
	homeMargin, awayMargin := home-away, away-home
	g.Home.Margin, g.Away.Margin = &homeMargin, &awayMargin

	if home > away {
		g.Home.Outcome, g.Away.Outcome = Win, Loss
	} else {
		g.Home.Outcome, g.Away.Outcome = Loss, Win
	}
	return true
}
