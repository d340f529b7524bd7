package model

// GameLog is one player's box score line in one game
type GameLog struct {
	Game      *Game    `json:"-"`
	Location  Location `json:"location"`
	PlayerID  int      `json:"player_id"`
	TeamID    int      `json:"team_id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Position  string   `json:"pos,omitempty"`
	Minutes   float64  `json:"min"`
	Points    int      `json:"points"`
	FGM       int      `json:"fgm"`
	FGA       int      `json:"fga"`
	FTM       int      `json:"ftm"`
	FTA       int      `json:"fta"`
	TPM       int      `json:"tpm"`
	TPA       int      `json:"tpa"`
	OffReb    int      `json:"off_reb"`
	DefReb    int      `json:"def_reb"`
	Rebounds  int      `json:"tot_reb"`
	Assists   int      `json:"assists"`
	Fouls     int      `json:"fouls"`
	Steals    int      `json:"steals"`
	Turnovers int      `json:"turnovers"`
	Blocks    int      `json:"blocks"`
	PlusMinus int      `json:"plus_minus"`
	Comment   string   `json:"comment,omitempty"`
}

// Side returns the player's half of the game
func (gl *GameLog) Side() *Side {
	return gl.Game.Side(gl.Location)
}

// Opponent returns the other half of the game
func (gl *GameLog) Opponent() *Side {
	return gl.Game.Side(gl.Location.Other())
}

// Matchup renders "vs LAL" at home and "at BOS" on the road
func (gl *GameLog) Matchup() string {
	if gl.Location == Home {
		return "vs " + gl.Opponent().Code
	}
	return "at " + gl.Opponent().Code
}
