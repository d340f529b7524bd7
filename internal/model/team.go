package model

// Team is an NBA franchise together with its roster and schedule
type Team struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	City       string `json:"city"`
	Nickname   string `json:"nickname"`
	Code       string `json:"code"`
	Conference string `json:"conference,omitempty"`
	Division   string `json:"division,omitempty"`
	Logo       string `json:"logo,omitempty"`

	// Players is ordered by recent workload, heaviest first.
	Players   []*Player `json:"-"`
	Finished  []*Game   `json:"-"`
	Scheduled []*Game   `json:"-"`
	Defense   *Defense  `json:"-"`
}

// Defense aggregates what a team allowed, one log per finished game
type Defense struct {
	Team *Team
	Logs []*DefenseLog
}

// DefenseLog is a single finished game seen from the defending side
type DefenseLog struct {
	Game     *Game
	Location Location
}

// Opponent returns the side the defense played against
func (d *DefenseLog) Opponent() *Side {
	return d.Game.Side(d.Location.Other())
}

// PlayerLogs returns the opposing player logs whose position falls in group
func (d *DefenseLog) PlayerLogs(group Group) []*GameLog {
	var logs []*GameLog
	for _, gl := range d.Opponent().Logs {
		if group.Contains(gl.Position) {
			logs = append(logs, gl)
		}
	}
	return logs
}

// Allowed sums key over the opposing players in group
func (d *DefenseLog) Allowed(key StatKey, group Group) float64 {
	var total float64
	for _, gl := range d.PlayerLogs(group) {
		total += gl.Stat(key)
	}
	return total
}
