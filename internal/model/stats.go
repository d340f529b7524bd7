package model

import (
	"fmt"
	"strconv"
)

// StatKey names a stat that can be read off a GameLog
type StatKey string

const (
	StatMinutes   StatKey = "minutes"
	StatPoints    StatKey = "points"
	StatFGM       StatKey = "fgm"
	StatFGA       StatKey = "fga"
	StatFGP       StatKey = "fgp"
	StatFTM       StatKey = "ftm"
	StatFTA       StatKey = "fta"
	StatFTP       StatKey = "ftp"
	StatThrees    StatKey = "tpm"
	StatTPA       StatKey = "tpa"
	StatTPP       StatKey = "tpp"
	StatOffReb    StatKey = "off_reb"
	StatDefReb    StatKey = "def_reb"
	StatRebounds  StatKey = "rebounds"
	StatAssists   StatKey = "assists"
	StatFouls     StatKey = "fouls"
	StatSteals    StatKey = "steals"
	StatTurnovers StatKey = "turnovers"
	StatBlocks    StatKey = "blocks"
	StatPlusMinus StatKey = "plus_minus"

	StatPointsRebounds        StatKey = "points_rebounds"
	StatPointsAssists         StatKey = "points_assists"
	StatReboundsAssists       StatKey = "rebounds_assists"
	StatPointsReboundsAssists StatKey = "points_rebounds_assists"
	StatBlocksSteals          StatKey = "blocks_steals"
	StatDoubleDouble          StatKey = "double_double"
	StatTripleDouble          StatKey = "triple_double"

	StatLocation  StatKey = "location"
	StatOpponent  StatKey = "opponent"
	StatDate      StatKey = "date"
	StatPosition  StatKey = "position"
	StatFirstName StatKey = "first_name"
	StatLastName  StatKey = "last_name"
)

// DateLayout is how StatDate renders a game date
const DateLayout = "01/02/06"

// Value is the result of a stat lookup; text stats leave Num at zero
type Value struct {
	Num    float64
	Text   string
	IsText bool
}

type accessor struct {
	num  func(*GameLog) float64
	text func(*GameLog) string
}

func count(f func(*GameLog) int) accessor {
	return accessor{num: func(gl *GameLog) float64 { return float64(f(gl)) }}
}

func pct(made, attempted func(*GameLog) int) accessor {
	return accessor{num: func(gl *GameLog) float64 {
		a := attempted(gl)
		if a == 0 {
			return 0
		}
		return float64(made(gl)) / float64(a)
	}}
}

func text(f func(*GameLog) string) accessor {
	return accessor{text: f}
}

var statTable = map[StatKey]accessor{
	StatMinutes:   {num: func(gl *GameLog) float64 { return gl.Minutes }},
	StatPoints:    count(func(gl *GameLog) int { return gl.Points }),
	StatFGM:       count(func(gl *GameLog) int { return gl.FGM }),
	StatFGA:       count(func(gl *GameLog) int { return gl.FGA }),
	StatFGP:       pct(func(gl *GameLog) int { return gl.FGM }, func(gl *GameLog) int { return gl.FGA }),
	StatFTM:       count(func(gl *GameLog) int { return gl.FTM }),
	StatFTA:       count(func(gl *GameLog) int { return gl.FTA }),
	StatFTP:       pct(func(gl *GameLog) int { return gl.FTM }, func(gl *GameLog) int { return gl.FTA }),
	StatThrees:    count(func(gl *GameLog) int { return gl.TPM }),
	StatTPA:       count(func(gl *GameLog) int { return gl.TPA }),
	StatTPP:       pct(func(gl *GameLog) int { return gl.TPM }, func(gl *GameLog) int { return gl.TPA }),
	StatOffReb:    count(func(gl *GameLog) int { return gl.OffReb }),
	StatDefReb:    count(func(gl *GameLog) int { return gl.DefReb }),
	StatRebounds:  count(func(gl *GameLog) int { return gl.Rebounds }),
	StatAssists:   count(func(gl *GameLog) int { return gl.Assists }),
	StatFouls:     count(func(gl *GameLog) int { return gl.Fouls }),
	StatSteals:    count(func(gl *GameLog) int { return gl.Steals }),
	StatTurnovers: count(func(gl *GameLog) int { return gl.Turnovers }),
	StatBlocks:    count(func(gl *GameLog) int { return gl.Blocks }),
	StatPlusMinus: count(func(gl *GameLog) int { return gl.PlusMinus }),

	StatPointsRebounds:        count(func(gl *GameLog) int { return gl.Points + gl.Rebounds }),
	StatPointsAssists:         count(func(gl *GameLog) int { return gl.Points + gl.Assists }),
	StatReboundsAssists:       count(func(gl *GameLog) int { return gl.Rebounds + gl.Assists }),
	StatPointsReboundsAssists: count(func(gl *GameLog) int { return gl.Points + gl.Rebounds + gl.Assists }),
	StatBlocksSteals:          count(func(gl *GameLog) int { return gl.Blocks + gl.Steals }),
	StatDoubleDouble:          count(func(gl *GameLog) int { return doubles(gl, 2) }),
	StatTripleDouble:          count(func(gl *GameLog) int { return doubles(gl, 3) }),

	StatLocation:  text(func(gl *GameLog) string { return string(gl.Location) }),
	StatOpponent:  text(func(gl *GameLog) string { return gl.Opponent().Code }),
	StatDate:      text(func(gl *GameLog) string { return gl.Game.Time.Format(DateLayout) }),
	StatPosition:  text(func(gl *GameLog) string { return gl.Position }),
	StatFirstName: text(func(gl *GameLog) string { return gl.FirstName }),
	StatLastName:  text(func(gl *GameLog) string { return gl.LastName }),
}

// doubles returns 1 when at least n of the five counting categories reach 10
func doubles(gl *GameLog, n int) int {
	hits := 0
	for _, v := range []int{gl.Points, gl.Rebounds, gl.Assists, gl.Steals, gl.Blocks} {
		if v >= 10 {
			hits++
		}
	}
	if hits >= n {
		return 1
	}
	return 0
}

// ParseStatKey validates a stat name coming from configuration or a request
func ParseStatKey(s string) (StatKey, error) {
	key := StatKey(s)
	if _, ok := statTable[key]; !ok {
		return "", fmt.Errorf("unknown stat %q", s)
	}
	return key, nil
}

// Numeric reports whether the key yields a number
func (k StatKey) Numeric() bool {
	acc, ok := statTable[k]
	return ok && acc.num != nil
}

// StatByName reads any stat in the vocabulary. Unknown keys are a programming
// error and panic.
func (gl *GameLog) StatByName(key StatKey) Value {
	acc, ok := statTable[key]
	if !ok {
		panic(fmt.Sprintf("model: unknown stat key %q", key))
	}
	if acc.text != nil {
		return Value{Text: acc.text(gl), IsText: true}
	}
	v := acc.num(gl)
	return Value{Num: v, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Stat reads a numeric stat. Text keys panic.
func (gl *GameLog) Stat(key StatKey) float64 {
	v := gl.StatByName(key)
	if v.IsText {
		panic(fmt.Sprintf("model: stat key %q is not numeric", key))
	}
	return v.Num
}
