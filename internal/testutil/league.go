// Package testutil assembles small leagues for package tests.
package testutil

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fortuna/delphi/internal/graph"
	"github.com/fortuna/delphi/internal/store"
)

// Season is the season every fixture game defaults to
const Season = 2024

// Opening is the tip-off of the first fixture day
var Opening = time.Date(2023, 10, 24, 23, 30, 0, 0, time.UTC)

// Line is a compact box score row
type Line struct {
	PlayerID int
	TeamID   int
	Pos      string
	Minutes  string
	Points   int
	Rebounds int
	Assists  int
	Threes   int
}

// League accumulates records for a Dataset
type League struct {
	ds       *store.Dataset
	nextGame int
}

// NewLeague returns a league with no teams
func NewLeague() *League {
	return &League{
		ds: &store.Dataset{
			Games:    make(map[int]*store.Game),
			AltNames: make(map[int][]string),
		},
		nextGame: 1000,
	}
}

// Team adds a franchise
func (l *League) Team(id int, code string) *League {
	l.ds.Teams = append(l.ds.Teams, &store.Team{
		TeamID:       id,
		Abbreviation: code,
		FullName:     code + " Team",
		ShortName:    code,
	})
	return l
}

// Player adds a player with a listed position
func (l *League) Player(id int, first, last, pos string, aliases ...string) *League {
	l.ds.Players = append(l.ds.Players, &store.Player{
		PlayerID:     id,
		FirstName:    first,
		LastName:     last,
		Position:     sql.NullString{String: pos, Valid: pos != ""},
		JerseyNumber: sql.NullString{String: fmt.Sprint(id % 100), Valid: true},
	})
	if len(aliases) > 0 {
		l.ds.AltNames[id] = append(l.ds.AltNames[id], aliases...)
	}
	return l
}

// Game adds a finished game day days after Opening and returns its id.
// Team totals are the sum of the lines' points.
func (l *League) Game(season, day, home, away int, lines ...Line) int {
	id := l.add(season, day, home, away, true)
	game := l.ds.Games[id]
	homePts, awayPts := 0, 0
	for _, ln := range lines {
		l.addLine(id, ln)
		if ln.TeamID == home {
			homePts += ln.Points
		} else {
			awayPts += ln.Points
		}
	}
	game.Home.Score = &store.LineScore{Q1: homePts, Total: homePts}
	game.Away.Score = &store.LineScore{Q1: awayPts, Total: awayPts}
	return id
}

// Scheduled adds an unplayed game and returns its id
func (l *League) Scheduled(season, day, home, away int) int {
	return l.add(season, day, home, away, false)
}

func (l *League) add(season, day, home, away int, finished bool) int {
	l.nextGame++
	id := l.nextGame
	l.ds.Games[id] = &store.Game{
		GameID:    id,
		Season:    season,
		StartTime: Opening.AddDate(0, 0, day),
		Finished:  finished,
		Home:      store.GameSide{TeamID: home, Abbreviation: l.code(home)},
		Away:      store.GameSide{TeamID: away, Abbreviation: l.code(away)},
	}
	return id
}

func (l *League) addLine(gameID int, ln Line) {
	first, last := "", ""
	for _, p := range l.ds.Players {
		if p.PlayerID == ln.PlayerID {
			first, last = p.FirstName, p.LastName
		}
	}
	minutes := ln.Minutes
	if minutes == "" {
		minutes = "30:00"
	}
	l.ds.GameStats = append(l.ds.GameStats, &store.PlayerGameStats{
		GameID:            gameID,
		PlayerID:          ln.PlayerID,
		TeamID:            ln.TeamID,
		FirstName:         first,
		LastName:          last,
		Position:          sql.NullString{String: ln.Pos, Valid: ln.Pos != ""},
		Minutes:           minutes,
		Points:            ln.Points,
		Rebounds:          ln.Rebounds,
		Assists:           ln.Assists,
		ThreePointersMade: ln.Threes,
	})
}

// RawLine appends a box score row without any bookkeeping
func (l *League) RawLine(rec *store.PlayerGameStats) *League {
	l.ds.GameStats = append(l.ds.GameStats, rec)
	return l
}

// Prop adds an over/under pair for a player market at one book
func (l *League) Prop(name, market string, line float64, book string) *League {
	for _, side := range []string{"Over", "Under"} {
		l.ds.Props = append(l.ds.Props, &store.PlayerProp{
			EventID:      "evt-1",
			BookmakerKey: book,
			Bookmaker:    book,
			MarketKey:    market,
			Side:         side,
			PlayerName:   name,
			Price:        -110,
			Line:         line,
		})
	}
	return l
}

// Injury adds an injury report row
func (l *League) Injury(name, status string) *League {
	l.ds.Injuries = append(l.ds.Injuries, &store.InjuryReport{PlayerName: name, Status: status})
	return l
}

// Dataset returns the accumulated records
func (l *League) Dataset() *store.Dataset {
	return l.ds
}

// Build builds a graph with logging discarded
func (l *League) Build() *graph.Graph {
	return graph.NewBuilder(zerolog.Nop(), 0).Build(l.ds)
}

func (l *League) code(teamID int) string {
	for _, t := range l.ds.Teams {
		if t.TeamID == teamID {
			return t.Abbreviation
		}
	}
	return ""
}
