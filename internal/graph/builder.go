package graph

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fortuna/delphi/internal/model"
	"github.com/fortuna/delphi/internal/store"
)

// rosterWindow is how many recent games decide a player's place on the roster
const rosterWindow = 25

// Builder turns a Dataset into a Graph
type Builder struct {
	logger zerolog.Logger
	season int
}

// NewBuilder creates a builder. A zero season means "latest season present
// in the games".
func NewBuilder(logger zerolog.Logger, season int) *Builder {
	return &Builder{
		logger: logger.With().Str("component", "graph").Logger(),
		season: season,
	}
}

// Build runs the join passes in order. Records that cannot be joined are
// dropped and summarized in Diagnostics; Build itself never fails.
func (b *Builder) Build(ds *store.Dataset) *Graph {
	g := &Graph{
		games:   make(map[int]*model.Game, len(ds.Games)),
		teams:   make(map[int]*model.Team, len(ds.Teams)),
		players: make(map[int]*model.Player, len(ds.Players)),
		codes:   make(map[string]*model.Team, len(ds.Teams)),
	}

	b.addTeams(g, ds.Teams)
	b.addGames(g, ds.Games)
	b.addPlayers(g, ds.Players, ds.AltNames)
	b.attachGameLogs(g, ds.GameStats)
	sortGameLogs(g)
	wireSchedules(g)
	assignTeams(g)
	b.claimProps(g, ds.Props)
	b.claimInjuries(g, ds.Injuries)
	assignPositions(g)

	g.Season = b.season
	if g.Season == 0 {
		for _, game := range g.Games {
			if game.Season > g.Season {
				g.Season = game.Season
			}
		}
	}

	b.logger.Info().
		Int("season", g.Season).
		Int("teams", len(g.Teams)).
		Int("games", len(g.Games)).
		Int("players", len(g.Players)).
		Int("dropped_game_logs", g.Diagnostics.DroppedGameLogs).
		Int("did_not_play", g.Diagnostics.DidNotPlay).
		Int("unsettled_games", g.Diagnostics.UnsettledGames).
		Int("unmatched_props", len(g.Diagnostics.UnmatchedProps)).
		Int("unmatched_injuries", len(g.Diagnostics.UnmatchedInjuries)).
		Msg("graph built")

	return g
}

func (b *Builder) addTeams(g *Graph, teams []*store.Team) {
	for _, rec := range teams {
		team := &model.Team{
			ID:         rec.TeamID,
			Name:       rec.FullName,
			City:       rec.City.String,
			Nickname:   rec.ShortName,
			Code:       rec.Abbreviation,
			Conference: rec.Conference.String,
			Division:   rec.Division.String,
			Logo:       rec.LogoURL.String,
		}
		team.Defense = &model.Defense{Team: team}
		g.Teams = append(g.Teams, team)
		g.teams[team.ID] = team
		g.codes[team.Code] = team
	}
}

func (b *Builder) addGames(g *Graph, games map[int]*store.Game) {
	for _, rec := range games {
		game := &model.Game{
			ID:       rec.GameID,
			Season:   rec.Season,
			Time:     rec.StartTime,
			Finished: rec.Finished,
			Overtime: rec.Overtime,
			Playoffs: rec.Playoffs,
			Arena:    rec.Venue.String,
			Home:     newSide(rec.Home),
			Away:     newSide(rec.Away),
		}
		if game.Finished && !game.Settle() {
			g.Diagnostics.UnsettledGames++
		}
		if !game.Finished {
			game.Home.Score, game.Away.Score = nil, nil
		}
		g.Games = append(g.Games, game)
		g.games[game.ID] = game
	}

	sort.Slice(g.Games, func(i, j int) bool {
		if g.Games[i].Time.Equal(g.Games[j].Time) {
			return g.Games[i].ID < g.Games[j].ID
		}
		return g.Games[i].Time.Before(g.Games[j].Time)
	})
}

func newSide(rec store.GameSide) *model.Side {
	side := &model.Side{TeamID: rec.TeamID, Code: rec.Abbreviation}
	if rec.Score != nil {
		side.Score = &model.Score{
			Q1:       rec.Score.Q1,
			Q2:       rec.Score.Q2,
			Q3:       rec.Score.Q3,
			Q4:       rec.Score.Q4,
			Overtime: rec.Score.Overtime,
			Total:    rec.Score.Total,
		}
	}
	return side
}

func (b *Builder) addPlayers(g *Graph, players []*store.Player, altNames map[int][]string) {
	for _, rec := range players {
		player := &model.Player{
			ID:           rec.PlayerID,
			FirstName:    rec.FirstName,
			LastName:     rec.LastName,
			Jersey:       rec.JerseyNumber.String,
			HeightInches: int(rec.HeightInches.Int32),
			Weight:       int(rec.Weight.Int32),
			Listed:       rec.Position.String,
			AltNames:     altNames[rec.PlayerID],
		}
		g.Players = append(g.Players, player)
		g.players[player.ID] = player
	}
}

func (b *Builder) attachGameLogs(g *Graph, lines []*store.PlayerGameStats) {
	for _, rec := range lines {
		game, ok := g.games[rec.GameID]
		if !ok {
			g.Diagnostics.DroppedGameLogs++
			continue
		}
		player, ok := g.players[rec.PlayerID]
		if !ok {
			g.Diagnostics.DroppedGameLogs++
			continue
		}
		loc, ok := game.SideOf(rec.TeamID)
		if !ok {
			g.Diagnostics.DroppedGameLogs++
			b.logger.Debug().Int("game_id", rec.GameID).Int("team_id", rec.TeamID).Msg("game log team not in game")
			continue
		}
		minutes := parseMinutes(rec.Minutes)
		if minutes <= 0 {
			g.Diagnostics.DidNotPlay++
			continue
		}

		gl := &model.GameLog{
			Game:      game,
			Location:  loc,
			PlayerID:  rec.PlayerID,
			TeamID:    rec.TeamID,
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			Position:  rec.Position.String,
			Minutes:   minutes,
			Points:    rec.Points,
			FGM:       rec.FieldGoalsMade,
			FGA:       rec.FieldGoalsAttempted,
			FTM:       rec.FreeThrowsMade,
			FTA:       rec.FreeThrowsAttempted,
			TPM:       rec.ThreePointersMade,
			TPA:       rec.ThreePointersAttempted,
			OffReb:    rec.OffensiveRebounds,
			DefReb:    rec.DefensiveRebounds,
			Rebounds:  rec.Rebounds,
			Assists:   rec.Assists,
			Fouls:     rec.PersonalFouls,
			Steals:    rec.Steals,
			Turnovers: rec.Turnovers,
			Blocks:    rec.Blocks,
			PlusMinus: int(rec.PlusMinus.Int32),
			Comment:   rec.Comment.String,
		}
		side := game.Side(loc)
		side.Logs = append(side.Logs, gl)
		player.GameLog = append(player.GameLog, gl)
	}
}

func sortGameLogs(g *Graph) {
	for _, p := range g.Players {
		sort.SliceStable(p.GameLog, func(i, j int) bool {
			return p.GameLog[i].Game.Time.Before(p.GameLog[j].Game.Time)
		})
	}
}

func wireSchedules(g *Graph) {
	for _, game := range g.Games {
		for _, loc := range []model.Location{model.Home, model.Away} {
			side := game.Side(loc)
			team, ok := g.teams[side.TeamID]
			if !ok {
				g.Diagnostics.UnknownTeamSides++
				continue
			}
			side.Team = team
			if game.Finished {
				team.Finished = append(team.Finished, game)
				team.Defense.Logs = append(team.Defense.Logs, &model.DefenseLog{Game: game, Location: loc})
			} else {
				team.Scheduled = append(team.Scheduled, game)
			}
		}
	}
}

func assignTeams(g *Graph) {
	for _, p := range g.Players {
		if len(p.GameLog) == 0 {
			continue
		}
		last := p.GameLog[len(p.GameLog)-1]
		if team := last.Side().Team; team != nil {
			p.Team = team
			team.Players = append(team.Players, p)
		}
	}

	for _, team := range g.Teams {
		sort.SliceStable(team.Players, func(i, j int) bool {
			return recentMinutes(team.Players[i]) > recentMinutes(team.Players[j])
		})
	}
}

func recentMinutes(p *model.Player) float64 {
	logs := p.GameLog
	if len(logs) > rosterWindow {
		logs = logs[len(logs)-rosterWindow:]
	}
	if len(logs) == 0 {
		return 0
	}
	var total float64
	for _, gl := range logs {
		total += gl.Minutes
	}
	return total / float64(len(logs))
}

// claimProps matches props on canonical names for the whole league before
// any alias is tried, so an alias can never take a prop that belongs to
// another player's real name.
func (b *Builder) claimProps(g *Graph, props []*store.PlayerProp) {
	pool := newClaimPool(props, func(p *store.PlayerProp) string { return p.PlayerName })

	attach := func(p *model.Player, recs []*store.PlayerProp) {
		for _, rec := range recs {
			p.Props = append(p.Props, &model.Prop{
				EventID:      rec.EventID,
				BookmakerKey: rec.BookmakerKey,
				Bookmaker:    rec.Bookmaker,
				MarketKey:    rec.MarketKey,
				Side:         rec.Side,
				Subject:      rec.PlayerName,
				Line:         rec.Line,
				Price:        rec.Price,
				LastUpdate:   rec.LastUpdate,
			})
		}
	}

	for _, p := range g.Players {
		attach(p, pool.claimAll(p.FullName()))
	}
	for _, p := range g.Players {
		for _, alias := range p.AltNames {
			attach(p, pool.claimAll(alias))
		}
	}

	g.Diagnostics.UnmatchedProps = pool.unclaimed()
	if len(g.Diagnostics.UnmatchedProps) > 0 {
		b.logger.Warn().Strs("names", g.Diagnostics.UnmatchedProps).Msg("props without a player")
	}
}

func (b *Builder) claimInjuries(g *Graph, injuries []*store.InjuryReport) {
	pool := newClaimPool(injuries, func(i *store.InjuryReport) string { return i.PlayerName })

	attach := func(p *model.Player, rec *store.InjuryReport) {
		p.Injury = &model.Injury{Subject: rec.PlayerName, Status: rec.Status, Comment: rec.Comment}
	}

	for _, p := range g.Players {
		if rec, ok := pool.claimFirst(p.FullName()); ok {
			attach(p, rec)
		}
	}
	for _, p := range g.Players {
		for _, alias := range p.AltNames {
			if p.Injury != nil {
				break
			}
			if rec, ok := pool.claimFirst(alias); ok {
				attach(p, rec)
			}
		}
	}

	g.Diagnostics.UnmatchedInjuries = pool.unclaimed()
	if len(g.Diagnostics.UnmatchedInjuries) > 0 {
		b.logger.Warn().Strs("names", g.Diagnostics.UnmatchedInjuries).Msg("injuries without a player")
	}
}

func assignPositions(g *Graph) {
	for _, p := range g.Players {
		seen := make(map[string]bool)
		for _, gl := range p.GameLog {
			if gl.Position == "" {
				continue
			}
			p.Position = gl.Position
			if !seen[gl.Position] {
				seen[gl.Position] = true
				p.AllPositions = append(p.AllPositions, gl.Position)
			}
		}
		if group, ok := model.GroupOf(p.Position); ok {
			p.Group = group
		}
	}
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// parseMinutes accepts "34:12", "34" and "34.2"
func parseMinutes(minutesStr string) float64 {
	if minutesStr == "" || minutesStr == "0" {
		return 0.0
	}

	if strings.Contains(minutesStr, ":") {
		parts := strings.Split(minutesStr, ":")
		mins, _ := strconv.Atoi(parts[0])
		secs := 0
		if len(parts) > 1 {
			secs, _ = strconv.Atoi(parts[1])
		}
		return float64(mins) + (float64(secs) / 60.0)
	}

	f, _ := strconv.ParseFloat(minutesStr, 64)
	return f
}
