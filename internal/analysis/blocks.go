package analysis

import (
	"fmt"
	"sort"

	"github.com/fortuna/delphi/internal/metrics"
	"github.com/fortuna/delphi/internal/model"
	"github.com/fortuna/delphi/internal/query"
	"github.com/fortuna/delphi/internal/ranking"
)

const whenLayout = "Monday, January 2 @ 3:04PM"

func playerInfo(p *model.Player) PlayerInfo {
	pos := p.Position
	if pos == "" {
		pos = p.Listed
	}
	team := ""
	if p.Team != nil {
		team = p.Team.Code
	}
	return PlayerInfo{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Team:       team,
		Attributes: fmt.Sprintf("%s ● %s ● #%s", pos, team, p.Jersey),
	}
}

func (a *Analyzer) matchup(game *model.Game, loc model.Location) Matchup {
	display := "at " + game.Home.Code
	if loc == model.Home {
		display = "vs " + game.Away.Code
	}
	return Matchup{
		Display: display,
		When:    game.Time.In(a.settings.Location).Format(whenLayout),
	}
}

func (a *Analyzer) injuryBlock(team *model.Team) InjuryBlock {
	block := InjuryBlock{Team: team.Code, Entries: make([]InjuryEntry, 0, a.settings.InjuryRows)}
	for _, p := range team.Players {
		if len(block.Entries) == a.settings.InjuryRows {
			break
		}
		if p.Injury == nil {
			continue
		}
		block.Entries = append(block.Entries, InjuryEntry{Position: p.Position, Name: p.ShortName(), Tag: p.Injury.Tag()})
	}
	for len(block.Entries) < a.settings.InjuryRows {
		block.Entries = append(block.Entries, InjuryEntry{})
	}
	return block
}

// propInfo picks the consensus line: the most offered line across both
// sides, the first seen on a tie. Books keep first-seen order.
func (a *Analyzer) propInfo(market Market, props []*model.Prop) PropInfo {
	info := PropInfo{Market: market.Name}

	counts := make(map[float64]int)
	var lines []float64
	books := make(map[string]*BookLine)
	var order []string

	for _, prop := range props {
		if counts[prop.Line] == 0 {
			lines = append(lines, prop.Line)
		}
		counts[prop.Line]++

		book, ok := books[prop.BookmakerKey]
		if !ok {
			book = &BookLine{Book: prop.Bookmaker}
			books[prop.BookmakerKey] = book
			order = append(order, prop.BookmakerKey)
		}
		line, price := prop.Line, prop.Price
		if book.Line == nil {
			book.Line = &line
		}
		switch {
		case prop.IsOver():
			book.Over = &price
		case prop.IsUnder():
			book.Under = &price
		}
	}

	best := 0
	for _, l := range lines {
		if counts[l] > best {
			best = counts[l]
			info.Consensus = l
		}
	}

	for _, key := range order {
		if len(info.Books) == a.settings.Bookmakers {
			break
		}
		info.Books = append(info.Books, *books[key])
	}
	for len(info.Books) < a.settings.Bookmakers {
		info.Books = append(info.Books, BookLine{})
	}
	return info
}

func (a *Analyzer) averages(p *model.Player, loc model.Location, opp *model.Team, stat model.StatKey) Averages {
	season := []int{a.graph.Season}
	keys := []model.StatKey{stat}

	all := query.PlayerStats(p, keys, query.Filter{}).Floats(stat)
	atLoc := query.PlayerStats(p, keys, query.Filter{Location: loc}).Floats(stat)
	vsOpp := query.PlayerStats(p, keys, query.Filter{Opponents: []int{opp.ID}}).Floats(stat)

	return Averages{
		All:      windowAverages(all, 5, 10, 20, query.PlayerGamesPlayed(p, query.Filter{Seasons: season})),
		Location: windowAverages(atLoc, 5, 10, 20, query.PlayerGamesPlayed(p, query.Filter{Seasons: season, Location: loc})),
		Opponent: windowAverages(vsOpp, 3, 6, 9, len(vsOpp)),
	}
}

func windowAverages(values []float64, sizes ...int) []*float64 {
	out := make([]*float64, len(sizes))
	for i, n := range sizes {
		if n == 0 || len(values) < n {
			continue
		}
		avg := metrics.Round(metrics.Average(metrics.Tail(values, n)), 1)
		out[i] = &avg
	}
	return out
}

func (a *Analyzer) defenseBlock(p *model.Player, opp *model.Team, stat model.StatKey, ranks *ranking.Table) DefenseBlock {
	cells := func(group model.Group) []RankCell {
		row, ok := ranks.Row(opp.ID, group)
		if !ok {
			return nil
		}
		out := make([]RankCell, len(row))
		for i, r := range row {
			out[i] = RankCell{Value: r.Value, Rank: Ordinal(r.Rank)}
		}
		return out
	}

	block := DefenseBlock{All: cells(model.GroupAll)}
	if p.Group != "" {
		block.Position = cells(p.Group)
	}
	if block.Position == nil {
		block.Position = make([]RankCell, len(ranks.Windows))
	}
	block.Recent = a.recentVs(p, opp, stat)
	return block
}

// recentVs lists, newest game first, the opponent's recent defensive games
// with the best stat lines it allowed to players in p's group. A player
// without a group is compared against everyone.
func (a *Analyzer) recentVs(p *model.Player, opp *model.Team, stat model.StatKey) []RecentGame {
	group := p.Group
	if group == "" {
		group = model.GroupAll
	}
	n := a.settings.RecentPlayers
	f := query.Filter{Last: a.settings.RecentGames}
	defense := query.DefenseLogs(opp, f)
	games := query.DefenseIndividual(opp, group, f)

	out := make([]RecentGame, 0, a.settings.RecentGames)
	for i := len(games) - 1; i >= 0; i-- {
		logs := append([]*model.GameLog(nil), games[i]...)
		sort.SliceStable(logs, func(x, y int) bool { return logs[x].Stat(stat) > logs[y].Stat(stat) })
		if len(logs) > n {
			logs = logs[:n]
		}

		game := RecentGame{Matchup: defenseMatchup(defense[i]), Players: make([]RecentEntry, 0, n)}
		for _, gl := range logs {
			game.Players = append(game.Players, RecentEntry{
				Position: gl.Position,
				Name:     logName(gl),
				Stat:     gl.Stat(stat),
			})
		}
		for len(game.Players) < n {
			game.Players = append(game.Players, RecentEntry{})
		}
		out = append(out, game)
	}
	for len(out) < a.settings.RecentGames {
		out = append(out, RecentGame{Players: make([]RecentEntry, n)})
	}
	return out
}

// defenseMatchup reads a defensive game from the attacking side: "vs LAL"
// when the defense was away
func defenseMatchup(dl *model.DefenseLog) string {
	prefix := "at "
	if dl.Location == model.Away {
		prefix = "vs "
	}
	return prefix + dl.Game.Side(dl.Location).Code + " " + dl.Game.Time.Format(model.DateLayout)
}

func logName(gl *model.GameLog) string {
	if gl.FirstName == "" {
		return gl.LastName
	}
	return gl.FirstName[:1] + ". " + gl.LastName
}

// seriesBlock charts the player's recent games against the line
func (a *Analyzer) seriesBlock(p *model.Player, loc model.Location, opp *model.Team, stat model.StatKey, line float64) SeriesBlock {
	return SeriesBlock{
		All:      chartSeries(p, stat, line, query.Filter{Last: 20}, 20),
		Location: chartSeries(p, stat, line, query.Filter{Location: loc, Last: 20}, 20),
		Opponent: chartSeries(p, stat, line, query.Filter{Opponents: []int{opp.ID}, Last: 10}, 10),
	}
}

// chartSeries returns up to n games oldest first, padded with empty points.
// A value equal to the line is neither over nor under.
func chartSeries(p *model.Player, stat model.StatKey, line float64, f query.Filter, n int) []SeriesPoint {
	s := query.PlayerStats(p, []model.StatKey{model.StatMinutes, stat, model.StatDate}, f)
	minutes, values, dates := s.Floats(model.StatMinutes), s.Floats(stat), s.Texts(model.StatDate)

	out := make([]SeriesPoint, 0, n)
	for i, gl := range s.Logs {
		v := values[i]
		pt := SeriesPoint{
			Minutes: metrics.Round(minutes[i], 1),
			Value:   &v,
			Matchup: gl.Matchup() + " " + dates[i],
		}
		switch {
		case v > line:
			pt.Over = &v
		case v < line:
			pt.Under = &v
		}
		out = append(out, pt)
	}
	for len(out) < n {
		out = append(out, SeriesPoint{})
	}
	return out
}

// similarInjured orders injured teammates by likeness: same position, then
// same group, then the rest, each in roster order
func similarInjured(p *model.Player, n int) []*model.Player {
	if p.Team == nil || n <= 0 {
		return nil
	}
	var same, group, rest []*model.Player
	for _, mate := range p.Team.Players {
		if mate == p || mate.Injury == nil {
			continue
		}
		switch {
		case mate.Position != "" && mate.Position == p.Position:
			same = append(same, mate)
		case mate.Group != "" && mate.Group == p.Group:
			group = append(group, mate)
		default:
			rest = append(rest, mate)
		}
	}
	out := append(append(same, group...), rest...)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (a *Analyzer) withoutBlocks(p *model.Player, stat model.StatKey) []WithoutBlock {
	var blocks []WithoutBlock
	for _, mate := range similarInjured(p, a.settings.WithoutTeammates) {
		s := query.PlayerStats(p, []model.StatKey{model.StatMinutes, stat, model.StatDate},
			query.Filter{WithoutPlayers: []int{mate.ID}, Last: a.settings.WithoutGames})

		block := WithoutBlock{Teammate: mate.ShortName(), Games: make([]WithoutGame, 0, a.settings.WithoutGames)}
		minutes, values, dates := s.Floats(model.StatMinutes), s.Floats(stat), s.Texts(model.StatDate)
		for i := len(s.Logs) - 1; i >= 0; i-- {
			block.Games = append(block.Games, WithoutGame{
				Minutes: metrics.Round(minutes[i], 1),
				Stat:    values[i],
				Game:    s.Logs[i].Matchup() + " " + dates[i],
			})
		}
		for len(block.Games) < a.settings.WithoutGames {
			block.Games = append(block.Games, WithoutGame{})
		}
		blocks = append(blocks, block)
	}
	for len(blocks) < a.settings.WithoutTeammates {
		blocks = append(blocks, WithoutBlock{Games: make([]WithoutGame, a.settings.WithoutGames)})
	}
	return blocks
}
