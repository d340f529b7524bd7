package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"

	"github.com/fortuna/delphi/internal/analysis"
	"github.com/fortuna/delphi/internal/metrics"
	"github.com/fortuna/delphi/internal/model"
	"github.com/fortuna/delphi/internal/query"
)

const (
	defaultGameLogLimit = 10
	maxGameLogLimit     = 82
)

// Handler serves read-only views of the current analyzer
type Handler struct {
	analyzer atomic.Pointer[analysis.Analyzer]
}

// NewHandler creates a new handler
func NewHandler(a *analysis.Analyzer) *Handler {
	h := &Handler{}
	h.analyzer.Store(a)
	return h
}

// SetAnalyzer replaces the analyzer behind every handler
func (h *Handler) SetAnalyzer(a *analysis.Analyzer) {
	h.analyzer.Store(a)
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	g := h.analyzer.Load().Graph()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "delphi",
		"season":  g.Season,
		"games":   len(g.Games),
		"players": len(g.Players),
	})
}

// GetMarkets lists the configured prop markets
func (h *Handler) GetMarkets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.analyzer.Load().Markets())
}

// GetPropTable returns the ranked prop table for a market on a date
func (h *Handler) GetPropTable(w http.ResponseWriter, r *http.Request) {
	a := h.analyzer.Load()
	market := mux.Vars(r)["market"]

	date := time.Now().In(a.Location())
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := time.ParseInLocation(analysis.DateLayout, s, a.Location())
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
			return
		}
		date = d
	}

	table, err := a.PropTable(date, market)
	if errors.Is(err, analysis.ErrUnknownMarket) {
		respondError(w, http.StatusNotFound, "Unknown market", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build prop table", err)
		return
	}

	respondJSON(w, http.StatusOK, table)
}

type gameLogEntry struct {
	Date     string  `json:"date"`
	Opponent string  `json:"opponent"`
	Location string  `json:"location"`
	Minutes  float64 `json:"minutes"`
	Value    float64 `json:"value"`
}

type gameLogResponse struct {
	PlayerID int            `json:"player_id"`
	Name     string         `json:"name"`
	Team     string         `json:"team,omitempty"`
	Stat     model.StatKey  `json:"stat"`
	Average  float64        `json:"average"`
	Games    []gameLogEntry `json:"games"`
}

// GetPlayerGameLog returns a player's recent values for one stat
func (h *Handler) GetPlayerGameLog(w http.ResponseWriter, r *http.Request) {
	g := h.analyzer.Load().Graph()

	playerID, err := strconv.Atoi(mux.Vars(r)["playerID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}
	player, ok := g.Player(playerID)
	if !ok {
		respondError(w, http.StatusNotFound, "Player not found", nil)
		return
	}

	params := r.URL.Query()

	stat := model.StatPoints
	if s := params.Get("stat"); s != "" {
		key, err := model.ParseStatKey(s)
		if err != nil || !key.Numeric() {
			respondError(w, http.StatusBadRequest, "Invalid stat", err)
			return
		}
		stat = key
	}

	filter := query.Filter{Seasons: []int{g.Season}, Last: defaultGameLogLimit}

	if s := params.Get("location"); s != "" {
		loc := model.Location(strings.ToLower(s))
		if loc != model.Home && loc != model.Away {
			respondError(w, http.StatusBadRequest, "Invalid location, expected home or away", nil)
			return
		}
		filter.Location = loc
	}
	if s := params.Get("opponent"); s != "" {
		opp, ok := g.TeamByCode(strings.ToUpper(s))
		if !ok {
			respondError(w, http.StatusBadRequest, "Unknown opponent", nil)
			return
		}
		filter.Opponents = []int{opp.ID}
	}
	if s := params.Get("last"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= maxGameLogLimit {
			filter.Last = n
		}
	}

	series := query.PlayerStats(player, []model.StatKey{
		model.StatDate, model.StatOpponent, model.StatLocation, model.StatMinutes, stat,
	}, filter)

	dates := series.Texts(model.StatDate)
	opponents := series.Texts(model.StatOpponent)
	locations := series.Texts(model.StatLocation)
	minutes := series.Floats(model.StatMinutes)
	values := series.Floats(stat)

	resp := gameLogResponse{
		PlayerID: player.ID,
		Name:     player.FullName(),
		Stat:     stat,
		Average:  metrics.Round(metrics.Average(values), 1),
		Games:    make([]gameLogEntry, 0, series.Len()),
	}
	if player.Team != nil {
		resp.Team = player.Team.Code
	}
	for i := range values {
		resp.Games = append(resp.Games, gameLogEntry{
			Date:     dates[i],
			Opponent: opponents[i],
			Location: locations[i],
			Minutes:  minutes[i],
			Value:    values[i],
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

type rosterEntry struct {
	*model.Player
	GamesPlayed int `json:"games_played"`
}

// GetTeamRoster returns a team's current players
func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	g := h.analyzer.Load().Graph()

	teamID, err := strconv.Atoi(mux.Vars(r)["teamID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}
	team, ok := g.Team(teamID)
	if !ok {
		respondError(w, http.StatusNotFound, "Team not found", nil)
		return
	}

	filter := query.Filter{Seasons: []int{g.Season}}
	roster := make([]rosterEntry, 0, len(team.Players))
	for _, p := range team.Players {
		roster = append(roster, rosterEntry{Player: p, GamesPlayed: query.PlayerGamesPlayed(p, filter)})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team":    team,
		"players": roster,
	})
}

// GetDefenseRanks returns the league defense rank table for a stat
func (h *Handler) GetDefenseRanks(w http.ResponseWriter, r *http.Request) {
	stat, err := model.ParseStatKey(mux.Vars(r)["stat"])
	if err != nil || !stat.Numeric() {
		respondError(w, http.StatusBadRequest, "Invalid stat", err)
		return
	}

	respondJSON(w, http.StatusOK, h.analyzer.Load().RankTable(stat))
}

// GetDiagnostics reports what the last graph build could not join
func (h *Handler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.analyzer.Load().Graph().Diagnostics)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
