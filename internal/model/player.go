package model

import (
	"fmt"
	"strings"
	"time"
)

// Player is a rostered or formerly rostered player
type Player struct {
	ID           int      `json:"id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Jersey       string   `json:"jersey,omitempty"`
	HeightInches int      `json:"height_inches,omitempty"`
	Weight       int      `json:"weight,omitempty"`
	Listed       string   `json:"listed_position,omitempty"`
	AltNames     []string `json:"alt_names,omitempty"`

	Position     string   `json:"position,omitempty"`
	AllPositions []string `json:"all_positions,omitempty"`
	Group        Group    `json:"group,omitempty"`

	Team    *Team      `json:"-"`
	GameLog []*GameLog `json:"-"`
	Props   []*Prop    `json:"-"`
	Injury  *Injury    `json:"injury,omitempty"`
}

// FullName is the canonical name sportsbooks and injury reports are matched on
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// ShortName renders "L. James"
func (p *Player) ShortName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return fmt.Sprintf("%s. %s", p.FirstName[:1], p.LastName)
}

// Names returns the canonical name followed by the aliases
func (p *Player) Names() []string {
	return append([]string{p.FullName()}, p.AltNames...)
}

// PropsFor returns the player's props in one market
func (p *Player) PropsFor(marketKey string) []*Prop {
	var props []*Prop
	for _, prop := range p.Props {
		if prop.MarketKey == marketKey {
			props = append(props, prop)
		}
	}
	return props
}

// Injured reports whether the player is on the injury report
func (p *Player) Injured() bool {
	return p.Injury != nil
}

// Prop is one bookmaker outcome for a player market
type Prop struct {
	EventID      string    `json:"event_id"`
	BookmakerKey string    `json:"bookmaker_key"`
	Bookmaker    string    `json:"bookmaker"`
	MarketKey    string    `json:"market_key"`
	Side         string    `json:"side"`
	Subject      string    `json:"player_name"`
	Line         float64   `json:"line"`
	Price        float64   `json:"price"`
	LastUpdate   time.Time `json:"last_update"`
}

// IsOver reports whether the outcome is the over side of the line
func (p *Prop) IsOver() bool {
	return p.Side == "Over" || p.Side == "Yes"
}

// IsUnder reports whether the outcome is the under side of the line
func (p *Prop) IsUnder() bool {
	return p.Side == "Under" || p.Side == "No"
}

// Injury is one row of the injury report
type Injury struct {
	Subject string `json:"name"`
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
}

// Tag abbreviates the status for display
func (i *Injury) Tag() string {
	switch strings.ToLower(i.Status) {
	case "out":
		return "OUT"
	case "day-to-day":
		return "GTD"
	}
	return ""
}
