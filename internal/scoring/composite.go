// Package scoring blends player and defense metrics into one composite.
package scoring

import (
	"math"

	"github.com/fortuna/delphi/internal/metrics"
)

// Component indexes the five inputs of a composite
type Component int

const (
	PlayerAll Component = iota
	PlayerLocation
	PlayerOpponent
	DefenseAll
	DefensePosition
	numComponents
)

var componentNames = [numComponents]string{"player_all", "player_location", "player_opponent", "defense_all", "defense_position"}

func (c Component) String() string {
	return componentNames[c]
}

// Inputs are the five optional scores for one row
type Inputs [numComponents]metrics.Score

// Weights are the base shares of each component
type Weights struct {
	PlayerAll       float64 `yaml:"player_all" json:"player_all"`
	PlayerLocation  float64 `yaml:"player_location" json:"player_location"`
	PlayerOpponent  float64 `yaml:"player_opponent" json:"player_opponent"`
	DefenseAll      float64 `yaml:"defense_all" json:"defense_all"`
	DefensePosition float64 `yaml:"defense_position" json:"defense_position"`

	// split of the player share when one player context is missing
	FallbackAll   float64 `yaml:"fallback_all" json:"fallback_all"`
	FallbackOther float64 `yaml:"fallback_other" json:"fallback_other"`
}

// DefaultWeights: player contexts 0.4/0.2/0.2, defenses 0.1/0.1. With one
// player context missing the player share splits 0.5/0.3.
var DefaultWeights = Weights{
	PlayerAll:       0.4,
	PlayerLocation:  0.2,
	PlayerOpponent:  0.2,
	DefenseAll:      0.1,
	DefensePosition: 0.1,
	FallbackAll:     0.5,
	FallbackOther:   0.3,
}

// Result is a composite with its per-component breakdown
type Result struct {
	Total      float64                `json:"total"`
	Components [numComponents]*int    `json:"components"`
	Weights    [numComponents]float64 `json:"weights"`
}

// Combine redistributes the weight of missing components and renormalizes
// so the weights of present components sum to 1. A missing player-all score
// means there is no composite.
func (w Weights) Combine(in Inputs) (Result, bool) {
	if !in[PlayerAll].Valid {
		return Result{}, false
	}

	var weights [numComponents]float64
	weights[DefenseAll] = w.DefenseAll
	weights[DefensePosition] = w.DefensePosition

	hasLoc, hasOpp := in[PlayerLocation].Valid, in[PlayerOpponent].Valid
	playerShare := w.PlayerAll + w.PlayerLocation + w.PlayerOpponent
	switch {
	case hasLoc && hasOpp:
		weights[PlayerAll] = w.PlayerAll
		weights[PlayerLocation] = w.PlayerLocation
		weights[PlayerOpponent] = w.PlayerOpponent
	case hasLoc:
		weights[PlayerAll] = w.FallbackAll
		weights[PlayerLocation] = w.FallbackOther
	case hasOpp:
		weights[PlayerAll] = w.FallbackAll
		weights[PlayerOpponent] = w.FallbackOther
	default:
		weights[PlayerAll] = playerShare
	}

	if !in[DefensePosition].Valid {
		weights[DefenseAll] += weights[DefensePosition]
		weights[DefensePosition] = 0
	}
	if !in[DefenseAll].Valid {
		weights[DefenseAll] = 0
	}

	var sum float64
	for c := range weights {
		if !in[c].Valid {
			weights[c] = 0
		}
		sum += weights[c]
	}
	if sum == 0 {
		return Result{}, false
	}

	var res Result
	var total float64
	for c := range weights {
		weights[c] /= sum
		if in[c].Valid {
			total += in[c].Value * weights[c]
			pct := int(math.Round(in[c].Value * 100))
			res.Components[c] = &pct
		}
	}
	res.Weights = weights
	res.Total = metrics.Round(total*100, 2)
	return res, true
}
