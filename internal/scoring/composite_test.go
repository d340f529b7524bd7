package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/delphi/internal/metrics"
)

func inputs(present [numComponents]bool, value float64) Inputs {
	var in Inputs
	for c, ok := range present {
		if ok {
			in[c] = metrics.Some(value)
		}
	}
	return in
}

func TestCombineConservesWeight(t *testing.T) {
	for mask := 0; mask < 1<<numComponents; mask++ {
		var present [numComponents]bool
		for c := range present {
			present[c] = mask&(1<<c) != 0
		}

		res, ok := DefaultWeights.Combine(inputs(present, 0.6))
		if !present[PlayerAll] {
			assert.False(t, ok, "mask %05b", mask)
			continue
		}
		require.True(t, ok, "mask %05b", mask)

		var sum float64
		for c, w := range res.Weights {
			if !present[c] {
				assert.Zero(t, w)
				assert.Nil(t, res.Components[c])
			}
			sum += w
		}
		assert.InDelta(t, 1, sum, 1e-9, "mask %05b", mask)
		assert.InDelta(t, 60, res.Total, 1e-9, "uniform inputs give the same total")
	}
}

func TestCombineRedistribution(t *testing.T) {
	all := [numComponents]bool{true, true, true, true, true}

	tests := []struct {
		name    string
		missing []Component
		want    [numComponents]float64
	}{
		{"complete", nil, [numComponents]float64{0.4, 0.2, 0.2, 0.1, 0.1}},
		{"no opponent history", []Component{PlayerOpponent}, [numComponents]float64{0.5, 0.3, 0, 0.1, 0.1}},
		{"no location history", []Component{PlayerLocation}, [numComponents]float64{0.5, 0, 0.3, 0.1, 0.1}},
		{"only overall", []Component{PlayerLocation, PlayerOpponent}, [numComponents]float64{0.8, 0, 0, 0.1, 0.1}},
		{"no position", []Component{DefensePosition}, [numComponents]float64{0.4, 0.2, 0.2, 0.2, 0}},
		{"no defense", []Component{DefenseAll, DefensePosition}, [numComponents]float64{0.5, 0.25, 0.25, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			present := all
			for _, c := range tt.missing {
				present[c] = false
			}
			res, ok := DefaultWeights.Combine(inputs(present, 0.5))
			require.True(t, ok)
			for c := range tt.want {
				assert.InDelta(t, tt.want[c], res.Weights[c], 1e-9, Component(c).String())
			}
		})
	}
}

func TestCombineRounding(t *testing.T) {
	in := Inputs{metrics.Some(0.81234), metrics.Some(0.5), metrics.Some(0.25), metrics.Some(0.6), metrics.Some(0.1)}

	res, ok := DefaultWeights.Combine(in)
	require.True(t, ok)

	want := 0.4*0.81234 + 0.2*0.5 + 0.2*0.25 + 0.1*0.6 + 0.1*0.1
	assert.InDelta(t, metrics.Round(want*100, 2), res.Total, 1e-9)
	assert.Equal(t, 81, *res.Components[PlayerAll])
	assert.Equal(t, 25, *res.Components[PlayerOpponent])
}

func TestCombineWithoutPlayerAll(t *testing.T) {
	in := Inputs{{}, metrics.Some(0.9), metrics.Some(0.9), metrics.Some(0.9), metrics.Some(0.9)}
	_, ok := DefaultWeights.Combine(in)
	assert.False(t, ok)
}
