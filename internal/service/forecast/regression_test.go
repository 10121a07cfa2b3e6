package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitPerfectLine(t *testing.T) {
	slope, intercept := Fit(Points([]float64{10, 20, 30, 40}))
	assert.InDelta(t, 10, slope, 1e-9)
	assert.InDelta(t, 10, intercept, 1e-9)
}

func TestPredictNext(t *testing.T) {
	tests := []struct {
		name   string
		totals []float64
		want   int64
	}{
		{"no history", nil, 0},
		{"single day predicts itself", []float64{42}, 42},
		{"perfect line", []float64{10, 20, 30, 40}, 50},
		{"flat", []float64{7, 7, 7}, 7},
		{"declining", []float64{30, 20, 10}, 0},
		{"noisy", []float64{10, 14, 12, 18}, 19},
		{"negative trend is not clamped", []float64{10, 0}, -10},
		{"two points", []float64{1, 2}, 3},
		{"half rounds away from zero", []float64{0.5, 0.5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PredictNext(tt.totals))
		})
	}
}

func TestFitSinglePointIsFinite(t *testing.T) {
	slope, intercept := Fit([]Point{{X: 0, Y: 5}})
	assert.Equal(t, 0.0, slope)
	assert.Equal(t, 5.0, intercept)
	assert.False(t, math.IsNaN(slope))
}

