package biometrics

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/health-check/internal/types"
)

func TestEvaluate_Normal(t *testing.T) {
	r := Evaluate(types.Measurements{WeightKg: 70, HeightCm: 175})

	assert.Equal(t, 3, r.Score)
	assert.Equal(t, 1, r.Severity)
	assert.Equal(t, MaxScore, r.Max)
	assert.InDelta(t, 22.9, r.BMI, 0.01)
	assert.Contains(t, r.Label, "Normal")
	assert.Contains(t, r.Label, "22.9")
	assert.NotContains(t, r.Label, "ideal weight")
}

func TestEvaluate_Underweight(t *testing.T) {
	r := Evaluate(types.Measurements{WeightKg: 50, HeightCm: 175})

	assert.Equal(t, 1, r.Score)
	assert.Equal(t, 2, r.Severity)
	assert.InDelta(t, 16.3, r.BMI, 0.01)
	assert.Contains(t, r.Label, "Underweight")
	assert.Contains(t, r.Label, "56.7-70.1 kg")
}

func TestEvaluate_Bands(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		band     string
		score    int
		severity int
	}{
		{name: "overweight", weight: 74, height: 175, band: "Overweight", score: 2, severity: 2},
		{name: "obese class I", weight: 85, height: 175, band: "Obese class I", score: 1, severity: 3},
		{name: "obese class II", weight: 100, height: 175, band: "Obese class II", score: 0, severity: 3},
		{name: "lower normal edge", weight: 18.5, height: 100, band: "Normal", score: 3, severity: 1},
		{name: "just below 30", weight: 29.94, height: 100, band: "Obese class I", score: 1, severity: 3},
		{name: "exactly 30", weight: 30, height: 100, band: "Obese class II", score: 0, severity: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate(types.Measurements{WeightKg: tt.weight, HeightCm: tt.height})
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, tt.severity, r.Severity)
			assert.Contains(t, r.Label, tt.band)
			assert.Equal(t, MaxScore, r.Max)
		})
	}
}

func TestEvaluate_RoundsBeforeBanding(t *testing.T) {
	// height 100 cm makes BMI equal to weight
	tests := []struct {
		weight float64
		bmi    float64
		band   string
		score  int
	}{
		{weight: 18.44, bmi: 18.4, band: "Underweight", score: 1},
		{weight: 18.47, bmi: 18.5, band: "Normal", score: 3},
		{weight: 22.94, bmi: 22.9, band: "Normal", score: 3},
		{weight: 22.96, bmi: 23.0, band: "Overweight", score: 2},
		{weight: 24.96, bmi: 25.0, band: "Obese class I", score: 1},
		{weight: 29.96, bmi: 30.0, band: "Obese class II", score: 0},
	}

	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			r := Evaluate(types.Measurements{WeightKg: tt.weight, HeightCm: 100})
			assert.InDelta(t, tt.bmi, r.BMI, 1e-9)
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, tt.band, Band(r.BMI))
			assert.True(t, strings.HasPrefix(r.Label, tt.band+" (BMI "), r.Label)
		})
	}

	// 70.345 kg at 175 cm shows as 23.0 and must be scored as Overweight
	r := Evaluate(types.Measurements{WeightKg: 70.345, HeightCm: 175})
	assert.InDelta(t, 23.0, r.BMI, 1e-9)
	assert.Equal(t, 2, r.Score)
	assert.Contains(t, r.Label, "Overweight (BMI 23.0)")
}

func TestEvaluate_IncompleteData(t *testing.T) {
	inputs := []types.Measurements{
		{},
		{WeightKg: 70},
		{HeightCm: 175},
		{WeightKg: -1, HeightCm: 175},
		{WeightKg: 70, HeightCm: 0},
		{WeightKg: math.NaN(), HeightCm: 175},
		{WeightKg: 70, HeightCm: math.Inf(1)},
	}

	for _, m := range inputs {
		r := Evaluate(m)
		assert.Equal(t, 0, r.Score)
		assert.Equal(t, 1, r.Severity)
		assert.Equal(t, 0, r.Max)
		assert.Contains(t, r.Label, "Incomplete data")
	}
}

func TestIdealWeightRange(t *testing.T) {
	low, high := IdealWeightRange(175)
	assert.InDelta(t, 56.66, low, 0.01)
	assert.InDelta(t, 70.13, high, 0.01)
}

func TestBand(t *testing.T) {
	assert.Equal(t, "Underweight", Band(18.4))
	assert.Equal(t, "Normal", Band(18.5))
	assert.Equal(t, "Normal", Band(22.95))
	assert.Equal(t, "Overweight", Band(23))
	assert.Equal(t, "Obese class II", Band(45))
}
