// Package biometrics scores body measurements as an extra Physical factor.
package biometrics

import (
	"fmt"
	"math"

	"github.com/jonathan/health-check/internal/types"
)

// Topic is the fixed topic label of the biometric scored item.
const Topic = "Body Mass Index"

// MaxScore is the maximum score the biometric factor contributes to a category.
const MaxScore = 3

// Healthy BMI bounds used for the ideal weight range.
const (
	idealLow  = 18.5
	idealHigh = 22.9
)

// Result is the outcome of evaluating a set of measurements.
type Result struct {
	Score    int     `json:"score"`
	Label    string  `json:"label"`
	Severity int     `json:"severity"`
	Max      int     `json:"max"`
	BMI      float64 `json:"bmi"`
}

type band struct {
	upper    float64 // exclusive
	name     string
	score    int
	severity int
}

var bands = []band{
	{upper: 18.5, name: "Underweight", score: 1, severity: 2},
	{upper: 23.0, name: "Normal", score: 3, severity: 1},
	{upper: 25.0, name: "Overweight", score: 2, severity: 2},
	{upper: 30.0, name: "Obese class I", score: 1, severity: 3},
	{upper: math.Inf(1), name: "Obese class II", score: 0, severity: 3},
}

// Evaluate computes the BMI band for the given measurements.
// Missing or non-positive weight or height yields a zero-contribution result.
func Evaluate(m types.Measurements) Result {
	if !Complete(m) {
		return Result{Score: 0, Label: "Incomplete data: weight and height are required", Severity: 1, Max: 0}
	}

	heightM := m.HeightCm / 100
	// banded on the displayed one-decimal value so label, BMI and score agree
	bmi := math.Round(m.WeightKg/(heightM*heightM)*10) / 10
	b := bandFor(bmi)

	label := fmt.Sprintf("%s (BMI %.1f)", b.name, bmi)
	if b.name != "Normal" {
		low, high := IdealWeightRange(m.HeightCm)
		label = fmt.Sprintf("%s - ideal weight for your height is %.1f-%.1f kg", label, low, high)
	}

	return Result{
		Score:    b.score,
		Label:    label,
		Severity: b.severity,
		Max:      MaxScore,
		BMI:      bmi,
	}
}

// Complete reports whether m carries a usable weight and height.
func Complete(m types.Measurements) bool {
	return usable(m.WeightKg) && usable(m.HeightCm)
}

func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// IdealWeightRange returns the weight range in kg that keeps BMI within the normal band.
func IdealWeightRange(heightCm float64) (low, high float64) {
	heightM := heightCm / 100
	return idealLow * heightM * heightM, idealHigh * heightM * heightM
}

// Band returns the band name for a BMI value.
func Band(bmi float64) string {
	return bandFor(bmi).name
}

func bandFor(bmi float64) band {
	for _, b := range bands {
		if bmi < b.upper {
			return b
		}
	}
	return bands[len(bands)-1]
}
