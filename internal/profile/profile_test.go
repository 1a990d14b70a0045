package profile

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/health-check/internal/types"
)

func TestMatch_DefaultTable(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name string
		vec  types.DimensionVector
		want string
	}{
		{name: "maxed out", vec: types.DimensionVector{Physical: 6, Mental: 11, Social: 8, Intellectual: 8}, want: "thriving_all_rounder"},
		{name: "all zero", vec: types.DimensionVector{}, want: "running_on_empty"},
		{name: "strong body strained mind", vec: types.DimensionVector{Physical: 6, Mental: 4, Social: 3, Intellectual: 3}, want: "active_body"},
		{name: "calm mind", vec: types.DimensionVector{Physical: 3, Mental: 10, Social: 3, Intellectual: 3}, want: "resilient_mind"},
		{name: "social", vec: types.DimensionVector{Physical: 3, Mental: 6, Social: 7, Intellectual: 3}, want: "social_connector"},
		{name: "learner", vec: types.DimensionVector{Physical: 3, Mental: 6, Social: 3, Intellectual: 7}, want: "curious_learner"},
		{name: "middle of the road", vec: types.DimensionVector{Physical: 3, Mental: 6, Social: 4, Intellectual: 4}, want: "balanced_explorer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.vec, table).Name)
		})
	}
}

func TestMatch_FirstMatchWins(t *testing.T) {
	table := Table{
		Profiles: []types.Profile{
			{Name: "first", Predicate: func(v types.DimensionVector) bool { return v.Physical > 0 }},
			{Name: "second", Predicate: func(v types.DimensionVector) bool { return v.Physical > 0 }},
		},
		Default: types.Profile{Name: "default"},
	}

	assert.Equal(t, "first", Match(types.DimensionVector{Physical: 1}, table).Name)
	assert.Equal(t, "default", Match(types.DimensionVector{}, table).Name)
}

func TestMatch_NilAndPanickingPredicates(t *testing.T) {
	table := Table{
		Profiles: []types.Profile{
			{Name: "nil"},
			{Name: "panics", Predicate: func(v types.DimensionVector) bool {
				return 10/v.Social > 1
			}},
		},
		Default: types.Profile{Name: "default"},
	}

	assert.Equal(t, "default", Match(types.DimensionVector{}, table).Name)
	assert.Equal(t, "panics", Match(types.DimensionVector{Social: 2}, table).Name)
}

func TestMatch_TotalOverIntegerVectors(t *testing.T) {
	table := DefaultTable()
	names := map[string]bool{table.Default.Name: true}
	for _, p := range table.Profiles {
		names[p.Name] = true
	}

	rng := rand.New(rand.NewSource(7))
	extremes := []int{math.MinInt, -1, 0, 1, math.MaxInt}
	pick := func() int {
		if rng.Intn(4) == 0 {
			return extremes[rng.Intn(len(extremes))]
		}
		return rng.Intn(30) - 10
	}

	for i := 0; i < 1000; i++ {
		vec := types.DimensionVector{Physical: pick(), Mental: pick(), Social: pick(), Intellectual: pick()}
		first := Match(vec, table)
		second := Match(vec, table)
		assert.True(t, names[first.Name])
		assert.Equal(t, first.Name, second.Name)
	}
}

func TestDefaultTable_IsolatedCopy(t *testing.T) {
	a := DefaultTable()
	a.Profiles[0].Name = "mutated"

	b := DefaultTable()
	assert.Equal(t, "thriving_all_rounder", b.Profiles[0].Name)
}
