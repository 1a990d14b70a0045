package profile

import (
	"github.com/jonathan/health-check/internal/types"
)

// Thresholds are calibrated to the built-in four-axis catalog, whose maxima are
// Physical 6, Mental 11, Social 8 and Intellectual 8.
var defaultTable = Table{
	Profiles: []types.Profile{
		{
			Name:           "thriving_all_rounder",
			Description:    "Thriving All-Rounder",
			Detail:         "You score well on body, mind, relationships and learning at the same time.",
			Recommendation: "Keep the routines that work and consider mentoring someone who is building theirs.",
			Predicate: func(v types.DimensionVector) bool {
				return v.Physical >= 5 && v.Mental >= 8 && v.Social >= 6 && v.Intellectual >= 6
			},
		},
		{
			Name:           "running_on_empty",
			Description:    "Running on Empty",
			Detail:         "All four areas are low right now, which usually means energy is going somewhere else.",
			Recommendation: "Pick one small daily habit, such as a short walk or a fixed bedtime, and talk to someone you trust or a professional.",
			Predicate: func(v types.DimensionVector) bool {
				return v.Physical <= 2 && v.Mental <= 3 && v.Social <= 2 && v.Intellectual <= 2
			},
		},
		{
			Name:           "active_body",
			Description:    "Active Body",
			Detail:         "Your physical habits are strong but your mind carries more strain.",
			Recommendation: "Use exercise as a reset and add a short daily wind-down for mental recovery.",
			Predicate: func(v types.DimensionVector) bool {
				return v.Physical >= 5 && v.Mental < 6
			},
		},
		{
			Name:           "resilient_mind",
			Description:    "Resilient Mind",
			Detail:         "You stay calm and purposeful under pressure.",
			Recommendation: "Put that steadiness to work on your body: regular movement and sleep will amplify it.",
			Predicate: func(v types.DimensionVector) bool {
				return v.Mental >= 9
			},
		},
		{
			Name:           "social_connector",
			Description:    "Social Connector",
			Detail:         "Relationships and community are your main source of energy.",
			Recommendation: "Turn social time into active time, for example group walks or team sports.",
			Predicate: func(v types.DimensionVector) bool {
				return v.Social >= 6
			},
		},
		{
			Name:           "curious_learner",
			Description:    "Curious Learner",
			Detail:         "You feed your mind with new ideas and challenges.",
			Recommendation: "Balance study time with movement breaks and time spent with people.",
			Predicate: func(v types.DimensionVector) bool {
				return v.Intellectual >= 6
			},
		},
	},
	Default: types.Profile{
		Name:           "balanced_explorer",
		Description:    "Balanced Explorer",
		Detail:         "No single area stands out; you are building habits across the board.",
		Recommendation: "Choose the area you care about most and set one concrete goal for the next month.",
		Predicate:      func(types.DimensionVector) bool { return true },
	},
}

// DefaultTable returns the built-in profile table. The returned value shares no
// slice storage with the package-level table.
func DefaultTable() Table {
	profiles := make([]types.Profile, len(defaultTable.Profiles))
	copy(profiles, defaultTable.Profiles)
	return Table{Profiles: profiles, Default: defaultTable.Default}
}
