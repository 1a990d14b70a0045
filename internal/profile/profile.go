// Package profile selects a holistic profile from a four-axis dimension vector.
package profile

import (
	"github.com/jonathan/health-check/internal/types"
)

// Table is an ordered list of profiles plus the fallback used when nothing matches.
type Table struct {
	Profiles []types.Profile
	Default  types.Profile
}

// Match returns the first profile whose predicate holds for vec, or the table default.
// A nil or panicking predicate counts as not matching, so every vector resolves.
func Match(vec types.DimensionVector, table Table) types.Profile {
	for _, p := range table.Profiles {
		if holds(p.Predicate, vec) {
			return p
		}
	}
	return table.Default
}

func holds(pred func(types.DimensionVector) bool, vec types.DimensionVector) (ok bool) {
	if pred == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return pred(vec)
}
