package proximity

import (
	"github.com/nearview/location-insights/entities"
)

// FilterByModes restricts every group's items to those reachable by at
// least one of the active transport modes. It composes after ReduceGroups
// and runs independently of it, whenever the UI toggles a mode. Groups are
// never dropped, even when they become empty; downstream renderers decide
// whether to omit empty groups.
func FilterByModes(groups []entities.Group, active []entities.TransportMode) []entities.Group {
	out := make([]entities.Group, 0, len(groups))

	for _, g := range groups {
		filtered := g
		filtered.Items = make([]entities.Entity, 0, len(g.Items))

		for _, item := range g.Items {
			if reachableByAny(&item, active) {
				filtered.Items = append(filtered.Items, item)
			}
		}

		out = append(out, filtered)
	}

	return out
}

func reachableByAny(e *entities.Entity, active []entities.TransportMode) bool {
	for _, m := range active {
		if e.ReachableBy(m) {
			return true
		}
	}

	return false
}
