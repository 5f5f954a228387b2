package proximity

import (
	"slices"

	"github.com/nearview/location-insights/entities"
)

type reduceFunc func(items []entities.Entity, value float64) []entities.Entity

// Dispatch table keyed by filter kind. Each arm is a small pure function.
var reducers = map[string]reduceFunc{
	entities.PoiFilterByAmount:   reduceByAmount,
	entities.PoiFilterByDistance: reduceByDistance,
}

// ReduceGroups applies the optional POI reduction filter to every group
// uniformly, curated and search-derived alike. Groups whose retained item
// list becomes empty are dropped. Item order is never changed. A filter of
// kind "none" (or an unknown kind) returns the groups unchanged.
func ReduceGroups(groups []entities.Group, filter entities.PoiFilter) []entities.Group {
	reduce, ok := reducers[filter.Type]
	if !ok {
		return groups
	}

	out := make([]entities.Group, 0, len(groups))

	for _, g := range groups {
		items := reduce(g.Items, filter.Value)
		if len(items) == 0 {
			continue
		}

		g.Items = items
		out = append(out, g)
	}

	return out
}

// reduceByAmount keeps the first n items. Items are already ascending by
// distance, so this keeps the n nearest.
func reduceByAmount(items []entities.Entity, value float64) []entities.Entity {
	n := int(value)
	if n < 0 {
		n = 0
	}

	if n > len(items) {
		n = len(items)
	}

	return slices.Clone(items[:n])
}

// reduceByDistance keeps the items within the threshold in meters.
func reduceByDistance(items []entities.Entity, value float64) []entities.Entity {
	var out []entities.Entity

	for _, item := range items {
		if item.DistanceMeters <= value {
			out = append(out, item)
		}
	}

	return out
}
