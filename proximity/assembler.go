package proximity

import (
	"slices"
	"sort"

	"github.com/nearview/location-insights/entities"
)

// AssembleGroups buckets the combined entity collection into one group per
// distinct category, preserving first-seen category order. Curated entities
// come first in their source order; search-derived entities are sorted
// ascending by distance before bucketing, so every group's items stay
// ascending by distance. Unrecognized categories get their own bucket with
// no classification.
func AssembleGroups(curated, searched []entities.Entity, st Settings) []entities.Group {
	sorted := make([]entities.Entity, len(searched))
	copy(sorted, searched)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DistanceMeters < sorted[j].DistanceMeters
	})

	combined := make([]entities.Entity, 0, len(curated)+len(sorted))
	combined = append(combined, curated...)
	combined = append(combined, sorted...)

	byCategory := make(map[string]int)

	var groups []entities.Group

	for _, e := range combined {
		idx, ok := byCategory[e.Category]
		if !ok {
			cls, err := LookupClassification(e.Category)
			if err != nil {
				cls = ""
			}

			groups = append(groups, entities.Group{
				Category:       e.Category,
				Title:          TitleForCategory(e.Category),
				Classification: cls,
			})

			idx = len(groups) - 1
			byCategory[e.Category] = idx
		}

		groups[idx].Items = append(groups[idx].Items, e)
	}

	for i := range groups {
		groups[i].Active = defaultActive(groups[i].Category, i, st)
	}

	return groups
}

// defaultActive decides a group's visible-by-default flag, evaluated once
// per category in first-seen order with a zero-based index:
//
//  1. an explicit default-active list wins,
//  2. the dense theme activates only the first group,
//  3. otherwise every group is active.
func defaultActive(category string, index int, st Settings) bool {
	if st.HasDefaultActive {
		return slices.Contains(st.DefaultActiveGroups, category)
	}

	if st.Theme == entities.ThemeDense {
		return index == 0
	}

	return true
}
