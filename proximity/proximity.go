// Package proximity converts raw per-mode reachability results and
// user-curated location lists into deduplicated, categorized, ordered and
// filtered display groups. It is a pure, synchronous transformation: it
// performs no I/O, keeps no state between calls and never mutates its
// inputs, so concurrent callers need no coordination.
package proximity

import (
	"github.com/nearview/location-insights/entities"
)

// Input bundles everything one engine invocation works on. All fields are
// treated as read-only.
type Input struct {
	Search             *entities.SearchResponse
	PreferredLocations []entities.PreferredLocation
	Listings           []entities.Listing
	Settings           *entities.DisplaySettings

	// IgnoreVisibility makes the engine keep entities and categories that
	// the settings hide. The editor uses it to list hidden POIs.
	IgnoreVisibility bool
}

// Run executes the full pipeline: resolve settings, build entities from all
// sources, assemble category groups and apply the POI reduction filter.
// The result is newly allocated on every call.
func Run(in Input) []entities.Group {
	st := ResolveSettings(in.Settings)
	st.IgnoreVisibility = in.IgnoreVisibility

	var center entities.Coordinates
	if in.Search != nil {
		center = in.Search.CenterOfInterest.Coordinates
	}

	curated := FromPreferredLocations(in.PreferredLocations, center, st)
	curated = append(curated, FromListings(in.Listings, center, st)...)

	searched := BuildFromSearch(in.Search, st)

	groups := AssembleGroups(curated, searched, st)

	return ReduceGroups(groups, st.Filter)
}
