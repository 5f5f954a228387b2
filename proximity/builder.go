package proximity

import (
	"github.com/nearview/location-insights/entities"
)

// BuildFromSearch converts the per-mode reachability results into unique
// entities. An entity appearing in several mode results is merged into one:
// the first mode seen wins the descriptive fields, later modes only add
// their reachability flag. Records without an id are skipped, as are
// entities the settings hide.
//
// The accumulator is insertion-ordered (slice plus id index) and never
// escapes this function.
func BuildFromSearch(resp *entities.SearchResponse, st Settings) []entities.Entity {
	if resp == nil {
		return nil
	}

	byID := make(map[string]int)

	var out []entities.Entity

	for _, mode := range entities.Modes {
		result := resp.Results[mode]
		if result == nil {
			continue
		}

		for i := range result.LocationsOfInterest {
			loc := &result.LocationsOfInterest[i]

			id := loc.Entity.ID
			if id == "" {
				continue
			}

			idx, ok := byID[id]
			if !ok {
				if st.Hidden(id, loc.Entity.Type) {
					continue
				}

				var coords entities.Coordinates
				if loc.Coordinates != nil {
					coords = *loc.Coordinates
				}

				out = append(out, entities.Entity{
					ID:             id,
					Name:           loc.Entity.DisplayName(),
					Category:       loc.Entity.Type,
					DistanceMeters: loc.DistanceMeters,
					Coordinates:    coords,
					Address:        loc.Address,
				})

				idx = len(out) - 1
				byID[id] = idx
			}

			setModeFlag(&out[idx], mode)
		}
	}

	return out
}

func setModeFlag(e *entities.Entity, mode entities.TransportMode) {
	switch mode {
	case entities.ModeWalk:
		e.ByFoot = true
	case entities.ModeBicycle:
		e.ByBicycle = true
	case entities.ModeCar:
		e.ByCar = true
	}
}
