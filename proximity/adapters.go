package proximity

import (
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/nearview/location-insights/entities"
	"github.com/nearview/location-insights/utils"
)

// Namespace for synthesized preferred-location entity ids.
var preferredLocationNS = uuid.MustParse("b1c06237-3c3e-4a3f-9a30-0f1d5cabef7a")

// FromPreferredLocations converts user-entered locations into entities.
// Curated entries carry no identifier, so one is synthesized from the list
// position and content. These ids are NOT stable across edits of the list,
// which is why per-item visibility is unsupported for preferred locations:
// only the category-level check applies. Entries without coordinates are
// skipped.
func FromPreferredLocations(locs []entities.PreferredLocation, center entities.Coordinates, st Settings) []entities.Entity {
	if st.HiddenCategory(entities.CategoryPreferredLocation) {
		return nil
	}

	var out []entities.Entity

	for i, loc := range locs {
		if loc.Coordinates == nil {
			continue
		}

		seed := fmt.Sprintf("%d|%s|%.6f|%.6f", i, loc.Title, loc.Coordinates.Lat, loc.Coordinates.Lng)

		out = append(out, entities.Entity{
			ID:             uuid.NewSHA1(preferredLocationNS, []byte(seed)).String(),
			Name:           loc.Title,
			Category:       entities.CategoryPreferredLocation,
			DistanceMeters: utils.Distance(center.Lat, center.Lng, loc.Coordinates.Lat, loc.Coordinates.Lng),
			Coordinates:    *loc.Coordinates,
			Address:        loc.Address,
			ByFoot:         true,
			ByBicycle:      true,
			ByCar:          true,
		})
	}

	return out
}

// FromListings converts curated real-estate listings into entities.
// Listings have stable ids, so the per-id visibility check applies. The
// address is redacted when the settings say the location must not be shown.
// Listings without coordinates are skipped.
func FromListings(listings []entities.Listing, center entities.Coordinates, st Settings) []entities.Entity {
	var out []entities.Entity

	for i := range listings {
		l := &listings[i]

		if l.Coordinates == nil {
			continue
		}

		if st.Hidden(l.ID, entities.CategoryRealEstateListing) {
			continue
		}

		address := l.Address
		if !st.ShowLocation {
			address = ""
		}

		out = append(out, entities.Entity{
			ID:             l.ID,
			Name:           l.Name,
			Category:       entities.CategoryRealEstateListing,
			DistanceMeters: utils.Distance(center.Lat, center.Lng, l.Coordinates.Lat, l.Coordinates.Lng),
			Coordinates:    *l.Coordinates,
			Address:        address,
			ByFoot:         true,
			ByBicycle:      true,
			ByCar:          true,
			RealEstate: &entities.RealEstateInfo{
				LocationIndices: maps.Clone(l.LocationIndices),
				Characteristics: maps.Clone(l.Characteristics),
				CostStructure:   maps.Clone(l.CostStructure),
				ListingType:     l.Type,
			},
			ExternalURL: l.ExternalURL,
		})
	}

	return out
}
