package web

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/nearview/location-insights/entities"
)

var csvHeaders = []string{
	"group",
	"group_title",
	"group_active",
	"classification",
	"id",
	"name",
	"distance_in_meters",
	"lat",
	"lng",
	"address",
	"by_foot",
	"by_bicycle",
	"by_car",
	"listing_type",
	"external_url",
}

// WriteGroupsCSV writes the assembled groups as flat CSV rows, one row per
// entity, in group order. The exporters downstream rely on the row order
// matching the group/item order of the engine output.
func WriteGroupsCSV(w io.Writer, groups []entities.Group) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeaders); err != nil {
		return err
	}

	for _, g := range groups {
		for i := range g.Items {
			if err := cw.Write(entityToRow(&g, &g.Items[i])); err != nil {
				return err
			}
		}
	}

	cw.Flush()

	return cw.Error()
}

func entityToRow(g *entities.Group, e *entities.Entity) []string {
	listingType := ""
	if e.RealEstate != nil {
		listingType = e.RealEstate.ListingType
	}

	return []string{
		g.Category,
		g.Title,
		strconv.FormatBool(g.Active),
		g.Classification,
		e.ID,
		e.Name,
		strconv.FormatFloat(e.DistanceMeters, 'f', 1, 64),
		strconv.FormatFloat(e.Coordinates.Lat, 'f', 6, 64),
		strconv.FormatFloat(e.Coordinates.Lng, 'f', 6, 64),
		e.Address,
		strconv.FormatBool(e.ByFoot),
		strconv.FormatBool(e.ByBicycle),
		strconv.FormatBool(e.ByCar),
		listingType,
		e.ExternalURL,
	}
}
