package web_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearview/location-insights/entities"
	"github.com/nearview/location-insights/web"
)

func TestWriteGroupsCSV(t *testing.T) {
	groups := []entities.Group{
		{
			Category:       "restaurant",
			Title:          "Restaurant",
			Active:         true,
			Classification: "gastronomy",
			Items: []entities.Entity{
				{
					ID:             "rest-1",
					Name:           "Trattoria",
					Category:       "restaurant",
					DistanceMeters: 200,
					Coordinates:    entities.Coordinates{Lat: 52.52, Lng: 13.4},
					Address:        "Example Street 1",
					ByFoot:         true,
				},
			},
		},
		{
			Category: "realEstateListing",
			Title:    "Real Estate Listings",
			Active:   true,
			Items: []entities.Entity{
				{
					ID:         "listing-1",
					Name:       "Sunny Apartment",
					Category:   "realEstateListing",
					RealEstate: &entities.RealEstateInfo{ListingType: "condominium"},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, web.WriteGroupsCSV(&buf, groups))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)

	header := records[0]
	assert.Equal(t, "group", header[0])
	assert.Equal(t, "id", header[4])

	assert.Equal(t, "restaurant", records[1][0])
	assert.Equal(t, "rest-1", records[1][4])
	assert.Equal(t, "Trattoria", records[1][5])
	assert.Equal(t, "200.0", records[1][6])
	assert.Equal(t, "true", records[1][10])

	assert.Equal(t, "listing-1", records[2][4])
	assert.Equal(t, "condominium", records[2][13])
}

func TestWriteGroupsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, web.WriteGroupsCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
