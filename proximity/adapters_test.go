package proximity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearview/location-insights/entities"
	"github.com/nearview/location-insights/proximity"
)

var center = entities.Coordinates{Lat: 52.520008, Lng: 13.404954}

func TestFromPreferredLocations(t *testing.T) {
	locs := []entities.PreferredLocation{
		{Title: "Office", Address: "Workplace Ave 2", Coordinates: &entities.Coordinates{Lat: 52.53, Lng: 13.41}},
		{Title: "No Coordinates"},
		{Title: "Gym", Coordinates: &entities.Coordinates{Lat: 52.51, Lng: 13.39}},
	}

	got := proximity.FromPreferredLocations(locs, center, proximity.ResolveSettings(nil))

	require.Len(t, got, 2)

	for _, e := range got {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, entities.CategoryPreferredLocation, e.Category)
		assert.True(t, e.ByFoot)
		assert.True(t, e.ByBicycle)
		assert.True(t, e.ByCar)
		assert.Greater(t, e.DistanceMeters, 0.0)
	}

	assert.Equal(t, "Office", got[0].Name)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestFromPreferredLocationsSynthesizedIDsAreDeterministic(t *testing.T) {
	locs := []entities.PreferredLocation{
		{Title: "Office", Coordinates: &entities.Coordinates{Lat: 52.53, Lng: 13.41}},
	}

	first := proximity.FromPreferredLocations(locs, center, proximity.ResolveSettings(nil))
	second := proximity.FromPreferredLocations(locs, center, proximity.ResolveSettings(nil))

	require.Len(t, first, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestFromPreferredLocationsHiddenCategory(t *testing.T) {
	locs := []entities.PreferredLocation{
		{Title: "Office", Coordinates: &entities.Coordinates{Lat: 52.53, Lng: 13.41}},
	}

	st := proximity.ResolveSettings(&entities.DisplaySettings{
		HiddenGroups: []string{entities.CategoryPreferredLocation},
	})

	assert.Empty(t, proximity.FromPreferredLocations(locs, center, st))
}

func TestFromListings(t *testing.T) {
	listings := []entities.Listing{
		{
			ID:          "listing-1",
			Name:        "Sunny Apartment",
			Coordinates: &entities.Coordinates{Lat: 52.50, Lng: 13.42},
			Address:     "Hidden Lane 3",
			LocationIndices: map[string]float64{
				"quietness": 0.8,
			},
			Characteristics: map[string]string{
				"rooms": "3",
			},
			CostStructure: map[string]string{
				"price": "420000 EUR",
			},
			Type:        "condominium",
			ExternalURL: "https://listings.example.com/1",
		},
		{ID: "listing-2", Name: "No Coordinates"},
	}

	got := proximity.FromListings(listings, center, proximity.ResolveSettings(nil))

	require.Len(t, got, 1)

	e := got[0]
	assert.Equal(t, "listing-1", e.ID)
	assert.Equal(t, entities.CategoryRealEstateListing, e.Category)
	assert.Equal(t, "Hidden Lane 3", e.Address)
	assert.Equal(t, "https://listings.example.com/1", e.ExternalURL)
	assert.True(t, e.ByFoot && e.ByBicycle && e.ByCar)

	require.NotNil(t, e.RealEstate)
	assert.Equal(t, "condominium", e.RealEstate.ListingType)
	assert.Equal(t, 0.8, e.RealEstate.LocationIndices["quietness"])
	assert.Equal(t, "3", e.RealEstate.Characteristics["rooms"])
	assert.Equal(t, "420000 EUR", e.RealEstate.CostStructure["price"])
}

func TestFromListingsRedactsAddress(t *testing.T) {
	showLocation := false

	listings := []entities.Listing{
		{ID: "listing-1", Name: "Sunny Apartment", Address: "Hidden Lane 3", Coordinates: &entities.Coordinates{Lat: 52.50, Lng: 13.42}},
	}

	st := proximity.ResolveSettings(&entities.DisplaySettings{ShowLocation: &showLocation})

	got := proximity.FromListings(listings, center, st)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Address)
}

func TestFromListingsPerIDVisibility(t *testing.T) {
	listings := []entities.Listing{
		{ID: "listing-1", Coordinates: &entities.Coordinates{Lat: 52.50, Lng: 13.42}},
		{ID: "listing-2", Coordinates: &entities.Coordinates{Lat: 52.51, Lng: 13.43}},
	}

	st := proximity.ResolveSettings(&entities.DisplaySettings{
		EntityVisibility: []entities.EntityVisibility{{ID: "listing-1", Excluded: true}},
	})

	got := proximity.FromListings(listings, center, st)

	require.Len(t, got, 1)
	assert.Equal(t, "listing-2", got[0].ID)
}

func TestFromListingsDoesNotAliasInputMaps(t *testing.T) {
	listings := []entities.Listing{
		{
			ID:              "listing-1",
			Coordinates:     &entities.Coordinates{Lat: 52.50, Lng: 13.42},
			Characteristics: map[string]string{"rooms": "3"},
		},
	}

	got := proximity.FromListings(listings, center, proximity.ResolveSettings(nil))

	require.Len(t, got, 1)

	got[0].RealEstate.Characteristics["rooms"] = "4"

	assert.Equal(t, "3", listings[0].Characteristics["rooms"])
}
