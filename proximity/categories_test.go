package proximity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearview/location-insights/proximity"
)

func TestLookupClassification(t *testing.T) {
	cls, err := proximity.LookupClassification("school")
	require.NoError(t, err)
	assert.Equal(t, proximity.ClassEducation, cls)

	cls, err = proximity.LookupClassification("preferredLocation")
	require.NoError(t, err)
	assert.Equal(t, proximity.ClassCurated, cls)

	_, err = proximity.LookupClassification("heliport")
	assert.ErrorIs(t, err, proximity.ErrUnknownCategory)
}

func TestTitleForCategory(t *testing.T) {
	tests := []struct {
		category string
		expected string
	}{
		{"preferredLocation", "Preferred Locations"},
		{"realEstateListing", "Real Estate Listings"},
		{"atm", "ATM"},
		{"busStop", "Bus Stop"},
		{"restaurant", "Restaurant"},
		{"shoppingCenter", "Shopping Center"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.expected, proximity.TitleForCategory(tt.category))
		})
	}
}
