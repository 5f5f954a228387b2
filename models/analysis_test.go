package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nearview/location-insights/entities"
	"github.com/nearview/location-insights/models"
)

func validAnalysis() models.Analysis {
	return models.Analysis{
		ID:     "a-1",
		Name:   "Sample Address 1",
		Date:   time.Now().UTC(),
		Status: models.StatusPending,
		Data: models.AnalysisData{
			Listings: []entities.Listing{{ID: "listing-1"}},
		},
	}
}

func TestAnalysisValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Analysis)
		wantErr bool
	}{
		{"valid", func(*models.Analysis) {}, false},
		{"missing id", func(a *models.Analysis) { a.ID = "" }, true},
		{"missing name", func(a *models.Analysis) { a.Name = "" }, true},
		{"missing status", func(a *models.Analysis) { a.Status = "" }, true},
		{"missing date", func(a *models.Analysis) { a.Date = time.Time{} }, true},
		{"no input at all", func(a *models.Analysis) { a.Data = models.AnalysisData{} }, true},
		{
			"invalid mode in search results",
			func(a *models.Analysis) {
				a.Data.Search = &entities.SearchResponse{
					Results: map[entities.TransportMode]*entities.ModeResult{
						"teleport": {},
					},
				}
			},
			true,
		},
		{
			"search input alone is enough",
			func(a *models.Analysis) {
				a.Data = models.AnalysisData{
					Search: &entities.SearchResponse{
						Results: map[entities.TransportMode]*entities.ModeResult{
							entities.ModeWalk: {},
						},
					},
				}
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAnalysis()
			tt.mutate(&a)

			err := a.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
