package models

import (
	"context"
	"errors"
	"time"

	"github.com/nearview/location-insights/entities"
)

// ErrNotFound is returned by repositories when no analysis matches.
var ErrNotFound = errors.New("not found")

const (
	StatusPending = "pending"
	StatusWorking = "working"
	StatusOK      = "ok"
	StatusFailed  = "failed"
)

type SelectParams struct {
	Status string
	Limit  int
}

// AnalysisRepository is implemented by the sqlite and postgres stores.
type AnalysisRepository interface {
	Get(context.Context, string) (Analysis, error)
	Create(context.Context, *Analysis) error
	Delete(context.Context, string) error
	Select(context.Context, SelectParams) ([]Analysis, error)
	Update(context.Context, *Analysis) error
}

// Analysis is one stored proximity analysis: the raw inputs as submitted,
// and the computed display groups once the engine has run.
type Analysis struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Date          time.Time        `json:"date"`
	Status        string           `json:"status"`
	FailureReason string           `json:"failure_reason,omitempty"`
	Data          AnalysisData     `json:"data"`
	Groups        []entities.Group `json:"groups,omitempty"`
}

// AnalysisData bundles everything one engine run consumes.
type AnalysisData struct {
	Search             *entities.SearchResponse     `json:"search,omitempty"`
	PreferredLocations []entities.PreferredLocation `json:"preferred_locations,omitempty"`
	Listings           []entities.Listing           `json:"listings,omitempty"`
	Settings           *entities.DisplaySettings    `json:"settings,omitempty"`
}

func (a *Analysis) Validate() error {
	if a.ID == "" {
		return errors.New("missing id")
	}

	if a.Name == "" {
		return errors.New("missing name")
	}

	if a.Status == "" {
		return errors.New("missing status")
	}

	if a.Date.IsZero() {
		return errors.New("missing date")
	}

	return a.Data.Validate()
}

func (d *AnalysisData) Validate() error {
	if d.Search == nil && len(d.PreferredLocations) == 0 && len(d.Listings) == 0 {
		return errors.New("missing input: need a search response or curated locations")
	}

	if d.Search != nil {
		for mode := range d.Search.Results {
			if !mode.Valid() {
				return errors.New("invalid transport mode: " + string(mode))
			}
		}
	}

	return nil
}
