package web

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nearview/location-insights/entities"
	"github.com/nearview/location-insights/models"
	"github.com/nearview/location-insights/proximity"
)

// Service runs the business operations behind the HTTP handlers and the
// worker loop. The engine itself is pure; the service adds persistence and
// lifecycle around it.
type Service struct {
	repo   models.AnalysisRepository
	logger *zap.Logger
}

func NewService(repo models.AnalysisRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, analysis *models.Analysis) error {
	if err := analysis.Validate(); err != nil {
		return err
	}

	return s.repo.Create(ctx, analysis)
}

func (s *Service) All(ctx context.Context) ([]models.Analysis, error) {
	return s.repo.Select(ctx, models.SelectParams{})
}

func (s *Service) Get(ctx context.Context, id string) (models.Analysis, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) SelectPending(ctx context.Context) ([]models.Analysis, error) {
	return s.repo.Select(ctx, models.SelectParams{Status: models.StatusPending, Limit: 1})
}

// Compute runs the proximity engine for a stored analysis and persists the
// resulting groups. The engine never fails on malformed records, so a
// failure here is a storage failure.
func (s *Service) Compute(ctx context.Context, id string) error {
	analysis, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	analysis.Status = models.StatusWorking
	if err := s.repo.Update(ctx, &analysis); err != nil {
		return err
	}

	groups := proximity.Run(proximity.Input{
		Search:             analysis.Data.Search,
		PreferredLocations: analysis.Data.PreferredLocations,
		Listings:           analysis.Data.Listings,
		Settings:           analysis.Data.Settings,
	})

	analysis.Groups = groups
	analysis.Status = models.StatusOK

	if err := s.repo.Update(ctx, &analysis); err != nil {
		analysis.Status = models.StatusFailed
		analysis.FailureReason = err.Error()

		if uerr := s.repo.Update(ctx, &analysis); uerr != nil {
			s.logger.Error("failed to mark analysis as failed",
				zap.String("analysis_id", id), zap.Error(uerr))
		}

		return fmt.Errorf("failed to store groups for analysis %s: %w", id, err)
	}

	s.logger.Info("analysis computed",
		zap.String("analysis_id", id),
		zap.Int("groups", len(groups)))

	return nil
}

// Groups returns the computed groups of an analysis, optionally restricted
// to the given active transport modes. Mode filtering happens on the fly so
// UI toggles never require a recompute.
func (s *Service) Groups(ctx context.Context, id string, modes []entities.TransportMode) ([]entities.Group, error) {
	analysis, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if analysis.Status != models.StatusOK {
		return nil, ErrNotReady
	}

	if len(modes) == 0 {
		return analysis.Groups, nil
	}

	return proximity.FilterByModes(analysis.Groups, modes), nil
}

// UpdateSettings replaces an analysis' display settings and schedules a
// recompute. The previous groups stay readable until the worker catches up.
func (s *Service) UpdateSettings(ctx context.Context, id string, settings *entities.DisplaySettings) error {
	analysis, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	analysis.Data.Settings = settings
	analysis.Status = models.StatusPending

	return s.repo.Update(ctx, &analysis)
}
