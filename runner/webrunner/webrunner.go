// Package webrunner serves the analysis API backed by a local SQLite store
// and computes pending analyses in the background.
package webrunner

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nearview/location-insights/models"
	"github.com/nearview/location-insights/runner"
	"github.com/nearview/location-insights/tlmt"
	"github.com/nearview/location-insights/web"
	"github.com/nearview/location-insights/web/sqlite"
)

type webrunner struct {
	srv    *web.Server
	svc    *web.Service
	cfg    *runner.Config
	logger *zap.Logger
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.DataFolder == "" {
		return nil, fmt.Errorf("data folder is required")
	}

	if err := os.MkdirAll(cfg.DataFolder, os.ModePerm); err != nil {
		return nil, err
	}

	const dbfname = "analyses.db"

	dbpath := filepath.Join(cfg.DataFolder, dbfname)

	repo, err := sqlite.New(dbpath)
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	svc := web.NewService(repo, logger)

	srv, err := web.New(svc, cfg.Addr, log.New(os.Stderr, "web ", log.LstdFlags))
	if err != nil {
		return nil, err
	}

	ans := webrunner{
		srv:    srv,
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}

	return &ans, nil
}

func (w *webrunner) Run(ctx context.Context) error {
	egroup, ctx := errgroup.WithContext(ctx)

	egroup.Go(func() error {
		return w.work(ctx)
	})

	egroup.Go(func() error {
		return w.srv.Start(ctx)
	})

	return egroup.Wait()
}

func (w *webrunner) Close(context.Context) error {
	_ = w.logger.Sync()

	return nil
}

// work polls for pending analyses and runs the engine on them, one at a
// time. Engine runs are fast (well under a second for realistic inputs), so
// a short poll interval is plenty.
func (w *webrunner) work(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pending, err := w.svc.SelectPending(ctx)
			if err != nil {
				return err
			}

			for _, analysis := range pending {
				if err := w.compute(ctx, analysis); err != nil {
					w.logger.Error("analysis failed",
						zap.String("analysis_id", analysis.ID), zap.Error(err))
				}
			}
		}
	}
}

func (w *webrunner) compute(ctx context.Context, analysis models.Analysis) (err error) {
	t0 := time.Now().UTC()

	defer func() {
		params := map[string]any{
			"duration": time.Now().UTC().Sub(t0).String(),
		}

		if err != nil {
			params["error"] = err.Error()
		}

		evt := tlmt.NewEvent("web_runner", params)

		_ = runner.Telemetry().Send(ctx, evt)
	}()

	return w.svc.Compute(ctx, analysis.ID)
}
