// Package databaserunner serves the analysis API backed by PostgreSQL, for
// deployments where several instances share one database.
package databaserunner

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nearview/location-insights/postgres"
	"github.com/nearview/location-insights/runner"
	"github.com/nearview/location-insights/web"
)

type dbrunner struct {
	cfg    *runner.Config
	db     *sql.DB
	srv    *web.Server
	svc    *web.Service
	logger *zap.Logger
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.Dsn == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	db, err := sql.Open("pgx", cfg.Dsn)
	if err != nil {
		return nil, err
	}

	repo, err := postgres.NewRepository(db)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	svc := web.NewService(repo, logger)

	srv, err := web.New(svc, cfg.Addr, log.New(os.Stderr, "web ", log.LstdFlags))
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	ans := dbrunner{
		cfg:    cfg,
		db:     db,
		srv:    srv,
		svc:    svc,
		logger: logger,
	}

	return &ans, nil
}

func (d *dbrunner) Run(ctx context.Context) error {
	egroup, ctx := errgroup.WithContext(ctx)

	egroup.Go(func() error {
		return d.work(ctx)
	})

	egroup.Go(func() error {
		return d.srv.Start(ctx)
	})

	return egroup.Wait()
}

func (d *dbrunner) Close(context.Context) error {
	err := d.db.Close()

	return multierr.Append(err, d.logger.Sync())
}

func (d *dbrunner) work(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pending, err := d.svc.SelectPending(ctx)
			if err != nil {
				return err
			}

			for _, analysis := range pending {
				if err := d.svc.Compute(ctx, analysis.ID); err != nil {
					d.logger.Error("analysis failed",
						zap.String("analysis_id", analysis.ID), zap.Error(err))
				}
			}
		}
	}
}
