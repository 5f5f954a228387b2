package filerunner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"

	"github.com/nearview/location-insights/entities"
	"github.com/nearview/location-insights/models"
	"github.com/nearview/location-insights/proximity"
	"github.com/nearview/location-insights/runner"
	"github.com/nearview/location-insights/tlmt"
	"github.com/nearview/location-insights/web"
)

// fileRunner runs one analysis from a request file and writes the resulting
// groups to the results file as CSV or JSON.
type fileRunner struct {
	cfg     *runner.Config
	input   *os.File
	output  *os.File
	closers []func() error
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeFile {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	ans := &fileRunner{
		cfg: cfg,
	}

	if err := ans.setInput(); err != nil {
		return nil, err
	}

	if err := ans.setOutput(); err != nil {
		_ = ans.Close(context.Background())

		return nil, err
	}

	return ans, nil
}

func (r *fileRunner) Run(ctx context.Context) (err error) {
	t0 := time.Now().UTC()

	var groups []entities.Group

	defer func() {
		params := map[string]any{
			"group_count": len(groups),
			"duration":    time.Now().UTC().Sub(t0).String(),
		}

		if err != nil {
			params["error"] = err.Error()
		}

		evt := tlmt.NewEvent("file_runner", params)

		_ = runner.Telemetry().Send(ctx, evt)
	}()

	var data models.AnalysisData
	if err := json.NewDecoder(r.input).Decode(&data); err != nil {
		return fmt.Errorf("failed to decode analysis request: %w", err)
	}

	if err := data.Validate(); err != nil {
		return err
	}

	groups = proximity.Run(proximity.Input{
		Search:             data.Search,
		PreferredLocations: data.PreferredLocations,
		Listings:           data.Listings,
		Settings:           data.Settings,
	})

	if len(r.cfg.Modes) > 0 {
		groups = proximity.FilterByModes(groups, r.cfg.Modes)
	}

	if r.cfg.JSON {
		enc := json.NewEncoder(r.output)
		enc.SetIndent("", "  ")

		return enc.Encode(groups)
	}

	return web.WriteGroupsCSV(r.output, groups)
}

func (r *fileRunner) Close(context.Context) error {
	var err error

	for _, closeFn := range r.closers {
		err = multierr.Append(err, closeFn())
	}

	return err
}

func (r *fileRunner) setInput() error {
	f, err := os.Open(r.cfg.InputFile)
	if err != nil {
		return err
	}

	r.input = f
	r.closers = append(r.closers, f.Close)

	return nil
}

func (r *fileRunner) setOutput() error {
	if r.cfg.ResultsFile == "stdout" {
		r.output = os.Stdout

		return nil
	}

	f, err := os.Create(r.cfg.ResultsFile)
	if err != nil {
		return err
	}

	r.output = f
	r.closers = append(r.closers, f.Close)

	return nil
}
