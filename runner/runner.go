package runner

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"
	"sync"

	"github.com/nearview/location-insights/entities"
	"github.com/nearview/location-insights/tlmt"
	"github.com/nearview/location-insights/tlmt/gonoop"
	"github.com/nearview/location-insights/tlmt/goposthog"
)

const (
	RunModeFile = iota + 1
	RunModeWeb
	RunModeDatabase
)

var (
	ErrInvalidRunMode = errors.New("invalid run mode")
)

type Runner interface {
	Run(context.Context) error
	Close(context.Context) error
}

type Config struct {
	InputFile        string
	ResultsFile      string
	JSON             bool
	Addr             string
	DataFolder       string
	Dsn              string
	WebRunner        bool
	DisableTelemetry bool
	Modes            []entities.TransportMode
	RunMode          int
}

func ParseConfig() *Config {
	cfg := Config{}

	var modes string

	flag.StringVar(&cfg.InputFile, "input", "", "path to an analysis request file (JSON) [default: empty]")
	flag.StringVar(&cfg.ResultsFile, "results", "stdout", "path to the results file [default: stdout]")
	flag.BoolVar(&cfg.JSON, "json", false, "produce JSON output instead of CSV")
	flag.StringVar(&cfg.Addr, "addr", ":8080", "address to listen on for web server")
	flag.StringVar(&cfg.DataFolder, "data-folder", "webdata", "data folder for web runner")
	flag.StringVar(&cfg.Dsn, "dsn", "", "database connection string [only valid with database provider]")
	flag.BoolVar(&cfg.WebRunner, "web", false, "run web server instead of a one-shot analysis")
	flag.BoolVar(&cfg.DisableTelemetry, "disable-telemetry", false, "disable anonymous usage statistics")
	flag.StringVar(&modes, "modes", "", "comma separated active transport modes to filter the output by (walk,bicycle,car)")

	flag.Parse()

	if modes != "" {
		for _, part := range strings.Split(modes, ",") {
			mode := entities.TransportMode(strings.TrimSpace(part))
			if !mode.Valid() {
				panic("invalid transport mode: " + string(mode))
			}

			cfg.Modes = append(cfg.Modes, mode)
		}
	}

	if cfg.DisableTelemetry {
		os.Setenv("DISABLE_TELEMETRY", "1")
	}

	switch {
	case cfg.WebRunner || (cfg.Dsn == "" && cfg.InputFile == ""):
		cfg.RunMode = RunModeWeb
	case cfg.Dsn != "":
		cfg.RunMode = RunModeDatabase
	default:
		cfg.RunMode = RunModeFile
	}

	return &cfg
}

var (
	telemetryOnce sync.Once
	telemetry     tlmt.Telemetry
)

func Telemetry() tlmt.Telemetry {
	telemetryOnce.Do(func() {
		disableTel := os.Getenv("DISABLE_TELEMETRY") == "1"

		if disableTel {
			telemetry = gonoop.New()

			return
		}

		val, err := goposthog.New("phc_lZf2hFImTtMazRGm3cUNFBRrDLRiiOxV5zkHwCzR7Qn", "https://eu.i.posthog.com")
		if err != nil || val == nil {
			telemetry = gonoop.New()

			return
		}

		telemetry = val
	})

	return telemetry
}
