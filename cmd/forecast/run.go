package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
	"github.com/couchcryptid/storm-forecast-service/internal/forecast"
	"github.com/couchcryptid/storm-forecast-service/internal/model"
	"github.com/couchcryptid/storm-forecast-service/internal/observability"
	"github.com/couchcryptid/storm-forecast-service/internal/pipeline"
)

type runOptions struct {
	input          string
	horizon        int
	step           int
	maxHorizon     int
	seed           uint64
	noPerturbation bool
	lookback       int
	regions        string
	spread         float64
	model          string
	logLevel       string
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Forecast a single storm observation and print the result as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForecast(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "-", "observation JSON file, - for stdin")
	f.IntVar(&opts.horizon, "horizon", 72, "forecast horizon in hours")
	f.IntVar(&opts.step, "step", forecast.DefaultStepHours, "forecast step in hours")
	f.IntVar(&opts.maxHorizon, "max-horizon", forecast.DefaultMaxHorizonHours, "largest accepted horizon in hours")
	f.Uint64Var(&opts.seed, "seed", 42, "seed for the wind shear perturbation")
	f.BoolVar(&opts.noPerturbation, "no-perturbation", false, "evolve wind shear deterministically")
	f.IntVar(&opts.lookback, "prior-lookback", 0, "hours between the current and prior position fed to the model (0 uses the previous step)")
	f.StringVar(&opts.regions, "regions", "", "coastal region YAML file (default built-in regions)")
	f.StringVar(&opts.model, "model", model.KindSteering, "predictor pairing: "+strings.Join(model.Kinds, " or "))
	f.Float64Var(&opts.spread, "spread", 0.1, "probability mass the steering model's classifier gives neighbouring categories")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	return cmd
}

func runForecast(stdin io.Reader, stdout, stderr io.Writer, opts runOptions) error {
	logger := observability.NewLoggerTo(stderr, opts.logLevel, "text")

	data, err := readInput(stdin, opts.input)
	if err != nil {
		return err
	}
	obs, err := domain.ParseObservation(domain.RawEvent{Value: data})
	if err != nil {
		return err
	}
	initial, err := obs.FeatureVector()
	if err != nil {
		return err
	}

	regions, err := loadRegions(opts.regions)
	if err != nil {
		return err
	}

	positions, intensity, err := model.Build(opts.model, float64(opts.step), opts.spread)
	if err != nil {
		return err
	}

	engine := forecast.NewEngine(
		positions,
		intensity,
		regions,
		logger,
		forecast.WithMaxHorizon(opts.maxHorizon),
	)

	cfg := forecast.RunConfig{
		HorizonHours:       opts.horizon,
		StepHours:          opts.step,
		StartTime:          obs.ObservedAt,
		StormID:            obs.StormID,
		PriorLookbackHours: opts.lookback,
	}
	if !opts.noPerturbation {
		cfg.Source = rand.NewPCG(opts.seed, pipeline.ObservationSeed(obs))
	}

	result, err := engine.Run(initial, cfg)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read observation: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read observation: %w", err)
	}
	return data, nil
}
