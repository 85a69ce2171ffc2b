package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	loader "github.com/planfab/planfab/pkg/infrastructure/csv"
	"github.com/planfab/planfab/pkg/planner"
)

func main() {
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		configFile = flag.String("config", "", "Path to YAML file with simulation parameters")
		format     = flag.String("format", "text", "Output format: text, json")
		factor     = flag.Float64("factor", 1.0, "Demand scale factor")
		extraShift = flag.Bool("extra-shift", false, "Add one shift to every work center")
		horizon    = flag.Int("horizon", 30, "Planning horizon in days")
		workers    = flag.Int("workers", 0, "Worker pool size (0 = engine default)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)

	flag.Parse()

	if *scenarioDir == "" {
		fmt.Fprintln(os.Stderr, "Error: -scenario is required")
		flag.Usage()
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
			os.Exit(1)
		}
		logger = l
	}
	defer logger.Sync()

	params, maxWorkers, err := resolveConfig(*configFile, *factor, *extraShift, *horizon, *workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ds, err := loader.NewLoader().LoadDataset(*scenarioDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := planner.NewEngineWithConfig(planner.EngineConfig{
		MaxWorkers: maxWorkers,
		Logger:     logger,
	})

	result, err := engine.Simulate(context.Background(), ds, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := generateOutput(result, *format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig layers the parameter sources: flag defaults, then the
// optional YAML scenario file, then PLANFAB_* environment variables, then
// flags given explicitly on the command line.
func resolveConfig(configFile string, factor float64, extraShift bool, horizon, workers int) (planner.Params, int, error) {
	v := viper.New()
	v.SetDefault("demand_factor", factor)
	v.SetDefault("extra_shift", extraShift)
	v.SetDefault("horizon_days", horizon)
	v.SetDefault("max_workers", workers)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return planner.Params{}, 0, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix("PLANFAB")
	v.AutomaticEnv()

	explicit := map[string]any{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "factor":
			explicit["demand_factor"] = factor
		case "extra-shift":
			explicit["extra_shift"] = extraShift
		case "horizon":
			explicit["horizon_days"] = horizon
		case "workers":
			explicit["max_workers"] = workers
		}
	})
	for key, val := range explicit {
		v.Set(key, val)
	}

	params := planner.Params{
		DemandFactor: v.GetFloat64("demand_factor"),
		ExtraShift:   v.GetBool("extra_shift"),
		HorizonDays:  v.GetInt("horizon_days"),
	}
	return params, v.GetInt("max_workers"), nil
}
