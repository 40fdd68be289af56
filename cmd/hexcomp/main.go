// Command hexcomp evaluates hexapod compensation for one set of telescope
// conditions. It loads a compensation configuration, validates it, and prints
// the per-axis offsets and the compensated target position for the chosen
// hexapod instance. Intended for checking fitted coefficients against known
// conditions before deploying a configuration.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lsst-ts/ts-hexapod/internal/compensation"
	"github.com/lsst-ts/ts-hexapod/internal/config"
	"github.com/lsst-ts/ts-hexapod/internal/limits"
	"github.com/lsst-ts/ts-hexapod/internal/lut"
	"github.com/lsst-ts/ts-hexapod/internal/metrics"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	var (
		configPath  = flag.String("config", os.Getenv("HEXAPOD_CONFIG"), "path to compensation configuration YAML (default $HEXAPOD_CONFIG)")
		instance    = flag.String("instance", config.InstanceCamera, `hexapod instance: "camera" or "m2"`)
		elevation   = flag.Float64("elevation", 0, "telescope elevation (deg, 0 to 90)")
		azimuth     = flag.Float64("azimuth", 0, "telescope azimuth (deg)")
		rotation    = flag.Float64("rotation", 0, "camera rotator angle (deg)")
		temperature = flag.Float64("temperature", 0, "ambient temperature (C)")
		lutPath     = flag.String("lut", "", "optional lookup table file with extra corrections")
	)
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "no configuration: set -config or $HEXAPOD_CONFIG")
		os.Exit(2)
	}
	if err := limits.CheckRange(*elevation, "elevation", 0, 90); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR loading configuration:", err)
		os.Exit(1)
	}

	// The store is how a hosting service would hold the configuration; a
	// reload swaps it atomically under evaluating readers.
	store := config.NewStore()
	store.Set(cfg)

	inst, err := store.Get().Instance(*instance)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}
	model, err := inst.Model()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR building model:", err)
		os.Exit(1)
	}

	cond := compensation.Conditions{
		Elevation:   *elevation,
		Azimuth:     *azimuth,
		Rotation:    *rotation,
		Temperature: *temperature,
	}
	offsets := model.Offsets(cond)
	target := model.Target(cond)
	metrics.CompensationComputed(*instance)
	metrics.SetConfigAge(store.AgeSeconds())

	var extra compensation.AxisVector
	if *lutPath != "" {
		table, err := lut.Load(*lutPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			os.Exit(1)
		}
		value, err := conditionValue(table.Input(), cond)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			os.Exit(2)
		}
		extra, err = table.Correction(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			os.Exit(1)
		}
		target = target.Add(extra)
		logger.Info("applied lookup table correction", "path", *lutPath, "input", table.Input(), "value", value)
	}

	fmt.Printf("instance: %s\n", *instance)
	fmt.Printf("conditions: elevation=%g az=%g rot=%g temp=%g\n",
		cond.Elevation, cond.Azimuth, cond.Rotation, cond.Temperature)
	fmt.Printf("%-8s %14s %14s %14s", "axis", "reference", "offset", "target")
	if *lutPath != "" {
		fmt.Printf(" %14s", "lut")
	}
	fmt.Println()
	ref := model.Reference()
	for i, name := range compensation.AxisNames {
		unit := "um"
		if i >= 3 {
			unit = "deg"
		}
		fmt.Printf("%-8s %14.6f %14.6f %14.6f", name+" ("+unit+")", ref[i], offsets[i], target[i])
		if *lutPath != "" {
			fmt.Printf(" %14.6f", extra[i])
		}
		fmt.Println()
	}
}

// conditionValue picks the reading matching a lookup table's input name.
func conditionValue(input string, c compensation.Conditions) (float64, error) {
	switch input {
	case "elevation":
		return c.Elevation, nil
	case "azimuth":
		return c.Azimuth, nil
	case "temperature":
		return c.Temperature, nil
	}
	return 0, fmt.Errorf("no reading for lookup table input %q", input)
}
