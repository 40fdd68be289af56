// Package config loads and validates hexapod compensation configuration.
//
// A configuration document is YAML with exactly two instance sections,
// camera_config and m2_config, plus an optional compensation_interval.
// Validation is one-shot and all-or-nothing: a document either becomes a
// fully materialized Config or is rejected with a ShapeError before any
// evaluation is attempted. Unknown keys anywhere in the document are errors.
//
// Per instance, temperature_coeffs with min_temperature/max_temperature are
// always required. elevation_coeffs, azimuth_coeffs, rotation_coeffs and
// reference_position are individually optional; omitted drivers are
// materialized as all-zero coefficient rows at load time so the evaluator
// never branches on which fields were supplied.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lsst-ts/ts-hexapod/internal/compensation"
	"github.com/lsst-ts/ts-hexapod/internal/limits"
	"github.com/lsst-ts/ts-hexapod/internal/metrics"
)

// Hexapod instance names, used as configuration keys and metric labels.
const (
	InstanceCamera = "camera"
	InstanceM2     = "m2"
)

// DefaultInterval is the default compensation update interval in seconds,
// applied when compensation_interval is omitted. The engine itself does not
// schedule anything; the interval is consumed by the hosting service.
const DefaultInterval = 0.2

// ShapeError reports a structural violation in a configuration document:
// wrong row count, inverted temperature range, missing required field, or
// similar. A ShapeError rejects the whole document.
type ShapeError struct {
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("config field %q: %s", e.Field, e.Reason)
}

// Instance is the validated compensation configuration for one hexapod.
// All fields are materialized; see the package comment for defaulting rules.
type Instance struct {
	ReferencePosition compensation.AxisVector `yaml:"reference_position"`
	ElevationCoeffs   compensation.AxisCoeffs `yaml:"elevation_coeffs"`
	AzimuthCoeffs     compensation.AxisCoeffs `yaml:"azimuth_coeffs"`
	RotationCoeffs    compensation.AxisCoeffs `yaml:"rotation_coeffs"`
	TemperatureCoeffs compensation.AxisCoeffs `yaml:"temperature_coeffs"`
	MinTemperature    float64                 `yaml:"min_temperature"`
	MaxTemperature    float64                 `yaml:"max_temperature"`
}

// Model builds the compensation model for this instance.
func (in *Instance) Model() (*compensation.Model, error) {
	return compensation.NewModel(compensation.Params{
		Reference:      in.ReferencePosition,
		Elevation:      in.ElevationCoeffs,
		Azimuth:        in.AzimuthCoeffs,
		Rotation:       in.RotationCoeffs,
		Temperature:    in.TemperatureCoeffs,
		MinTemperature: in.MinTemperature,
		MaxTemperature: in.MaxTemperature,
	})
}

// Config is a validated compensation configuration document. It is immutable
// after Parse; reloads replace the whole value (see Store).
type Config struct {
	CompensationInterval float64  `yaml:"compensation_interval"`
	Camera               Instance `yaml:"camera_config"`
	M2                   Instance `yaml:"m2_config"`
}

// Instance returns the named hexapod's configuration, InstanceCamera or
// InstanceM2.
func (c *Config) Instance(name string) (*Instance, error) {
	switch name {
	case InstanceCamera:
		return &c.Camera, nil
	case InstanceM2:
		return &c.M2, nil
	}
	return nil, fmt.Errorf("unknown hexapod instance %q (want %q or %q)", name, InstanceCamera, InstanceM2)
}

// Encode serializes the validated configuration back to YAML. The output
// re-validates to an identical Config.
func (c *Config) Encode() ([]byte, error) {
	return yaml.Marshal(c)
}

// Raw document shapes. Pointers distinguish omitted fields from zero values.
type rawDocument struct {
	CompensationInterval *float64     `yaml:"compensation_interval"`
	Camera               *rawInstance `yaml:"camera_config"`
	M2                   *rawInstance `yaml:"m2_config"`
}

type rawInstance struct {
	ReferencePosition *[]float64   `yaml:"reference_position"`
	ElevationCoeffs   *[][]float64 `yaml:"elevation_coeffs"`
	AzimuthCoeffs     *[][]float64 `yaml:"azimuth_coeffs"`
	RotationCoeffs    *[][]float64 `yaml:"rotation_coeffs"`
	TemperatureCoeffs *[][]float64 `yaml:"temperature_coeffs"`
	MinTemperature    *float64     `yaml:"min_temperature"`
	MaxTemperature    *float64     `yaml:"max_temperature"`
}

// Parse reads one YAML configuration document from r and validates it.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var raw rawDocument
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	cfg := &Config{CompensationInterval: DefaultInterval}
	if raw.CompensationInterval != nil {
		cfg.CompensationInterval = *raw.CompensationInterval
	}
	if err := limits.CheckPositive(cfg.CompensationInterval, "compensation_interval", math.Inf(1)); err != nil {
		return nil, &ShapeError{Field: "compensation_interval", Reason: err.Error()}
	}

	camera, err := validateInstance("camera_config", raw.Camera)
	if err != nil {
		return nil, err
	}
	m2, err := validateInstance("m2_config", raw.M2)
	if err != nil {
		return nil, err
	}
	cfg.Camera = camera
	cfg.M2 = m2
	return cfg, nil
}

// Load reads and validates the configuration file at path, recording the
// outcome in metrics.
func Load(path string, logger *slog.Logger) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		metrics.ConfigLoadFailed()
		return nil, fmt.Errorf("opening configuration: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		metrics.ConfigLoadFailed()
		logger.Error("rejected compensation configuration", "path", path, "error", err)
		return nil, err
	}
	metrics.ConfigLoadSucceeded()
	logger.Info("loaded compensation configuration", "path", path,
		"compensation_interval", cfg.CompensationInterval)
	return cfg, nil
}

func validateInstance(section string, raw *rawInstance) (Instance, error) {
	var inst Instance
	if raw == nil {
		return inst, &ShapeError{Field: section, Reason: "required section is missing"}
	}

	if raw.ReferencePosition != nil {
		ref := *raw.ReferencePosition
		if len(ref) != compensation.NumAxes {
			return inst, &ShapeError{
				Field:  section + ".reference_position",
				Reason: fmt.Sprintf("want %d entries, got %d", compensation.NumAxes, len(ref)),
			}
		}
		copy(inst.ReferencePosition[:], ref)
	}

	var err error
	if inst.ElevationCoeffs, err = coeffSet(section+".elevation_coeffs", raw.ElevationCoeffs, false); err != nil {
		return inst, err
	}
	if inst.AzimuthCoeffs, err = coeffSet(section+".azimuth_coeffs", raw.AzimuthCoeffs, false); err != nil {
		return inst, err
	}
	if inst.RotationCoeffs, err = coeffSet(section+".rotation_coeffs", raw.RotationCoeffs, false); err != nil {
		return inst, err
	}
	if inst.TemperatureCoeffs, err = coeffSet(section+".temperature_coeffs", raw.TemperatureCoeffs, true); err != nil {
		return inst, err
	}

	if raw.MinTemperature == nil {
		return inst, &ShapeError{Field: section + ".min_temperature", Reason: "required field is missing"}
	}
	if raw.MaxTemperature == nil {
		return inst, &ShapeError{Field: section + ".max_temperature", Reason: "required field is missing"}
	}
	inst.MinTemperature = *raw.MinTemperature
	inst.MaxTemperature = *raw.MaxTemperature
	if inst.MinTemperature >= inst.MaxTemperature {
		return inst, &ShapeError{
			Field: section + ".min_temperature",
			Reason: fmt.Sprintf("min_temperature %v must be strictly less than max_temperature %v",
				inst.MinTemperature, inst.MaxTemperature),
		}
	}
	return inst, nil
}

// coeffSet converts raw coefficient rows into an AxisCoeffs, enforcing
// exactly one row per axis with at least one coefficient each. A nil rows
// pointer is an error for required sets and materializes as all-zero rows
// otherwise.
func coeffSet(field string, rows *[][]float64, required bool) (compensation.AxisCoeffs, error) {
	var set compensation.AxisCoeffs
	if rows == nil {
		if required {
			return set, &ShapeError{Field: field, Reason: "required field is missing"}
		}
		for i := range set {
			set[i] = []float64{0}
		}
		return set, nil
	}
	if len(*rows) != compensation.NumAxes {
		return set, &ShapeError{
			Field:  field,
			Reason: fmt.Sprintf("want %d coefficient rows (one per axis), got %d", compensation.NumAxes, len(*rows)),
		}
	}
	for i, row := range *rows {
		if len(row) == 0 {
			return set, &ShapeError{
				Field:  field,
				Reason: fmt.Sprintf("row %d (axis %s) needs at least one coefficient", i, compensation.AxisNames[i]),
			}
		}
		set[i] = append([]float64(nil), row...)
	}
	return set, nil
}
