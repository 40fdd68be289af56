// Package compensation combines per-driver polynomial corrections into a
// single six-axis hexapod offset.
//
// Each hexapod instance (camera, M2) carries four independent sets of
// polynomials, one set per physical driver: telescope elevation, telescope
// azimuth, camera rotator angle, and ambient temperature. The drivers model
// physically distinct deformation modes (gravitational flexure, rotator
// flexure, thermal expansion) and combine by superposition; there are no
// cross-terms between drivers. The temperature polynomials carry a validity
// range and degrade to linear outside it, see package poly.
package compensation

import (
	"fmt"

	"github.com/lsst-ts/ts-hexapod/internal/poly"
)

// NumAxes is the number of hexapod axes: x, y, z, u, v, w.
const NumAxes = 6

// AxisNames lists the hexapod axis names in vector order.
var AxisNames = [NumAxes]string{"x", "y", "z", "u", "v", "w"}

// AxisVector is an ordered position or offset along the six hexapod axes:
// x, y, z in um and u, v, w in deg.
type AxisVector [NumAxes]float64

// Add returns the component-wise sum of v and o.
func (v AxisVector) Add(o AxisVector) AxisVector {
	var out AxisVector
	for i := range v {
		out[i] = v[i] + o[i]
	}
	return out
}

// AxisCoeffs holds one polynomial coefficient row per axis, lowest degree
// first. Row i drives axis AxisNames[i].
type AxisCoeffs [NumAxes][]float64

// Conditions holds the telescope readings a compensation is computed for.
// Angles are in deg, temperature in C.
type Conditions struct {
	Elevation   float64
	Azimuth     float64
	Rotation    float64
	Temperature float64
}

// Model computes compensation offsets for one hexapod instance. It is
// immutable after construction and safe for concurrent use; each evaluation
// is independent and retains no state.
type Model struct {
	reference   AxisVector
	elevation   AxisCoeffs
	azimuth     AxisCoeffs
	rotation    AxisCoeffs
	temperature AxisCoeffs
	minTemp     float64
	maxTemp     float64
}

// Params holds the validated inputs for NewModel. Coefficient rows omitted
// from configuration must already be materialized as zero rows; the model
// never distinguishes a defaulted driver from a configured one.
type Params struct {
	Reference      AxisVector
	Elevation      AxisCoeffs
	Azimuth        AxisCoeffs
	Rotation       AxisCoeffs
	Temperature    AxisCoeffs
	MinTemperature float64
	MaxTemperature float64
}

// NewModel builds a compensation model. It rejects an inverted or empty
// temperature validity range and any coefficient row without at least one
// coefficient.
func NewModel(p Params) (*Model, error) {
	if p.MinTemperature >= p.MaxTemperature {
		return nil, fmt.Errorf("min_temperature %v must be less than max_temperature %v",
			p.MinTemperature, p.MaxTemperature)
	}
	for _, set := range []struct {
		name   string
		coeffs AxisCoeffs
	}{
		{"elevation", p.Elevation},
		{"azimuth", p.Azimuth},
		{"rotation", p.Rotation},
		{"temperature", p.Temperature},
	} {
		for i, row := range set.coeffs {
			if len(row) == 0 {
				return nil, fmt.Errorf("%s coefficients for axis %s are empty; need at least one coefficient",
					set.name, AxisNames[i])
			}
		}
	}
	return &Model{
		reference:   p.Reference,
		elevation:   p.Elevation,
		azimuth:     p.Azimuth,
		rotation:    p.Rotation,
		temperature: p.Temperature,
		minTemp:     p.MinTemperature,
		maxTemp:     p.MaxTemperature,
	}, nil
}

// Offsets returns the compensation offset for the given conditions: per axis,
// the sum of the four driver polynomials evaluated at the matching reading.
// The temperature polynomial truncates to linear outside its validity range;
// the other drivers are unranged.
func (m *Model) Offsets(c Conditions) AxisVector {
	var out AxisVector
	for i := 0; i < NumAxes; i++ {
		out[i] = poly.Eval(m.elevation[i], c.Elevation) +
			poly.Eval(m.azimuth[i], c.Azimuth) +
			poly.Eval(m.rotation[i], c.Rotation) +
			poly.EvalRanged(m.temperature[i], c.Temperature, m.minTemp, m.maxTemp)
	}
	return out
}

// Target returns the reference position with compensation applied:
// Reference() + Offsets(c). Motion commands consume the target; telemetry
// consumes the raw offsets.
func (m *Model) Target(c Conditions) AxisVector {
	return m.reference.Add(m.Offsets(c))
}

// Reference returns the nominal, uncompensated position.
func (m *Model) Reference() AxisVector {
	return m.reference
}
