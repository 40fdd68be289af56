// Package lut provides linearly interpolated lookup tables of six-axis
// hexapod corrections, an alternative correction source to the polynomial
// compensation model.
//
// A table file is whitespace-separated ASCII. Blank lines and lines starting
// with # are ignored. The first data line holds the column names, in order:
//
//	input_name x y z u v w
//
// where input_name is one of elevation, azimuth, or temperature (any case).
// Each following line holds one entry: the input value and its six-axis
// correction. Input values must increase strictly and at least two entries
// are required. Units: elevation, azimuth, u, v, w in deg; temperature in C;
// x, y, z in um.
package lut

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lsst-ts/ts-hexapod/internal/compensation"
)

// Table is a lookup table of six-axis corrections keyed by one input.
// Immutable after Parse and safe for concurrent use.
type Table struct {
	input       string
	inputs      []float64
	corrections []compensation.AxisVector
}

// Input returns the table's input name: "elevation", "azimuth", or
// "temperature".
func (t *Table) Input() string {
	return t.input
}

// Min and Max return the table's input domain.
func (t *Table) Min() float64 { return t.inputs[0] }
func (t *Table) Max() float64 { return t.inputs[len(t.inputs)-1] }

// Parse reads a lookup table from r.
func Parse(r io.Reader) (*Table, error) {
	var t Table
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 7 {
			return nil, fmt.Errorf("line %d: want 7 columns, got %d", lineNum, len(fields))
		}

		if t.input == "" {
			// First data line is the header.
			input := strings.ToLower(fields[0])
			switch input {
			case "elevation", "azimuth", "temperature":
			default:
				return nil, fmt.Errorf("line %d: input name %q must be elevation, azimuth, or temperature", lineNum, fields[0])
			}
			for i, want := range compensation.AxisNames {
				if !strings.EqualFold(fields[i+1], want) {
					return nil, fmt.Errorf("line %d: correction columns %v must be x, y, z, u, v, w", lineNum, fields[1:])
				}
			}
			t.input = input
			continue
		}

		values := make([]float64, 7)
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %d: %w", lineNum, i+1, err)
			}
			values[i] = v
		}
		if n := len(t.inputs); n > 0 && values[0] <= t.inputs[n-1] {
			return nil, fmt.Errorf("line %d: input value %v does not increase (previous %v)",
				lineNum, values[0], t.inputs[n-1])
		}
		t.inputs = append(t.inputs, values[0])
		var corr compensation.AxisVector
		copy(corr[:], values[1:])
		t.corrections = append(t.corrections, corr)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lookup table: %w", err)
	}
	if t.input == "" {
		return nil, fmt.Errorf("lookup table has no header line")
	}
	if len(t.inputs) < 2 {
		return nil, fmt.Errorf("lookup table needs at least 2 entries, got %d", len(t.inputs))
	}
	return &t, nil
}

// Load reads a lookup table from the file at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lookup table: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing lookup table %s: %w", path, err)
	}
	return t, nil
}

// Correction returns the linearly interpolated six-axis correction for the
// given input value. Unlike the polynomial model, input outside the table's
// domain is an error: the table carries no information to extrapolate from.
func (t *Table) Correction(value float64) (compensation.AxisVector, error) {
	if value < t.Min() || value > t.Max() {
		return compensation.AxisVector{}, fmt.Errorf("%s=%v outside lookup table domain [%v, %v]",
			t.input, value, t.Min(), t.Max())
	}
	// Index of the segment containing value; the last knot belongs to the
	// final segment.
	i := sort.Search(len(t.inputs), func(j int) bool { return t.inputs[j] > value }) - 1
	if i == len(t.inputs)-1 {
		i--
	}
	frac := (value - t.inputs[i]) / (t.inputs[i+1] - t.inputs[i])
	var corr compensation.AxisVector
	for k := range corr {
		corr[k] = t.corrections[i][k] + frac*(t.corrections[i+1][k]-t.corrections[i][k])
	}
	return corr, nil
}
