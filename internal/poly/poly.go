// Package poly evaluates the per-axis compensation polynomials.
//
// Coefficients are ordered lowest degree first: [c0, c1, c2, ...] represents
// c0 + c1*t + c2*t^2 + ... . There is no upper bound on degree.
package poly

// Eval evaluates the polynomial at t using Horner's rule.
// A nil or empty coefficient slice evaluates to 0.
func Eval(coeffs []float64, t float64) float64 {
	v := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*t + coeffs[i]
	}
	return v
}

// EvalRanged evaluates the polynomial at t, truncating it to its constant and
// linear terms when t falls outside the closed interval [min, max]. Fitted
// polynomials diverge quickly beyond their fitted domain, so outside the range
// only c0 + c1*t is used; a missing c1 counts as 0. Out-of-range input is
// defined behavior, not an error.
//
// Calling with min = -Inf and max = +Inf is equivalent to Eval.
func EvalRanged(coeffs []float64, t, min, max float64) float64 {
	if t >= min && t <= max {
		return Eval(coeffs, t)
	}
	v := 0.0
	if len(coeffs) > 0 {
		v = coeffs[0]
	}
	if len(coeffs) > 1 {
		v += coeffs[1] * t
	}
	return v
}
