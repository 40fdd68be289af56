// Package limits provides scalar range checks shared by configuration
// loading and command input validation.
package limits

import "fmt"

// CheckPositive returns an error unless 0 < value <= max.
func CheckPositive(value float64, name string, max float64) error {
	if !(value > 0 && value <= max) {
		return fmt.Errorf("%s=%v not in range (0, %v]", name, value, max)
	}
	return nil
}

// CheckNegative returns an error unless min <= value < 0.
func CheckNegative(value float64, name string, min float64) error {
	if !(value >= min && value < 0) {
		return fmt.Errorf("%s=%v not in range [%v, 0)", name, value, min)
	}
	return nil
}

// CheckRange returns an error unless min <= value <= max.
func CheckRange(value float64, name string, min, max float64) error {
	if value < min || value > max {
		return fmt.Errorf("%s=%v not in range [%v, %v]", name, value, min, max)
	}
	return nil
}

// CheckSymmetric returns an error unless -max <= value <= max.
func CheckSymmetric(value float64, name string, max float64) error {
	if value < -max || value > max {
		return fmt.Errorf("%s=%v not in range [-%v, %v]", name, value, max, max)
	}
	return nil
}
