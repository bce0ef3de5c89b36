// Package mathutil provides scalar arithmetic helpers
package mathutil

import "github.com/pkg/errors"

// ErrDivideByZero is returned by Divide when the divisor is zero.
var ErrDivideByZero = errors.New("cannot divide by zero")

// Add returns a + b
func Add(a, b float64) float64 { return a + b }

// Subtract returns a - b
func Subtract(a, b float64) float64 { return a - b }

// Multiply returns a * b
func Multiply(a, b float64) float64 { return a * b }

// Divide returns a / b. A zero divisor is rejected with ErrDivideByZero
// instead of producing an infinite result.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}
