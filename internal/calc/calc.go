// Package calc provides a stateful accumulating calculator and an engine
// that hosts independent calculator sessions behind a single goroutine.
package calc

// Calculator accumulates a running total via sequential method calls.
// The zero value is ready to use with a total of 0. Calculator is not
// safe for concurrent use; the Engine serializes access to its sessions.
type Calculator struct {
	result float64
}

// Add adds value to the running total and returns the new total
func (c *Calculator) Add(value float64) float64 {
	c.result += value
	return c.result
}

// Multiply multiplies the running total by value and returns the new total
func (c *Calculator) Multiply(value float64) float64 {
	c.result *= value
	return c.result
}

// Reset clears the running total back to 0
func (c *Calculator) Reset() {
	c.result = 0
}

// Result returns the current running total
func (c *Calculator) Result() float64 { return c.result }
