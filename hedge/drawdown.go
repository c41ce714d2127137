// hedge/drawdown.go
package hedge

// DrawdownTracker maintains the running high-water mark of total portfolio
// value and derives the current drawdown from it.
type DrawdownTracker struct {
	highWaterMark float64
}

// Update raises the high-water mark if the current value exceeds it and
// returns the current drawdown as a fraction <= 0. Before any positive value
// has been observed the drawdown is reported as 0; dividing by a zero
// high-water mark is never attempted.
func (t *DrawdownTracker) Update(currentValue float64) float64 {
	if currentValue > t.highWaterMark {
		t.highWaterMark = currentValue
	}
	if t.highWaterMark == 0 {
		return 0
	}
	return currentValue/t.highWaterMark - 1
}

// HighWaterMark returns the highest portfolio value observed so far.
func (t *DrawdownTracker) HighWaterMark() float64 {
	return t.highWaterMark
}
