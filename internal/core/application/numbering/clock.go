package numbering

import "time"

// SystemClock reads the wall clock in local time.
type SystemClock struct{}

// NewSystemClock creates the production clock.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Year returns the current year.
func (SystemClock) Year() int {
	return time.Now().Year()
}

// YearMonth returns the current year and month.
func (SystemClock) YearMonth() (int, int) {
	now := time.Now()
	return now.Year(), int(now.Month())
}
