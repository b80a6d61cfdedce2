package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the system clock in a configured location.
type TimeClocker struct {
	loc *time.Location
}

// New returns a TimeClocker in UTC.
func New() *TimeClocker {
	return &TimeClocker{loc: time.UTC}
}

// NewIn returns a TimeClocker that reports instants in loc. A nil loc means UTC.
func NewIn(loc *time.Location) *TimeClocker {
	if loc == nil {
		loc = time.UTC
	}
	return &TimeClocker{loc: loc}
}

// Now returns the current system time.
func (c *TimeClocker) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed is a Clocker that always returns the same instant until moved.
type Fixed struct {
	at time.Time
}

// NewFixed returns a Fixed clock set to at.
func NewFixed(at time.Time) *Fixed {
	return &Fixed{at: at}
}

// Now returns the configured instant.
func (f *Fixed) Now() time.Time {
	return f.at
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.at = f.at.Add(d)
}
