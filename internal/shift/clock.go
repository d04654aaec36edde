package shift

import (
	"fmt"
	"time"
)

type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	location *time.Location
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.location)
}

func (c *SystemClock) Location() *time.Location {
	return c.location
}

// NewSystemClock resolves timezone ("" and "Local" mean the host zone).
func NewSystemClock(timezone string) (*SystemClock, error) {
	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone '%s': %w", timezone, err)
		}
		loc = l
	}
	return &SystemClock{location: loc}, nil
}
