package clock

import "time"

// Clock provides the current time. Injecting it instead of calling time.Now
// directly makes time-sensitive rules (e.g. pickup windows) testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the system clock (UTC).
func System() Clock {
	return systemClock{}
}
