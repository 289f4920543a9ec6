package postgresadapter

import "time"

// SystemClock satisfies ports.Clock with the process wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
