package scheduler

import "errors"

var (
	// ErrInvalidSchedule is returned for a cron spec that does not parse
	ErrInvalidSchedule = errors.New("invalid cron schedule")

	// ErrDuplicateJob is returned when a job name is registered twice
	ErrDuplicateJob = errors.New("job already registered")

	// ErrJobNotFound is returned when a job is not registered
	ErrJobNotFound = errors.New("job not found")
)
