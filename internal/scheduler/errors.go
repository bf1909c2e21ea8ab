package scheduler

import "errors"

var (
	// ErrInvalidSchedule indicates a schedule request with a timestamp that is
	// not in the future, or an unrecognized action. Surfaced to the caller and
	// not retried.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrContentNotFound indicates the referenced content does not exist at
	// schedule-creation time.
	ErrContentNotFound = errors.New("content not found")
)
