package concurrency

import (
	"errors"
	"time"
)

// ThrottledWorker runs a job for each argument, one at a time, no faster
// than one job per interval.
type ThrottledWorker[T any] struct {
	interval    time.Duration
	jobCallback func(arg T) error
}

func NewThrottledWorker[T any](interval time.Duration, jobCallback func(arg T) error) ThrottledWorker[T] {
	return ThrottledWorker[T]{interval: interval, jobCallback: jobCallback}
}

// Run blocks until every job has run and returns the joined job errors.
func (w *ThrottledWorker[T]) Run(jobArgs []T) error {
	if len(jobArgs) == 0 {
		return nil
	}

	jobArgsChannel := make(chan T, len(jobArgs))

	for _, arg := range jobArgs {
		jobArgsChannel <- arg
	}
	close(jobArgsChannel)

	interval := w.interval
	if interval <= 0 {
		interval = time.Nanosecond
	}
	limiter := time.NewTicker(interval)
	defer limiter.Stop()

	var errs []error
	for arg := range jobArgsChannel {
		<-limiter.C
		if err := w.jobCallback(arg); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
