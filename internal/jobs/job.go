// Package jobs runs periodic maintenance work on a cron schedule.
package jobs

import "context"

// Job is a unit of scheduled work.
type Job interface {
	// Name identifies the job in logs and in RunByName.
	Name() string

	// Schedule is a standard five-field cron expression. An empty schedule
	// registers the job for on-demand runs only.
	Schedule() string

	Run(ctx context.Context) error
}
