package services

import "context"

// RefreshJob adapts the refresher to the scheduler's Job interface so quote
// refreshes can run on a cron schedule.
type RefreshJob struct {
	refresher *Refresher
}

// NewRefreshJob creates a scheduled refresh job
func NewRefreshJob(refresher *Refresher) *RefreshJob {
	return &RefreshJob{refresher: refresher}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "quote-refresh"
}

// Run executes one full batch refresh
func (j *RefreshJob) Run() error {
	_, err := j.refresher.RefreshAll(context.Background())
	return err
}
