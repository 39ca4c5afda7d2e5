package cron

import (
	"context"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/internal/domain"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
)

// ResultsSnapshotCronJob keeps the results cache warm once voting has ended.
type ResultsSnapshotCronJob struct {
	resultDomain domain.ResultDomain
	interval     time.Duration
}

func NewResultsSnapshotCronJob(resultDomain domain.ResultDomain, interval time.Duration) *ResultsSnapshotCronJob {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &ResultsSnapshotCronJob{resultDomain: resultDomain, interval: interval}
}

func (job *ResultsSnapshotCronJob) Do(ctx context.Context) {
	if err := job.resultDomain.RefreshCache(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot refresh results cache: %v", err)
	}
}

func (job *ResultsSnapshotCronJob) RunNow() bool {
	return true
}

func (job *ResultsSnapshotCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
