package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/internal/model"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runNow bool
	count  atomic.Int32
}

func (j *countingJob) Do(context.Context) { j.count.Add(1) }
func (j *countingJob) RunNow() bool       { return j.runNow }
func (j *countingJob) Next() time.Time    { return time.Now().Add(10 * time.Millisecond) }

func TestCronJobManager(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	immediate := &countingJob{runNow: true}
	delayed := &countingJob{}

	m := NewCronJobManager()
	m.Register(immediate)
	m.Register(delayed)

	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return immediate.count.Load() >= 3 && delayed.count.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("manager did not stop")
	}

	// No job runs after the manager stopped.
	stoppedAt := immediate.count.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, stoppedAt, immediate.count.Load())
}

type mockResultDomain struct {
	refreshErr error
	calls      int
}

func (d *mockResultDomain) GetResults(context.Context, *model.GetResultsRequest) (*model.GetResultsResponse, error) {
	return nil, nil
}

func (d *mockResultDomain) RefreshCache(context.Context) error {
	d.calls++
	return d.refreshErr
}

func TestResultsSnapshotCronJob(t *testing.T) {
	resultDomain := &mockResultDomain{refreshErr: errors.New("redis down")}
	job := NewResultsSnapshotCronJob(resultDomain, time.Minute)

	require.True(t, job.RunNow())
	require.WithinDuration(t, time.Now().Add(time.Minute), job.Next(), time.Second)

	job.Do(context.Background())
	require.Equal(t, 1, resultDomain.calls)

	require.WithinDuration(t, time.Now().Add(10*time.Minute),
		NewResultsSnapshotCronJob(resultDomain, 0).Next(), time.Second)
}
