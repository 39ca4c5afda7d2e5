package cron

import (
	"context"
	"sync"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
)

type CronJob interface {
	Do(context.Context)
	RunNow() bool
	Next() time.Time
}

// CronJobManager runs every registered job on its own timer until the context passed to Start is
// canceled.
type CronJobManager struct {
	mutex   sync.Mutex
	running sync.WaitGroup
	stopped bool
	jobs    map[CronJob]*time.Timer
}

func NewCronJobManager() *CronJobManager {
	return &CronJobManager{jobs: make(map[CronJob]*time.Timer)}
}

func (m *CronJobManager) Register(job CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.jobs[job] = nil
}

// Start blocks until ctx is done. A job already running when ctx is canceled is waited for.
func (m *CronJobManager) Start(ctx context.Context) {
	xcontext.Logger(ctx).Infof("Cron job manager started")

	m.mutex.Lock()
	jobs := make([]CronJob, 0, len(m.jobs))
	for job := range m.jobs {
		jobs = append(jobs, job)
	}
	m.mutex.Unlock()

	for _, job := range jobs {
		if job.RunNow() {
			m.running.Add(1)
			go m.run(ctx, job)
		} else {
			m.schedule(ctx, job)
		}
	}

	<-ctx.Done()
	m.stop()
	m.running.Wait()

	xcontext.Logger(ctx).Infof("Cron job manager stopped")
}

func (m *CronJobManager) stop() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.stopped = true
	for job, timer := range m.jobs {
		if timer != nil && timer.Stop() {
			// The timer had not fired, its run will never release the counter.
			m.running.Done()
		}

		m.jobs[job] = nil
	}
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	defer m.running.Done()

	xcontext.Logger(ctx).Infof("%T is running...", job)
	job.Do(ctx)
	xcontext.Logger(ctx).Infof("%T ok", job)

	m.schedule(ctx, job)
}

func (m *CronJobManager) schedule(ctx context.Context, job CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.stopped {
		return
	}

	m.running.Add(1)
	m.jobs[job] = time.AfterFunc(time.Until(job.Next()), func() { m.run(ctx, job) })
}
