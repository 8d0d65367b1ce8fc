package jobs

import (
	"context"
	"time"

	"anser/internal/service"
	"anser/pkg/logger"
	"anser/pkg/store/redis"
)

const sweepLockKey = "anser:lock:worker-sweep"

// SweepJob drives the worker liveness sweep. The Redis lock keeps multiple
// controller instances from sweeping at the same time; losing the lock just
// skips the pass, another instance is doing the work.
type SweepJob struct {
	workers  *service.WorkerService
	lock     redis.DistributedLock
	interval time.Duration
}

// NewSweepJob creates the liveness sweep job.
func NewSweepJob(workers *service.WorkerService, redisClient *redis.RedisClient, interval time.Duration) *SweepJob {
	var client = redisClient.GetClient()
	return &SweepJob{
		workers:  workers,
		lock:     redis.NewRedisDistributedLock(client, sweepLockKey),
		interval: interval,
	}
}

// Name returns the job name.
func (j *SweepJob) Name() string {
	return "worker-sweep"
}

// Interval returns how often the sweep runs.
func (j *SweepJob) Interval() time.Duration {
	return j.interval
}

// Run executes one sweep pass under the distributed lock.
func (j *SweepJob) Run(ctx context.Context) error {
	acquired, err := j.lock.TryLock(ctx)
	if err != nil {
		return err
	}
	if !acquired {
		logger.DebugCtx(ctx, "sweep lock held elsewhere, skipping pass")
		return nil
	}
	defer func() {
		if err := j.lock.Unlock(ctx); err != nil {
			logger.WarnCtx(ctx, "failed to release sweep lock: %v", err)
		}
	}()

	return j.workers.Sweep(ctx)
}
