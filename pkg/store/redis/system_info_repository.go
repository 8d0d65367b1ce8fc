package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"anser/internal/model"

	"github.com/go-redis/redis/v8"
)

const systemInfoKeyPrefix = "sysinfo:"

// SystemInfoRepository stores the latest resource snapshot per worker in
// Redis. Snapshots are ephemeral: losing one simply makes the next staleness
// check request a fresh report, so no TTL bookkeeping is needed.
type SystemInfoRepository struct {
	redis *redis.Client
}

// NewSystemInfoRepository creates a system info repository
func NewSystemInfoRepository(redisClient *RedisClient) *SystemInfoRepository {
	return &SystemInfoRepository{
		redis: redisClient.GetClient(),
	}
}

// Save overwrites a worker's snapshot.
func (r *SystemInfoRepository) Save(ctx context.Context, snap *model.SystemInfoSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal system info: %w", err)
	}

	key := systemInfoKeyPrefix + snap.WorkerID
	if err := r.redis.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save system info: %w", err)
	}
	return nil
}

// Get returns a worker's snapshot, or nil, nil when absent.
func (r *SystemInfoRepository) Get(ctx context.Context, workerID string) (*model.SystemInfoSnapshot, error) {
	key := systemInfoKeyPrefix + workerID
	data, err := r.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get system info: %w", err)
	}

	var snap model.SystemInfoSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal system info: %w", err)
	}
	return &snap, nil
}
