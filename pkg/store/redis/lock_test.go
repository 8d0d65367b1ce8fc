package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestDistributedLock_SingleInstance(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	lock := NewRedisDistributedLock(client, "test-lock")
	ctx := context.Background()

	acquired, err := lock.TryLock(ctx)
	assert.NoError(t, err)
	assert.True(t, acquired)
	assert.True(t, lock.IsHeld())

	err = lock.Unlock(ctx)
	assert.NoError(t, err)
	assert.False(t, lock.IsHeld())
}

func TestDistributedLock_MultipleInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	lock1 := NewRedisDistributedLock(client, "test-lock-multi")
	lock2 := NewRedisDistributedLock(client, "test-lock-multi")
	ctx := context.Background()

	acquired1, err := lock1.TryLock(ctx)
	assert.NoError(t, err)
	assert.True(t, acquired1)

	acquired2, err := lock2.TryLock(ctx)
	assert.NoError(t, err)
	assert.False(t, acquired2, "second lock should not be acquired")

	err = lock1.Unlock(ctx)
	assert.NoError(t, err)

	acquired2, err = lock2.TryLock(ctx)
	assert.NoError(t, err)
	assert.True(t, acquired2, "second lock should be acquired after first release")

	err = lock2.Unlock(ctx)
	assert.NoError(t, err)
}

func TestDistributedLock_AutoExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	lock1 := NewRedisDistributedLock(client, "test-lock-expire")
	lock2 := NewRedisDistributedLock(client, "test-lock-expire")
	ctx := context.Background()

	acquired, err := lock1.TryLock(ctx)
	assert.NoError(t, err)
	assert.True(t, acquired)

	// Simulate the holder dying: fast-forward past the TTL.
	mr.FastForward(lockTTL + time.Second)

	acquired2, err := lock2.TryLock(ctx)
	assert.NoError(t, err)
	assert.True(t, acquired2, "lock should be acquirable after TTL expiry")
}

func TestDistributedLock_UnlockOnlyRemovesOwnLock(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	lock1 := NewRedisDistributedLock(client, "test-lock-owner")
	lock2 := NewRedisDistributedLock(client, "test-lock-owner")
	ctx := context.Background()

	acquired, err := lock1.TryLock(ctx)
	assert.NoError(t, err)
	assert.True(t, acquired)

	// lock1 expires, lock2 takes over.
	mr.FastForward(lockTTL + time.Second)
	acquired2, err := lock2.TryLock(ctx)
	assert.NoError(t, err)
	assert.True(t, acquired2)

	// Stale unlock from lock1 must not free lock2's hold.
	assert.NoError(t, lock1.Unlock(ctx))

	lock3 := NewRedisDistributedLock(client, "test-lock-owner")
	acquired3, err := lock3.TryLock(ctx)
	assert.NoError(t, err)
	assert.False(t, acquired3, "lock should still be held by lock2")
}

func TestDistributedLock_NilClientSingleInstanceMode(t *testing.T) {
	lock := NewRedisDistributedLock(nil, "test-lock-nil")
	ctx := context.Background()

	acquired, err := lock.TryLock(ctx)
	assert.NoError(t, err)
	assert.True(t, acquired)
	assert.True(t, lock.IsHeld())

	assert.NoError(t, lock.Unlock(ctx))
	assert.False(t, lock.IsHeld())
}
