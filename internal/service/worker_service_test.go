package service

import (
	"context"
	"testing"
	"time"

	"anser/internal/model"
	"anser/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceEnv struct {
	workers     *fakeWorkerStore
	heartbeats  *fakeHeartbeatStore
	commands    *fakeCommandStore
	systemInfo  *fakeSystemInfoStore
	workerFuncs *fakeWorkerFunctionStore
	jobs        *fakeJobStore

	workerSvc    *WorkerService
	jobSvc       *JobService
	heartbeatSvc *HeartbeatService
}

func newServiceEnv() *serviceEnv {
	env := &serviceEnv{
		workers:     newFakeWorkerStore(),
		heartbeats:  newFakeHeartbeatStore(),
		commands:    newFakeCommandStore(),
		systemInfo:  newFakeSystemInfoStore(),
		workerFuncs: newFakeWorkerFunctionStore(),
		jobs:        newFakeJobStore(),
	}

	state := config.StateConfig{
		DisconnectTimeout:   5 * time.Second,
		SystemInfoRefresh:   time.Minute,
		FunctionListRefresh: time.Hour,
		SweepInterval:       time.Second,
	}

	env.workerSvc = NewWorkerService(env.workers, env.heartbeats, env.commands, env.systemInfo, env.workerFuncs, state)
	env.jobSvc = NewJobService(env.workers, env.workerFuncs, env.jobs, env.commands)
	env.heartbeatSvc = NewHeartbeatService(env.workerSvc, env.jobSvc, env.heartbeats, env.commands, env.systemInfo, env.workerFuncs)
	return env
}

func (env *serviceEnv) pendingKinds(t *testing.T, workerID string) []model.CommandKind {
	t.Helper()
	pending, err := env.commands.ListPending(context.Background(), workerID)
	require.NoError(t, err)
	kinds := make([]model.CommandKind, 0, len(pending))
	for _, cmd := range pending {
		kinds = append(kinds, cmd.Type)
	}
	return kinds
}

func TestGetWorkerStatus_UnknownIsNotRegistered(t *testing.T) {
	env := newServiceEnv()

	status, err := env.workerSvc.GetWorkerStatus(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, model.WorkerStatusNotRegistered, status)
}

func TestRecordHeartbeat_FirstContactCreatesOnlineWorker(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()

	force, err := env.workerSvc.RecordHeartbeat(ctx, "worker-1")
	require.NoError(t, err)
	assert.False(t, force)

	status, err := env.workerSvc.GetWorkerStatus(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, model.WorkerStatusOnline, status)
}

func TestRecordHeartbeat_OnlineWorkerStaysOnline(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()

	_, err := env.workerSvc.RecordHeartbeat(ctx, "worker-1")
	require.NoError(t, err)

	force, err := env.workerSvc.RecordHeartbeat(ctx, "worker-1")
	require.NoError(t, err)
	assert.False(t, force)
}

func TestRecordHeartbeat_ReconnectForcesRefresh(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()

	require.NoError(t, env.workers.Create(ctx, "worker-1", model.WorkerStatusOffline))

	force, err := env.workerSvc.RecordHeartbeat(ctx, "worker-1")
	require.NoError(t, err)
	assert.True(t, force)

	status, err := env.workerSvc.GetWorkerStatus(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, model.WorkerStatusOnline, status)
}

func TestSweep_SilentOnlineWorkerGoesOffline(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()

	require.NoError(t, env.workers.Create(ctx, "worker-1", model.WorkerStatusOnline))
	require.NoError(t, env.heartbeats.Append(ctx, &model.HeartbeatRecord{
		WorkerID: "worker-1",
		Time:     time.Now().Add(-10 * time.Second).UnixMilli(),
	}))

	require.NoError(t, env.workerSvc.Sweep(ctx))

	status, err := env.workerSvc.GetWorkerStatus(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, model.WorkerStatusOffline, status)
}

func TestSweep_RecentHeartbeatKeepsWorkerOnline(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()

	require.NoError(t, env.workers.Create(ctx, "worker-1", model.WorkerStatusOnline))
	require.NoError(t, env.heartbeats.Append(ctx, &model.HeartbeatRecord{
		WorkerID: "worker-1",
		Time:     time.Now().UnixMilli(),
	}))

	require.NoError(t, env.workerSvc.Sweep(ctx))

	status, err := env.workerSvc.GetWorkerStatus(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, model.WorkerStatusOnline, status)
}

func TestSweep_NeverRevivesOfflineWorker(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()

	require.NoError(t, env.workers.Create(ctx, "worker-1", model.WorkerStatusOffline))
	require.NoError(t, env.heartbeats.Append(ctx, &model.HeartbeatRecord{
		WorkerID: "worker-1",
		Time:     time.Now().Add(-time.Hour).UnixMilli(),
	}))

	require.NoError(t, env.workerSvc.Sweep(ctx))
	require.NoError(t, env.workerSvc.Sweep(ctx))

	status, err := env.workerSvc.GetWorkerStatus(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, model.WorkerStatusOffline, status)
}

func TestSweep_RequestsMissingData(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()

	require.NoError(t, env.workers.Create(ctx, "worker-1", model.WorkerStatusOnline))

	require.NoError(t, env.workerSvc.Sweep(ctx))

	kinds := env.pendingKinds(t, "worker-1")
	assert.Contains(t, kinds, model.CommandSendSystemInfo)
	assert.Contains(t, kinds, model.CommandListFunctions)
}

func TestSweep_EnqueueIsIdempotent(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()

	require.NoError(t, env.workers.Create(ctx, "worker-1", model.WorkerStatusOnline))

	require.NoError(t, env.workerSvc.Sweep(ctx))
	require.NoError(t, env.workerSvc.Sweep(ctx))
	require.NoError(t, env.workerSvc.Sweep(ctx))

	pending, err := env.commands.ListPending(ctx, "worker-1")
	require.NoError(t, err)
	assert.Len(t, pending, 2, "one pending command per kind despite repeated sweeps")
}

func TestSweep_SkipsFreshData(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()

	require.NoError(t, env.workers.Create(ctx, "worker-1", model.WorkerStatusOnline))
	require.NoError(t, env.systemInfo.Save(ctx, &model.SystemInfoSnapshot{
		WorkerID:     "worker-1",
		LastReceived: time.Now().UnixMilli(),
	}))
	require.NoError(t, env.workerFuncs.Upsert(ctx, &model.WorkerFunctionList{
		WorkerID:     "worker-1",
		LastReceived: time.Now().UnixMilli(),
	}))

	require.NoError(t, env.workerSvc.Sweep(ctx))

	pending, err := env.commands.ListPending(ctx, "worker-1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSweep_RefreshesStaleData(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()

	require.NoError(t, env.workers.Create(ctx, "worker-1", model.WorkerStatusOnline))
	require.NoError(t, env.systemInfo.Save(ctx, &model.SystemInfoSnapshot{
		WorkerID:     "worker-1",
		LastReceived: time.Now().Add(-2 * time.Minute).UnixMilli(),
	}))
	require.NoError(t, env.workerFuncs.Upsert(ctx, &model.WorkerFunctionList{
		WorkerID:     "worker-1",
		LastReceived: time.Now().Add(-2 * time.Hour).UnixMilli(),
	}))

	require.NoError(t, env.workerSvc.Sweep(ctx))

	kinds := env.pendingKinds(t, "worker-1")
	assert.Contains(t, kinds, model.CommandSendSystemInfo)
	assert.Contains(t, kinds, model.CommandListFunctions)
}

func TestGetWorkersOfStatus(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()

	require.NoError(t, env.workers.Create(ctx, "on-1", model.WorkerStatusOnline))
	require.NoError(t, env.workers.Create(ctx, "on-2", model.WorkerStatusOnline))
	require.NoError(t, env.workers.Create(ctx, "off-1", model.WorkerStatusOffline))

	online, err := env.workerSvc.GetWorkersOfStatus(ctx, model.WorkerStatusOnline)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"on-1", "on-2"}, online)

	offline, err := env.workerSvc.GetWorkersOfStatus(ctx, model.WorkerStatusOffline)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"off-1"}, offline)
}
