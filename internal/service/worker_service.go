package service

import (
	"context"
	"fmt"
	"time"

	"anser/internal/model"
	"anser/pkg/config"
	"anser/pkg/interfaces"
	"anser/pkg/logger"
)

// WorkerService owns the worker liveness state machine:
// NOT_REGISTERED -(heartbeat)-> ONLINE -(timeout)-> OFFLINE -(heartbeat)-> ONLINE.
// There is no deregistration; workers are never deleted.
type WorkerService struct {
	workers     interfaces.WorkerStore
	heartbeats  interfaces.HeartbeatStore
	commands    interfaces.CommandStore
	systemInfo  interfaces.SystemInfoStore
	workerFuncs interfaces.WorkerFunctionStore
	state       config.StateConfig
}

// NewWorkerService creates a new worker service
func NewWorkerService(
	workers interfaces.WorkerStore,
	heartbeats interfaces.HeartbeatStore,
	commands interfaces.CommandStore,
	systemInfo interfaces.SystemInfoStore,
	workerFuncs interfaces.WorkerFunctionStore,
	state config.StateConfig,
) *WorkerService {
	return &WorkerService{
		workers:     workers,
		heartbeats:  heartbeats,
		commands:    commands,
		systemInfo:  systemInfo,
		workerFuncs: workerFuncs,
		state:       state,
	}
}

// RecordHeartbeat registers the liveness effect of a heartbeat. An unknown
// worker is inserted as ONLINE; an OFFLINE worker flips back to ONLINE and
// gets a force refresh, since its cached data is presumed stale. Returns
// whether callers must re-request system info and function list regardless
// of staleness.
func (s *WorkerService) RecordHeartbeat(ctx context.Context, workerID string) (bool, error) {
	worker, err := s.workers.Get(ctx, workerID)
	if err != nil {
		return false, fmt.Errorf("failed to look up worker: %w", err)
	}

	if worker == nil {
		logger.InfoCtx(ctx, "worker %s connected", workerID)
		if err := s.workers.Create(ctx, workerID, model.WorkerStatusOnline); err != nil {
			return false, fmt.Errorf("failed to register worker: %w", err)
		}
		return false, nil
	}

	if worker.Status == model.WorkerStatusOffline {
		logger.InfoCtx(ctx, "worker %s reconnected", workerID)
		if err := s.workers.UpdateStatus(ctx, workerID, model.WorkerStatusOffline, model.WorkerStatusOnline); err != nil {
			return false, fmt.Errorf("failed to mark worker online: %w", err)
		}
		return true, nil
	}

	return false, nil
}

// GetWorkerStatus returns a worker's status, NOT_REGISTERED if unknown.
func (s *WorkerService) GetWorkerStatus(ctx context.Context, workerID string) (model.WorkerStatus, error) {
	worker, err := s.workers.Get(ctx, workerID)
	if err != nil {
		return "", err
	}
	if worker == nil {
		return model.WorkerStatusNotRegistered, nil
	}
	return worker.Status, nil
}

// GetAllWorkers returns the IDs of every registered worker.
func (s *WorkerService) GetAllWorkers(ctx context.Context) ([]string, error) {
	return s.workers.ListIDs(ctx)
}

// GetWorkersOfStatus returns the IDs of all workers in a given status.
func (s *WorkerService) GetWorkersOfStatus(ctx context.Context, status model.WorkerStatus) ([]string, error) {
	return s.workers.ListIDsByStatus(ctx, status)
}

// GetHeartbeats returns the full heartbeat audit log of a worker.
func (s *WorkerService) GetHeartbeats(ctx context.Context, workerID string) ([]*model.HeartbeatRecord, error) {
	return s.heartbeats.ListByWorker(ctx, workerID)
}

// NeedSystemInfo reports whether a worker's resource snapshot is absent or
// older than the refresh period.
func (s *WorkerService) NeedSystemInfo(ctx context.Context, workerID string) (bool, error) {
	snap, err := s.systemInfo.Get(ctx, workerID)
	if err != nil {
		return false, err
	}
	if snap == nil {
		return true, nil
	}
	age := time.Now().UnixMilli() - snap.LastReceived
	return age >= s.state.SystemInfoRefresh.Milliseconds(), nil
}

// NeedFunctionList reports whether a worker's function catalog is absent or
// older than the refresh period.
func (s *WorkerService) NeedFunctionList(ctx context.Context, workerID string) (bool, error) {
	list, err := s.workerFuncs.Get(ctx, workerID)
	if err != nil {
		return false, err
	}
	if list == nil {
		return true, nil
	}
	age := time.Now().UnixMilli() - list.LastReceived
	return age >= s.state.FunctionListRefresh.Milliseconds(), nil
}

// Sweep runs one liveness pass: ages ONLINE workers past the disconnect
// timeout into OFFLINE and re-requests stale system info and function lists.
// Only a heartbeat ever brings a worker back ONLINE. Per-worker failures are
// logged and skipped so one bad row never aborts the pass.
func (s *WorkerService) Sweep(ctx context.Context) error {
	workers, err := s.workers.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list workers: %w", err)
	}

	now := time.Now().UnixMilli()
	for _, worker := range workers {
		if err := s.sweepWorker(ctx, worker, now); err != nil {
			logger.WarnCtx(ctx, "sweep of worker %s failed: %v", worker.WorkerID, err)
		}
	}
	return nil
}

func (s *WorkerService) sweepWorker(ctx context.Context, worker *model.Worker, now int64) error {
	last, err := s.heartbeats.Latest(ctx, worker.WorkerID)
	if err != nil {
		return err
	}

	if last != nil &&
		now-last.Time >= s.state.DisconnectTimeout.Milliseconds() &&
		worker.Status == model.WorkerStatusOnline {
		if err := s.workers.UpdateStatus(ctx, worker.WorkerID, model.WorkerStatusOnline, model.WorkerStatusOffline); err != nil {
			return err
		}
		logger.InfoCtx(ctx, "worker %s disconnected, last seen %s",
			worker.WorkerID, time.UnixMilli(last.Time).Format(time.RFC3339))
	}

	needSystemInfo, err := s.NeedSystemInfo(ctx, worker.WorkerID)
	if err != nil {
		return err
	}
	if needSystemInfo {
		if err := s.commands.EnqueueRefresh(ctx, worker.WorkerID, model.CommandSendSystemInfo); err != nil {
			return err
		}
	}

	needFunctionList, err := s.NeedFunctionList(ctx, worker.WorkerID)
	if err != nil {
		return err
	}
	if needFunctionList {
		if err := s.commands.EnqueueRefresh(ctx, worker.WorkerID, model.CommandListFunctions); err != nil {
			return err
		}
	}
	return nil
}
