package service

import (
	"context"
	"fmt"
	"time"

	"anser/internal/model"
	"anser/pkg/interfaces"
	"anser/pkg/logger"
)

// HeartbeatService processes heartbeat calls end to end: liveness update,
// audit append, command result intake, refresh scheduling, and finally the
// drain of the pending mailbox back to the worker. Commands are delivered
// at least once: a pending command rides every heartbeat response until the
// worker acknowledges it with a result.
type HeartbeatService struct {
	workers     *WorkerService
	jobs        *JobService
	heartbeats  interfaces.HeartbeatStore
	commands    interfaces.CommandStore
	systemInfo  interfaces.SystemInfoStore
	workerFuncs interfaces.WorkerFunctionStore
}

// NewHeartbeatService creates a new heartbeat service
func NewHeartbeatService(
	workers *WorkerService,
	jobs *JobService,
	heartbeats interfaces.HeartbeatStore,
	commands interfaces.CommandStore,
	systemInfo interfaces.SystemInfoStore,
	workerFuncs interfaces.WorkerFunctionStore,
) *HeartbeatService {
	return &HeartbeatService{
		workers:     workers,
		jobs:        jobs,
		heartbeats:  heartbeats,
		commands:    commands,
		systemInfo:  systemInfo,
		workerFuncs: workerFuncs,
	}
}

// AddHeartbeat handles one heartbeat from a worker and returns the commands
// the worker should execute next. Command results are processed in request
// order; each is acknowledged before its payload is inspected, so a result
// with a garbage payload still retires its command and the refresh machinery
// re-requests the data later.
func (s *HeartbeatService) AddHeartbeat(ctx context.Context, workerID string, hb *model.Heartbeat) (*model.HeartbeatResponse, error) {
	forceRefresh, err := s.workers.RecordHeartbeat(ctx, workerID)
	if err != nil {
		return nil, err
	}

	if err := s.heartbeats.Append(ctx, &model.HeartbeatRecord{
		WorkerID: workerID,
		Time:     hb.Time,
		Data:     hb.Data,
	}); err != nil {
		return nil, fmt.Errorf("failed to record heartbeat: %w", err)
	}

	for _, result := range hb.Data {
		if err := s.commands.Ack(ctx, result.CommandID); err != nil {
			logger.WarnCtx(ctx, "failed to ack command %s from worker %s: %v", result.CommandID, workerID, err)
		}
		s.handleResult(ctx, workerID, result)
	}

	if err := s.enqueueRefreshes(ctx, workerID, forceRefresh); err != nil {
		return nil, err
	}

	pending, err := s.commands.ListPending(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending commands: %w", err)
	}
	return &model.HeartbeatResponse{Commands: pending}, nil
}

// handleResult routes one command result to its consumer. Invalid payloads
// are dropped without failing the heartbeat.
func (s *HeartbeatService) handleResult(ctx context.Context, workerID string, result model.HeartbeatResult) {
	switch result.Command {
	case model.CommandSendSystemInfo:
		info, ok := parseSystemInfo(result.Data)
		if !ok {
			logger.DebugCtx(ctx, "dropping malformed system info from worker %s", workerID)
			return
		}
		snap := &model.SystemInfoSnapshot{
			WorkerID:     workerID,
			LastReceived: time.Now().UnixMilli(),
			Data:         *info,
		}
		if err := s.systemInfo.Save(ctx, snap); err != nil {
			logger.WarnCtx(ctx, "failed to save system info for worker %s: %v", workerID, err)
		}

	case model.CommandListFunctions:
		funcs, ok := parseFunctionList(result.Data)
		if !ok {
			logger.DebugCtx(ctx, "dropping malformed function list from worker %s", workerID)
			return
		}
		list := &model.WorkerFunctionList{
			WorkerID:     workerID,
			LastReceived: time.Now().UnixMilli(),
			Functions:    funcs,
		}
		if err := s.workerFuncs.Upsert(ctx, list); err != nil {
			logger.WarnCtx(ctx, "failed to save function list for worker %s: %v", workerID, err)
		}

	case model.CommandCheckJobCanRun:
		data, ok := parseJobResult(result.Data)
		if !ok {
			logger.DebugCtx(ctx, "dropping malformed can-run result from worker %s", workerID)
			return
		}
		if err := s.jobs.HandleCanRunResult(ctx, workerID, data); err != nil {
			logger.WarnCtx(ctx, "failed to handle can-run result for job %s: %v", data.JobID, err)
		}

	case model.CommandStopJob:
		data, ok := parseJobResult(result.Data)
		if !ok {
			logger.DebugCtx(ctx, "dropping malformed stop result from worker %s", workerID)
			return
		}
		if err := s.jobs.HandleStopResult(ctx, workerID, data); err != nil {
			logger.WarnCtx(ctx, "failed to handle stop result for job %s: %v", data.JobID, err)
		}

	case model.CommandSendCaptureDevices:
		// Accepted for forward compatibility; nothing consumes device lists yet.
		logger.DebugCtx(ctx, "ignoring capture device report from worker %s", workerID)

	default:
		logger.DebugCtx(ctx, "dropping result for unknown command kind %q from worker %s", result.Command, workerID)
	}
}

// enqueueRefreshes schedules data re-requests before the mailbox drain, so a
// reconnecting worker picks its refresh commands up on the same response.
func (s *HeartbeatService) enqueueRefreshes(ctx context.Context, workerID string, force bool) error {
	needSystemInfo := force
	if !needSystemInfo {
		var err error
		needSystemInfo, err = s.workers.NeedSystemInfo(ctx, workerID)
		if err != nil {
			return err
		}
	}
	if needSystemInfo {
		if err := s.commands.EnqueueRefresh(ctx, workerID, model.CommandSendSystemInfo); err != nil {
			return fmt.Errorf("failed to request system info: %w", err)
		}
	}

	needFunctionList := force
	if !needFunctionList {
		var err error
		needFunctionList, err = s.workers.NeedFunctionList(ctx, workerID)
		if err != nil {
			return err
		}
	}
	if needFunctionList {
		if err := s.commands.EnqueueRefresh(ctx, workerID, model.CommandListFunctions); err != nil {
			return fmt.Errorf("failed to request function list: %w", err)
		}
	}
	return nil
}
