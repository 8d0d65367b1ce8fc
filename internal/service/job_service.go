package service

import (
	"context"
	"errors"
	"fmt"

	"anser/internal/model"
	"anser/pkg/interfaces"
	"anser/pkg/logger"

	"github.com/google/uuid"
)

// ErrJobNotFound indicates the referenced job does not exist.
var ErrJobNotFound = errors.New("job not found")

// JobService owns the job lifecycle. Placement never runs a job directly: it
// records the job, then puts a CHECK_JOB_CAN_RUN command in the target
// worker's mailbox and lets the heartbeat cycle deliver it.
type JobService struct {
	workers     interfaces.WorkerStore
	workerFuncs interfaces.WorkerFunctionStore
	jobs        interfaces.JobStore
	commands    interfaces.CommandStore
}

// NewJobService creates a new job service
func NewJobService(
	workers interfaces.WorkerStore,
	workerFuncs interfaces.WorkerFunctionStore,
	jobs interfaces.JobStore,
	commands interfaces.CommandStore,
) *JobService {
	return &JobService{
		workers:     workers,
		workerFuncs: workerFuncs,
		jobs:        jobs,
		commands:    commands,
	}
}

// PlaceJob requests a run of a function on a specific worker. Placement
// failures (unknown worker, function the worker never reported) come back as
// a FAILED_TO_START response without creating a job record; the error return
// is reserved for store failures.
func (s *JobService) PlaceJob(ctx context.Context, workerID string, conf *model.JobRunConfig) (*model.JobStartResponse, error) {
	worker, err := s.workers.Get(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up worker: %w", err)
	}
	if worker == nil {
		return &model.JobStartResponse{
			Status:  model.JobStatusFailedToStart,
			Details: fmt.Sprintf("worker %s is not registered", workerID),
		}, nil
	}

	list, err := s.workerFuncs.Get(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up worker functions: %w", err)
	}
	if list == nil || list.Functions[conf.FunctionID] == nil {
		return &model.JobStartResponse{
			Status:  model.JobStatusFailedToStart,
			Details: fmt.Sprintf("worker %s has not reported function %s", workerID, conf.FunctionID),
		}, nil
	}

	job := &model.Job{
		ID:        uuid.New().String(),
		Target:    model.JobTarget{WorkerID: workerID},
		RunConfig: conf,
		Status:    model.JobStatusStarting,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	err = s.commands.EnqueueJobCommand(ctx, &model.WorkerCommand{
		WorkerID:       workerID,
		Type:           model.CommandCheckJobCanRun,
		JobID:          job.ID,
		Job:            conf,
		StartImmediate: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue job command: %w", err)
	}

	logger.InfoCtx(ctx, "job %s placed on worker %s (function %s)", job.ID, workerID, conf.FunctionID)
	return &model.JobStartResponse{
		Status:  model.JobStatusStarting,
		JobID:   job.ID,
		Details: "job sent to worker for validation",
	}, nil
}

// StopJob puts a STOP_JOB command in the mailbox of the worker the job was
// placed on. Returns ErrJobNotFound for an unknown job ID.
func (s *JobService) StopJob(ctx context.Context, jobID string) (*model.JobStopResponse, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	err = s.commands.EnqueueJobCommand(ctx, &model.WorkerCommand{
		WorkerID: job.Target.WorkerID,
		Type:     model.CommandStopJob,
		JobID:    job.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue stop command: %w", err)
	}

	logger.InfoCtx(ctx, "stop requested for job %s on worker %s", job.ID, job.Target.WorkerID)
	return &model.JobStopResponse{
		JobID:   job.ID,
		Details: "stop sent to worker",
	}, nil
}

// GetJob returns a job record, nil for an unknown ID.
func (s *JobService) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	return s.jobs.Get(ctx, jobID)
}

// HandleCanRunResult receives a worker's CHECK_JOB_CAN_RUN verdict. The
// verdict is logged but the job record keeps its placement status; moving the
// lifecycle forward from worker reports is where run tracking will hook in.
func (s *JobService) HandleCanRunResult(ctx context.Context, workerID string, data *model.CanJobRunData) error {
	logger.InfoCtx(ctx, "worker %s reported job %s canRun=%t info=%q", workerID, data.JobID, data.CanRun, data.Info)
	return nil
}

// HandleStopResult receives a worker's STOP_JOB result. Logged only, same as
// HandleCanRunResult.
func (s *JobService) HandleStopResult(ctx context.Context, workerID string, data *model.CanJobRunData) error {
	logger.InfoCtx(ctx, "worker %s reported stop of job %s status=%s", workerID, data.JobID, data.Status)
	return nil
}
