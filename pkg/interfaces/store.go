// Package interfaces declares the store contracts the service layer consumes.
// The MySQL and Redis repositories satisfy them; tests substitute fakes.
package interfaces

import (
	"context"

	"anser/internal/model"
)

// WorkerStore persists worker identity and liveness status.
type WorkerStore interface {
	Create(ctx context.Context, workerID string, status model.WorkerStatus) error
	// Get returns nil, nil for an unknown worker.
	Get(ctx context.Context, workerID string) (*model.Worker, error)
	List(ctx context.Context) ([]*model.Worker, error)
	ListIDs(ctx context.Context) ([]string, error)
	ListIDsByStatus(ctx context.Context, status model.WorkerStatus) ([]string, error)
	// UpdateStatus applies only while the worker is still in from; losing the
	// race is not an error.
	UpdateStatus(ctx context.Context, workerID string, from, to model.WorkerStatus) error
}

// HeartbeatStore is the append-only heartbeat audit log.
type HeartbeatStore interface {
	Append(ctx context.Context, rec *model.HeartbeatRecord) error
	Latest(ctx context.Context, workerID string) (*model.HeartbeatRecord, error)
	ListByWorker(ctx context.Context, workerID string) ([]*model.HeartbeatRecord, error)
}

// CommandStore is the per-worker mailbox of pending instructions.
type CommandStore interface {
	// EnqueueRefresh is idempotent per kind and worker.
	EnqueueRefresh(ctx context.Context, workerID string, kind model.CommandKind) error
	// EnqueueJobCommand is idempotent per kind and job.
	EnqueueJobCommand(ctx context.Context, cmd *model.WorkerCommand) error
	ListPending(ctx context.Context, workerID string) ([]model.WorkerCommand, error)
	HasPending(ctx context.Context, workerID string, kind model.CommandKind) (bool, error)
	Ack(ctx context.Context, commandID string) error
}

// WorkerFunctionStore holds the catalog each worker last reported.
type WorkerFunctionStore interface {
	Upsert(ctx context.Context, list *model.WorkerFunctionList) error
	Get(ctx context.Context, workerID string) (*model.WorkerFunctionList, error)
}

// SystemInfoStore holds the latest resource snapshot per worker.
type SystemInfoStore interface {
	Save(ctx context.Context, snap *model.SystemInfoSnapshot) error
	Get(ctx context.Context, workerID string) (*model.SystemInfoSnapshot, error)
}

// JobStore persists job records.
type JobStore interface {
	Create(ctx context.Context, job *model.Job) error
	Get(ctx context.Context, jobID string) (*model.Job, error)
	UpdateStatus(ctx context.Context, jobID string, from, to model.JobStatus) error
}
