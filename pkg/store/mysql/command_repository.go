package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	internal "anser/internal/model"
	"anser/pkg/store/mysql/model"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// CommandRepository is the per-worker mailbox of pending instructions.
// Pending commands are redelivered on every drain until acknowledged.
type CommandRepository struct {
	ds *Datastore
}

// NewCommandRepository creates a new command repository
func NewCommandRepository(ds *Datastore) *CommandRepository {
	return &CommandRepository{ds: ds}
}

// RefreshDedupKey builds the uniqueness key of a parameterless refresh
// command: at most one pending command of a kind per worker.
func RefreshDedupKey(kind internal.CommandKind, workerID string) string {
	return fmt.Sprintf("%s:%s", kind, workerID)
}

// JobDedupKey builds the uniqueness key of a job-scoped command: at most one
// pending command of a kind per job.
func JobDedupKey(kind internal.CommandKind, jobID string) string {
	return fmt.Sprintf("%s:%s", kind, jobID)
}

// EnqueueRefresh inserts a parameterless refresh command for a worker unless
// one of the same kind is already pending. The conditional insert rides on
// the dedup_key unique index, so concurrent heartbeat handling and sweeping
// cannot double-enqueue.
func (r *CommandRepository) EnqueueRefresh(ctx context.Context, workerID string, kind internal.CommandKind) error {
	cmd := internal.WorkerCommand{
		ID:       uuid.New().String(),
		WorkerID: workerID,
		Type:     kind,
	}
	return r.insert(ctx, &cmd, RefreshDedupKey(kind, workerID))
}

// EnqueueJobCommand inserts a job-scoped command (CHECK_JOB_CAN_RUN,
// STOP_JOB), idempotent per kind and job.
func (r *CommandRepository) EnqueueJobCommand(ctx context.Context, cmd *internal.WorkerCommand) error {
	if cmd.ID == "" {
		cmd.ID = uuid.New().String()
	}
	return r.insert(ctx, cmd, JobDedupKey(cmd.Type, cmd.JobID))
}

func (r *CommandRepository) insert(ctx context.Context, cmd *internal.WorkerCommand, dedupKey string) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}

	row := &model.Command{
		CommandID: cmd.ID,
		WorkerID:  cmd.WorkerID,
		Type:      string(cmd.Type),
		DedupKey:  dedupKey,
		Payload:   model.JSONRaw(payload),
	}
	err = r.ds.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to enqueue command: %w", err)
	}
	return nil
}

// ListPending returns all pending commands for a worker, oldest first,
// without deleting them.
func (r *CommandRepository) ListPending(ctx context.Context, workerID string) ([]internal.WorkerCommand, error) {
	var rows []model.Command
	err := r.ds.DB(ctx).Where("worker_id = ?", workerID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending commands: %w", err)
	}

	commands := make([]internal.WorkerCommand, 0, len(rows))
	for i := range rows {
		var cmd internal.WorkerCommand
		if err := json.Unmarshal(rows[i].Payload, &cmd); err != nil {
			return nil, fmt.Errorf("failed to unmarshal command %s: %w", rows[i].CommandID, err)
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

// HasPending reports whether a command of the given kind is pending for a
// worker.
func (r *CommandRepository) HasPending(ctx context.Context, workerID string, kind internal.CommandKind) (bool, error) {
	var count int64
	err := r.ds.DB(ctx).Model(&model.Command{}).
		Where("worker_id = ? AND type = ?", workerID, string(kind)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pending command: %w", err)
	}
	return count > 0, nil
}

// Ack deletes a command by its command ID. Acknowledging an already deleted
// command is a no-op.
func (r *CommandRepository) Ack(ctx context.Context, commandID string) error {
	err := r.ds.DB(ctx).Where("command_id = ?", commandID).
		Delete(&model.Command{}).Error
	if err != nil {
		return fmt.Errorf("failed to ack command: %w", err)
	}
	return nil
}
