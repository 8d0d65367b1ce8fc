package mysql

import (
	"context"
	"fmt"

	internal "anser/internal/model"
	"anser/pkg/store/mysql/model"

	"gorm.io/gorm"
)

// WorkerRepository handles worker persistence in MySQL
type WorkerRepository struct {
	ds *Datastore
}

// NewWorkerRepository creates a new worker repository
func NewWorkerRepository(ds *Datastore) *WorkerRepository {
	return &WorkerRepository{ds: ds}
}

// Create inserts a worker with the given status.
func (r *WorkerRepository) Create(ctx context.Context, workerID string, status internal.WorkerStatus) error {
	row := &model.Worker{
		WorkerID: workerID,
		Status:   string(status),
	}
	if err := r.ds.DB(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

// Get retrieves a worker by its worker ID. Returns nil, nil when absent.
func (r *WorkerRepository) Get(ctx context.Context, workerID string) (*internal.Worker, error) {
	var row model.Worker
	err := r.ds.DB(ctx).Where("worker_id = ?", workerID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return &internal.Worker{
		WorkerID: row.WorkerID,
		Status:   internal.WorkerStatus(row.Status),
	}, nil
}

// List retrieves all workers.
func (r *WorkerRepository) List(ctx context.Context) ([]*internal.Worker, error) {
	var rows []model.Worker
	if err := r.ds.DB(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	workers := make([]*internal.Worker, 0, len(rows))
	for _, row := range rows {
		workers = append(workers, &internal.Worker{
			WorkerID: row.WorkerID,
			Status:   internal.WorkerStatus(row.Status),
		})
	}
	return workers, nil
}

// ListIDs retrieves the IDs of all workers.
func (r *WorkerRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.ds.DB(ctx).Model(&model.Worker{}).Pluck("worker_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list worker ids: %w", err)
	}
	return ids, nil
}

// ListIDsByStatus retrieves the IDs of all workers in a given status.
func (r *WorkerRepository) ListIDsByStatus(ctx context.Context, status internal.WorkerStatus) ([]string, error) {
	var ids []string
	err := r.ds.DB(ctx).Model(&model.Worker{}).
		Where("status = ?", string(status)).
		Pluck("worker_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list worker ids by status: %w", err)
	}
	return ids, nil
}

// UpdateStatus transitions a worker's status with CAS semantics: the update
// applies only while the worker is still in the from status, so concurrent
// heartbeat handling and sweeping never fight over a row. A lost race is not
// an error.
func (r *WorkerRepository) UpdateStatus(ctx context.Context, workerID string, from, to internal.WorkerStatus) error {
	err := r.ds.DB(ctx).Model(&model.Worker{}).
		Where("worker_id = ? AND status = ?", workerID, string(from)).
		Update("status", string(to)).Error
	if err != nil {
		return fmt.Errorf("failed to update worker status: %w", err)
	}
	return nil
}
