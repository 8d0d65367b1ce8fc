package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	internal "anser/internal/model"
	"anser/pkg/function"
	"anser/pkg/store/mysql/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WorkerFunctionRepository stores the catalog each worker last reported.
type WorkerFunctionRepository struct {
	ds *Datastore
}

// NewWorkerFunctionRepository creates a new worker function repository
func NewWorkerFunctionRepository(ds *Datastore) *WorkerFunctionRepository {
	return &WorkerFunctionRepository{ds: ds}
}

// Upsert overwrites a worker's catalog wholesale.
func (r *WorkerFunctionRepository) Upsert(ctx context.Context, list *internal.WorkerFunctionList) error {
	functions, err := json.Marshal(list.Functions)
	if err != nil {
		return fmt.Errorf("failed to marshal functions: %w", err)
	}

	row := &model.WorkerFunction{
		WorkerID:     list.WorkerID,
		Functions:    model.JSONRaw(functions),
		LastReceived: list.LastReceived,
	}
	err = r.ds.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "worker_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"functions", "last_received"}),
		}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert worker functions: %w", err)
	}
	return nil
}

// Get returns a worker's last reported catalog, or nil, nil.
func (r *WorkerFunctionRepository) Get(ctx context.Context, workerID string) (*internal.WorkerFunctionList, error) {
	var row model.WorkerFunction
	err := r.ds.DB(ctx).Where("worker_id = ?", workerID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get worker functions: %w", err)
	}

	list := &internal.WorkerFunctionList{
		WorkerID:     row.WorkerID,
		LastReceived: row.LastReceived,
		Functions:    function.DescriptionMap{},
	}
	if len(row.Functions) > 0 {
		if err := json.Unmarshal(row.Functions, &list.Functions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal worker functions: %w", err)
		}
	}
	return list, nil
}
