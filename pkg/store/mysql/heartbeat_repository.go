package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	internal "anser/internal/model"
	"anser/pkg/store/mysql/model"

	"gorm.io/gorm"
)

// HeartbeatRepository handles heartbeat persistence in MySQL
type HeartbeatRepository struct {
	ds *Datastore
}

// NewHeartbeatRepository creates a new heartbeat repository
func NewHeartbeatRepository(ds *Datastore) *HeartbeatRepository {
	return &HeartbeatRepository{ds: ds}
}

// Append stores one heartbeat record. Records are append-only.
func (r *HeartbeatRepository) Append(ctx context.Context, rec *internal.HeartbeatRecord) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal heartbeat data: %w", err)
	}

	row := &model.Heartbeat{
		WorkerID: rec.WorkerID,
		Time:     rec.Time,
		Data:     model.JSONRaw(data),
	}
	if err := r.ds.DB(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to append heartbeat: %w", err)
	}
	return nil
}

// Latest returns the most recent heartbeat for a worker, or nil, nil.
func (r *HeartbeatRepository) Latest(ctx context.Context, workerID string) (*internal.HeartbeatRecord, error) {
	var row model.Heartbeat
	err := r.ds.DB(ctx).Where("worker_id = ?", workerID).
		Order("id DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest heartbeat: %w", err)
	}
	return rowToHeartbeat(&row)
}

// ListByWorker returns all heartbeats for a worker, oldest first.
func (r *HeartbeatRepository) ListByWorker(ctx context.Context, workerID string) ([]*internal.HeartbeatRecord, error) {
	var rows []model.Heartbeat
	err := r.ds.DB(ctx).Where("worker_id = ?", workerID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list heartbeats: %w", err)
	}

	records := make([]*internal.HeartbeatRecord, 0, len(rows))
	for i := range rows {
		rec, err := rowToHeartbeat(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func rowToHeartbeat(row *model.Heartbeat) (*internal.HeartbeatRecord, error) {
	rec := &internal.HeartbeatRecord{
		WorkerID: row.WorkerID,
		Time:     row.Time,
		Data:     []internal.HeartbeatResult{},
	}
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, &rec.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal heartbeat data: %w", err)
		}
	}
	return rec, nil
}
