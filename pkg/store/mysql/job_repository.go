package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	internal "anser/internal/model"
	"anser/pkg/store/mysql/model"

	"gorm.io/gorm"
)

// JobRepository handles job persistence in MySQL
type JobRepository struct {
	ds *Datastore
}

// NewJobRepository creates a new job repository
func NewJobRepository(ds *Datastore) *JobRepository {
	return &JobRepository{ds: ds}
}

// Create persists a job.
func (r *JobRepository) Create(ctx context.Context, job *internal.Job) error {
	runConfig, err := json.Marshal(job.RunConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal run config: %w", err)
	}

	row := &model.Job{
		JobID:     job.ID,
		WorkerID:  job.Target.WorkerID,
		GroupID:   job.Target.GroupID,
		RunConfig: model.JSONRaw(runConfig),
		Status:    string(job.Status),
	}
	if err := r.ds.DB(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// Get retrieves a job by ID, or nil, nil.
func (r *JobRepository) Get(ctx context.Context, jobID string) (*internal.Job, error) {
	var row model.Job
	err := r.ds.DB(ctx).Where("job_id = ?", jobID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	job := &internal.Job{
		ID: row.JobID,
		Target: internal.JobTarget{
			WorkerID: row.WorkerID,
			GroupID:  row.GroupID,
		},
		Status: internal.JobStatus(row.Status),
	}
	if len(row.RunConfig) > 0 {
		if err := json.Unmarshal(row.RunConfig, &job.RunConfig); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run config: %w", err)
		}
	}
	return job, nil
}

// UpdateStatus transitions a job's status with CAS semantics.
func (r *JobRepository) UpdateStatus(ctx context.Context, jobID string, from, to internal.JobStatus) error {
	result := r.ds.DB(ctx).Model(&model.Job{}).
		Where("job_id = ? AND status = ?", jobID, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return fmt.Errorf("failed to update job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found or invalid status transition: job_id=%s, from=%s, to=%s", jobID, from, to)
	}
	return nil
}
