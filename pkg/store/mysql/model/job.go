package model

import "time"

// Job MySQL model for the jobs table.
type Job struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID     string    `gorm:"column:job_id;type:varchar(64);not null;uniqueIndex:idx_job_id_unique" json:"job_id"`
	WorkerID  string    `gorm:"column:worker_id;type:varchar(255);index:idx_job_worker" json:"worker_id"`
	GroupID   string    `gorm:"column:group_id;type:varchar(255)" json:"group_id"`
	RunConfig JSONRaw   `gorm:"column:run_config;type:json;not null" json:"run_config"`
	Status    string    `gorm:"column:status;type:varchar(50);not null;index:idx_job_status" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for Job
func (Job) TableName() string {
	return "jobs"
}
