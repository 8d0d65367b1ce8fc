package model

import "time"

// Worker MySQL model for the workers table. Rows are created on first
// heartbeat and never deleted.
type Worker struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkerID  string    `gorm:"column:worker_id;type:varchar(255);not null;uniqueIndex:idx_worker_id_unique" json:"worker_id"`
	Status    string    `gorm:"column:status;type:varchar(50);not null;index:idx_worker_status" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for Worker
func (Worker) TableName() string {
	return "workers"
}
