package model

import "time"

// WorkerFunction MySQL model: one row per worker holding its most recently
// reported function catalog. Overwritten wholesale on each valid report.
// LastReceived is unix milliseconds.
type WorkerFunction struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkerID     string    `gorm:"column:worker_id;type:varchar(255);not null;uniqueIndex:idx_worker_function_unique" json:"worker_id"`
	Functions    JSONRaw   `gorm:"column:functions;type:json;not null" json:"functions"`
	LastReceived int64     `gorm:"column:last_received;type:bigint;not null" json:"last_received"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for WorkerFunction
func (WorkerFunction) TableName() string {
	return "worker_functions"
}
