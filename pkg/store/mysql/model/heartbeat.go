package model

import "time"

// Heartbeat MySQL model for the heartbeats table: append-only liveness
// evidence and per-worker audit log. Time is the worker-reported unix
// millisecond timestamp; Data holds the raw command results.
type Heartbeat struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkerID  string    `gorm:"column:worker_id;type:varchar(255);not null;index:idx_heartbeat_worker" json:"worker_id"`
	Time      int64     `gorm:"column:time;type:bigint;not null" json:"time"`
	Data      JSONRaw   `gorm:"column:data;type:json" json:"data"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
}

// TableName specifies the table name for Heartbeat
func (Heartbeat) TableName() string {
	return "heartbeats"
}
