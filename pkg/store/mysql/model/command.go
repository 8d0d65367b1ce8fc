package model

import "time"

// Command MySQL model for the pending command mailbox. DedupKey carries the
// uniqueness that makes enqueue-if-absent atomic: refresh commands key on
// kind+worker, job commands key on kind+job. A row lives until the worker's
// matching result is acknowledged.
type Command struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CommandID string    `gorm:"column:command_id;type:varchar(64);not null;uniqueIndex:idx_command_id_unique" json:"command_id"`
	WorkerID  string    `gorm:"column:worker_id;type:varchar(255);not null;index:idx_command_worker" json:"worker_id"`
	Type      string    `gorm:"column:type;type:varchar(50);not null" json:"type"`
	DedupKey  string    `gorm:"column:dedup_key;type:varchar(512);not null;uniqueIndex:idx_command_dedup_unique" json:"dedup_key"`
	Payload   JSONRaw   `gorm:"column:payload;type:json;not null" json:"payload"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
}

// TableName specifies the table name for Command
func (Command) TableName() string {
	return "commands"
}
