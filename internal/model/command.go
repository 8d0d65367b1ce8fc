package model

// CommandKind discriminates controller->worker instructions.
type CommandKind string

const (
	CommandSendSystemInfo     CommandKind = "SEND_SYSTEM_INFO"
	CommandSendCaptureDevices CommandKind = "SEND_CAPTURE_DEVICES"
	CommandListFunctions      CommandKind = "LIST_FUNCTIONS"
	CommandCheckJobCanRun     CommandKind = "CHECK_JOB_CAN_RUN"
	CommandStopJob            CommandKind = "STOP_JOB"
)

// AllCommandKinds lists every declared kind; used by the dispatcher
// exhaustiveness test.
func AllCommandKinds() []CommandKind {
	return []CommandKind{
		CommandSendSystemInfo,
		CommandSendCaptureDevices,
		CommandListFunctions,
		CommandCheckJobCanRun,
		CommandStopJob,
	}
}

// WorkerCommand is one pending instruction in a worker's mailbox. It is
// redelivered on every heartbeat response until the worker acknowledges it
// with a matching result, so workers must treat each kind as idempotent.
// Only the fields relevant to Type are populated.
type WorkerCommand struct {
	ID       string      `json:"id"`
	WorkerID string      `json:"workerId"`
	Type     CommandKind `json:"type"`

	// CHECK_JOB_CAN_RUN
	JobID          string        `json:"jobId,omitempty"`
	Job            *JobRunConfig `json:"job,omitempty"`
	StartImmediate bool          `json:"startImmediate,omitempty"`
}
