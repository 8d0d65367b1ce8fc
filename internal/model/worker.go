package model

// WorkerStatus worker liveness status
type WorkerStatus string

const (
	// WorkerStatusNotRegistered is synthetic: returned for unknown worker IDs,
	// never persisted.
	WorkerStatusNotRegistered WorkerStatus = "NOT_REGISTERED"
	WorkerStatusOnline        WorkerStatus = "ONLINE"
	WorkerStatusOffline       WorkerStatus = "OFFLINE"
)

// ParseWorkerStatus maps a URL token to a queryable status. Only persisted
// statuses are addressable.
func ParseWorkerStatus(s string) (WorkerStatus, bool) {
	switch WorkerStatus(normalizeStatus(s)) {
	case WorkerStatusOnline:
		return WorkerStatusOnline, true
	case WorkerStatusOffline:
		return WorkerStatusOffline, true
	default:
		return "", false
	}
}

func normalizeStatus(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// Worker is a remote process that executes functions and reports via
// heartbeats. Workers are created on first heartbeat and never deleted.
type Worker struct {
	WorkerID string       `json:"workerId"`
	Status   WorkerStatus `json:"status"`
}

// WorkerStatusResponse is the body of GET /anser/workers/:workerId/status.
type WorkerStatusResponse struct {
	Status WorkerStatus `json:"status"`
}
