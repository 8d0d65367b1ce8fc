package model

import "encoding/json"

// Heartbeat is one worker->controller liveness report. Time is unix
// milliseconds as reported by the worker; Data carries the results of
// commands the worker executed since its last report.
type Heartbeat struct {
	Time int64             `json:"time"`
	Data []HeartbeatResult `json:"data"`
}

// HeartbeatResult answers one previously delivered command.
type HeartbeatResult struct {
	CommandID string          `json:"commandId"`
	Command   CommandKind     `json:"command"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// HeartbeatRecord is the persisted, append-only audit form of a heartbeat.
type HeartbeatRecord struct {
	WorkerID string            `json:"workerId"`
	Time     int64             `json:"time"`
	Data     []HeartbeatResult `json:"data"`
}

// HeartbeatResponse carries the worker's pending command mailbox back on the
// same request.
type HeartbeatResponse struct {
	Commands []WorkerCommand `json:"commands,omitempty"`
}

// BodyIsHeartbeat checks the request body has exactly the heartbeat shape:
// the keys time and data, nothing else.
func BodyIsHeartbeat(body []byte) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return false
	}

	if len(raw) != 2 {
		return false
	}
	_, hasTime := raw["time"]
	_, hasData := raw["data"]
	return hasTime && hasData
}
