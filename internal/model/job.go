package model

import (
	"encoding/json"
	"fmt"

	"anser/pkg/function"
)

// JobStatus job lifecycle status
type JobStatus string

const (
	JobStatusUnknown       JobStatus = "UNKNOWN"
	JobStatusQueued        JobStatus = "QUEUED"
	JobStatusStarting      JobStatus = "STARTING"
	JobStatusFailedToStart JobStatus = "FAILED_TO_START"
	JobStatusRunning       JobStatus = "RUNNING"
	JobStatusFailed        JobStatus = "FAILED"
	JobStatusStopped       JobStatus = "STOPPED"
	JobStatusCompleted     JobStatus = "COMPLETED"
)

// JobTarget addresses where a job runs. GroupID is accepted on the wire but
// group placement has no endpoint yet.
type JobTarget struct {
	WorkerID string `json:"workerId,omitempty"`
	GroupID  string `json:"groupId,omitempty"`
}

// Job is one requested instance of a function on a target.
type Job struct {
	ID        string        `json:"id"`
	Target    JobTarget     `json:"target"`
	RunConfig *JobRunConfig `json:"runConfig"`
	Status    JobStatus     `json:"status"`
}

// JobRunConfig describes how to run a function: which function, its config
// values, and the video streams wired to its ports.
type JobRunConfig struct {
	FunctionID     string                       `json:"functionId"`
	FunctionConfig function.RunConfig           `json:"functionConfig"`
	Inputs         map[string]*function.VideoIO `json:"inputs"`
	Outputs        map[string]*function.VideoIO `json:"outputs"`
}

// GetConfigByID returns a config value by field ID.
func (c *JobRunConfig) GetConfigByID(id string) (interface{}, bool) {
	v, ok := c.FunctionConfig[id]
	return v, ok
}

// GetInputByID returns an input port by ID.
func (c *JobRunConfig) GetInputByID(id string) *function.VideoIO {
	return c.Inputs[id]
}

// GetOutputByID returns an output port by ID.
func (c *JobRunConfig) GetOutputByID(id string) *function.VideoIO {
	return c.Outputs[id]
}

// BodyIsJobRunConfig checks the request body has exactly the run config
// shape: functionId, functionConfig, inputs, outputs.
func BodyIsJobRunConfig(body []byte) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return false
	}

	if len(raw) != 4 {
		return false
	}
	for _, key := range []string{"functionId", "functionConfig", "inputs", "outputs"} {
		if _, ok := raw[key]; !ok {
			return false
		}
	}
	return true
}

// ParseJobRunConfig decodes and validates a run config. Input ports may be
// adaptive ("any"); output ports are promoted to output strictness and fail
// if either field is "any".
func ParseJobRunConfig(body []byte) (*JobRunConfig, error) {
	var conf JobRunConfig
	if err := json.Unmarshal(body, &conf); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}

	for id, out := range conf.Outputs {
		if out == nil {
			return nil, fmt.Errorf("output %s is empty", id)
		}
		if err := out.MakeOutput(); err != nil {
			return nil, err
		}
	}

	return &conf, nil
}

// JobStartResponse is the result of a job placement request.
type JobStartResponse struct {
	Status  JobStatus `json:"status"`
	JobID   string    `json:"jobId,omitempty"`
	Details string    `json:"details"`
}

// JobStopResponse is the result of a stop request.
type JobStopResponse struct {
	JobID   string `json:"jobId"`
	Details string `json:"details"`
}

// CanJobRunData is a worker's answer to CHECK_JOB_CAN_RUN.
type CanJobRunData struct {
	JobID  string    `json:"jobId"`
	CanRun bool      `json:"canRun"`
	Info   string    `json:"info,omitempty"`
	Status JobStatus `json:"status,omitempty"`
}
