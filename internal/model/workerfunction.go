package model

import "anser/pkg/function"

// WorkerFunctionList is the most recent function catalog a worker reported,
// overwritten wholesale on each valid LIST_FUNCTIONS result. LastReceived is
// unix milliseconds.
type WorkerFunctionList struct {
	WorkerID     string                  `json:"workerId"`
	LastReceived int64                   `json:"lastReceived"`
	Functions    function.DescriptionMap `json:"functions"`
}
