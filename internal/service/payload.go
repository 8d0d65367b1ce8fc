package service

import (
	"encoding/json"

	"anser/internal/model"
	"anser/pkg/function"
)

// parseSystemInfo validates and decodes a SEND_SYSTEM_INFO result payload.
// The object must carry exactly the expected keys and every value must be a
// number; anything else is dropped.
func parseSystemInfo(raw json.RawMessage) (*model.SystemInfo, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}

	names := model.SystemInfoFieldNames()
	if len(fields) != len(names) {
		return nil, false
	}
	for _, name := range names {
		value, ok := fields[name]
		if !ok {
			return nil, false
		}
		var n float64
		if err := json.Unmarshal(value, &n); err != nil {
			return nil, false
		}
	}

	var info model.SystemInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, false
	}
	return &info, true
}

// parseFunctionList validates and decodes a LIST_FUNCTIONS result payload: a
// mapping of function ID to description, each description with exactly the
// expected keys. One malformed entry drops the whole report. Stored
// descriptions are re-keyed by their derived structural identity rather than
// the reported key.
func parseFunctionList(raw json.RawMessage) (function.DescriptionMap, bool) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}

	funcs := make(function.DescriptionMap, len(entries))
	for _, entry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil {
			return nil, false
		}
		names := function.DescriptionFieldNames()
		if len(fields) != len(names) {
			return nil, false
		}
		for _, name := range names {
			if _, ok := fields[name]; !ok {
				return nil, false
			}
		}

		var desc function.Description
		if err := json.Unmarshal(entry, &desc); err != nil {
			return nil, false
		}
		funcs[function.IDFromDescription(&desc)] = &desc
	}
	return funcs, true
}

// parseJobResult decodes a CHECK_JOB_CAN_RUN or STOP_JOB result payload. Both
// the jobId and canRun keys must be present; a missing canRun cannot be told
// apart from a negative verdict once decoded.
func parseJobResult(raw json.RawMessage) (*model.CanJobRunData, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	for _, key := range []string{"jobId", "canRun"} {
		if _, ok := fields[key]; !ok {
			return nil, false
		}
	}

	var data model.CanJobRunData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false
	}
	if data.JobID == "" {
		return nil, false
	}
	return &data, true
}
