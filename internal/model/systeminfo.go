package model

// SystemInfo is a worker's self-reported resource snapshot. All five fields
// are required; a report missing any of them (or carrying extras) is dropped.
type SystemInfo struct {
	CPUUsagePercent float64 `json:"cpu_usage_percent"`
	RAMAvailable    float64 `json:"ram_available"`
	RAMUsed         float64 `json:"ram_used"`
	DiskCapacity    float64 `json:"disk_capacity"`
	DiskUsage       float64 `json:"disk_usage"`
}

// SystemInfoFieldNames returns the exact JSON key set of a valid report.
func SystemInfoFieldNames() []string {
	return []string{
		"cpu_usage_percent",
		"ram_available",
		"ram_used",
		"disk_capacity",
		"disk_usage",
	}
}

// SystemInfoSnapshot is the stored form: one logical row per worker,
// overwritten on each valid report. LastReceived is unix milliseconds.
type SystemInfoSnapshot struct {
	WorkerID     string     `json:"workerId"`
	LastReceived int64      `json:"lastReceived"`
	Data         SystemInfo `json:"data"`
}
