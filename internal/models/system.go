package models

type SystemInfo struct {
	OSName     string `json:"os_name"`
	Version    string `json:"version"`
	KernelType string `json:"kernel_type"`
}

func DefaultSystemInfo() SystemInfo {
	return SystemInfo{
		OSName:     "Ubuntu 24.04 LTS",
		Version:    "PitterOS Edition",
		KernelType: "Linux (via WSL)",
	}
}

// MemoryStats describes the WSL guest, in KB.
type MemoryStats struct {
	Total        uint64  `json:"total"`
	Used         uint64  `json:"used"`
	Free         uint64  `json:"free"`
	Available    uint64  `json:"available"`
	UsagePercent float64 `json:"usage_percent"`
	SwapTotal    uint64  `json:"swap_total"`
	SwapUsed     uint64  `json:"swap_used"`
}
