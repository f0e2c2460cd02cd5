package models

// Process status labels. ps reports a richer state alphabet; everything that
// is not R, S or Z collapses to StatusIdle.
const (
	StatusRunning  = "running"
	StatusSleeping = "sleeping"
	StatusZombie   = "zombie"
	StatusIdle     = "idle"
)

// Process is shared by symbolic registry records and rows parsed from the
// real process table. The two populations are never merged.
type Process struct {
	ID          uint32 `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	MemoryUsage uint64 `json:"memory_usage"` // KB
}

type ProcessList struct {
	Processes []Process `json:"processes"`
	Total     int       `json:"total"`
	Running   int       `json:"running"`
	Sleeping  int       `json:"sleeping"`
	Zombie    int       `json:"zombie"`
	Idle      int       `json:"idle"`
	Skipped   int       `json:"skipped"`
	Defaulted int       `json:"defaulted"`
}
