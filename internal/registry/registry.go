// Package registry keeps symbolic process records. They are bookkeeping
// only and have no relation to processes running inside WSL.
package registry

import (
	"sync"

	"github.com/prabalesh/wsltop/internal/models"
)

// PlaceholderMemory is the memory usage reported for every symbolic record.
const PlaceholderMemory uint64 = 1024

// Registry is an append-only list plus the counter handing out identifiers.
// Both sit behind one mutex.
type Registry struct {
	mu        sync.Mutex
	processes []models.Process
	nextID    uint32
}

func New() *Registry {
	return &Registry{nextID: 1}
}

// Create records a new symbolic process and returns a copy of it.
func (r *Registry) Create(name string) models.Process {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := models.Process{
		ID:          r.nextID,
		Name:        name,
		Status:      models.StatusRunning,
		MemoryUsage: PlaceholderMemory,
	}
	r.nextID++
	r.processes = append(r.processes, p)

	return p
}

// List returns the records in creation order.
func (r *Registry) List() []models.Process {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Process, len(r.processes))
	copy(out, r.processes)
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.processes)
}
