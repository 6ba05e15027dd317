// Package instance provides the default Instance implementation: a
// mutex-guarded map from Region (identity) to its last-known Vertex,
// plus a termination flag. The model package never compares Regions by
// name, only by identity, so a plain pointer-keyed map is sufficient.
package instance

import (
	"sync"

	"github.com/mxvane/statecraft/pkg/model"
)

// Default is the library's default model.Instance implementation.
type Default struct {
	mu         sync.RWMutex
	current    map[*model.Region]model.Vertex
	terminated bool
}

// New constructs an empty Default instance.
func New() *Default {
	return &Default{current: make(map[*model.Region]model.Vertex)}
}

func (d *Default) SetCurrent(region *model.Region, v model.Vertex) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current[region] = v
}

func (d *Default) GetCurrent(region *model.Region) model.Vertex {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current[region]
}

func (d *Default) IsTerminated() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.terminated
}

func (d *Default) SetTerminated(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.terminated = v
}
