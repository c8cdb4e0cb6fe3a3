package registry

import (
	"sync"

	"github.com/hilite/hilite-go/lib/models/annotation"
)

// Registry is the in-memory id -> record index. It performs no tree
// mutations whatsoever; keeping it inert prevents circular coupling with the
// lifecycle controller. The mutex exists because websocket callbacks read it
// from their own goroutines.
type Registry struct {
	mu      sync.RWMutex
	records map[string]*annotation.Record
}

func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]*annotation.Record),
	}
}

func (r *Registry) Register(record *annotation.Record) {
	if record == nil || record.Id == "" {
		return
	}
	r.mu.Lock()
	r.records[record.Id] = record
	r.mu.Unlock()
}

func (r *Registry) Get(id string) *annotation.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil
	}
	return record
}

func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	delete(r.records, id)
	r.mu.Unlock()
}

// All returns the registered records in no particular order.
func (r *Registry) All() []*annotation.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*annotation.Record, 0, len(r.records))
	for _, record := range r.records {
		all = append(all, record)
	}
	return all
}

// GetByTab filters the index by tab identifier.
func (r *Registry) GetByTab(tabId string) []*annotation.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*annotation.Record
	for _, record := range r.records {
		if record.Tab.TabId == tabId {
			matched = append(matched, record)
		}
	}
	return matched
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
