package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/Apurer/order-registry/internal/domains/registry/ports"
)

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore keeps the last saved snapshot in memory, for development and tests.
type SnapshotStore struct {
	mu       sync.RWMutex
	snapshot *ports.Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Load returns a copy of the last saved snapshot.
func (s *SnapshotStore) Load(context.Context) (*ports.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, ports.ErrNoSnapshot
	}
	return cloneSnapshot(s.snapshot), nil
}

// Save replaces the stored snapshot with a copy of snapshot.
func (s *SnapshotStore) Save(_ context.Context, snapshot *ports.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = cloneSnapshot(snapshot)
	return nil
}

func cloneSnapshot(src *ports.Snapshot) *ports.Snapshot {
	if src == nil {
		return &ports.Snapshot{}
	}
	out := &ports.Snapshot{
		Persons:  make([]ports.PersonRecord, 0, len(src.Persons)),
		Products: slices.Clone(src.Products),
		Orders:   make([]ports.OrderRecord, 0, len(src.Orders)),
	}
	for _, p := range src.Persons {
		p.Tags = slices.Clone(p.Tags)
		out.Persons = append(out.Persons, p)
	}
	for _, o := range src.Orders {
		o.ProductMap = maps.Clone(o.ProductMap)
		out.Orders = append(out.Orders, o)
	}
	return out
}
