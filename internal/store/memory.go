package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AngelCh415/bookings-analysis/internal/models"
)

type Dataset struct {
	ID       string
	Name     string
	Table    models.Table
	LoadedAt time.Time
}

// MemoryStore: datasets transitorios por ID; expiran tras ttl y se descarta
// el más viejo al llegar a maxSets.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string]*Dataset
	ttl  time.Duration
	max  int
	now  func() time.Time

	OnChange func(n int) // hook para el gauge de datasets activos
}

func NewMemoryStore(ttl time.Duration, maxSets int) *MemoryStore {
	return &MemoryStore{
		sets: make(map[string]*Dataset),
		ttl:  ttl,
		max:  maxSets,
		now:  time.Now,
	}
}

func (s *MemoryStore) Put(name string, t models.Table) string {
	ds := &Dataset{ID: uuid.NewString(), Name: name, Table: t}
	s.mu.Lock()
	defer s.mu.Unlock()
	ds.LoadedAt = s.now()
	s.evictLocked()
	for s.max > 0 && len(s.sets) >= s.max {
		s.dropOldestLocked()
	}
	s.sets[ds.ID] = ds
	s.notifyLocked()
	return ds.ID
}

func (s *MemoryStore) Get(id string) (Dataset, bool) {
	s.mu.RLock()
	ds, ok := s.sets[id]
	expired := ok && s.expired(ds)
	s.mu.RUnlock()
	if !ok {
		return Dataset{}, false
	}
	if expired {
		s.Delete(id)
		return Dataset{}, false
	}
	return *ds, true
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sets[id]; ok {
		delete(s.sets, id)
		s.notifyLocked()
	}
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets)
}

func (s *MemoryStore) expired(ds *Dataset) bool {
	return s.ttl > 0 && s.now().Sub(ds.LoadedAt) > s.ttl
}

func (s *MemoryStore) evictLocked() {
	for id, ds := range s.sets {
		if s.expired(ds) {
			delete(s.sets, id)
		}
	}
}

func (s *MemoryStore) dropOldestLocked() {
	var oldest *Dataset
	for _, ds := range s.sets {
		if oldest == nil || ds.LoadedAt.Before(oldest.LoadedAt) {
			oldest = ds
		}
	}
	if oldest != nil {
		delete(s.sets, oldest.ID)
	}
}

func (s *MemoryStore) notifyLocked() {
	if s.OnChange != nil {
		s.OnChange(len(s.sets))
	}
}
