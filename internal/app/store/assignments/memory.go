package assignmentstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/dalemusser/danahub/internal/app/assignments"
	"github.com/dalemusser/danahub/internal/domain/models"
)

// Memory is an in-process assignment collection. Every write swaps in a new
// slice built by the assignments package, so a List result handed out
// earlier is never modified afterwards.
type Memory struct {
	mu     sync.RWMutex
	list   []models.Assignment
	nextID int64
}

// NewMemory returns a store holding a copy of seed. Seed IDs must be unique.
func NewMemory(seed []models.Assignment) (*Memory, error) {
	m := &Memory{nextID: 1}
	seen := make(map[int64]struct{}, len(seed))
	for _, a := range seed {
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("duplicate assignment id %d in seed", a.ID)
		}
		seen[a.ID] = struct{}{}
		if a.ID >= m.nextID {
			m.nextID = a.ID + 1
		}
	}
	m.list = append([]models.Assignment(nil), seed...)
	return m, nil
}

func (m *Memory) List(ctx context.Context) ([]models.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Assignment(nil), m.list...), nil
}

func (m *Memory) Get(ctx context.Context, id int64) (models.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return assignments.Find(m.list, id)
}

func (m *Memory) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.nextID
	m.nextID++
	next := make([]models.Assignment, 0, len(m.list)+1)
	next = append(next, m.list...)
	m.list = append(next, a)
	return a, nil
}

func (m *Memory) Update(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := -1
	for j := range m.list {
		if m.list[j].ID == a.ID {
			i = j
			break
		}
	}
	if i < 0 {
		return models.Assignment{}, assignments.ErrNotFound
	}
	next := make([]models.Assignment, len(m.list))
	copy(next, m.list)
	next[i] = a
	m.list = next
	return a, nil
}

func (m *Memory) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, err := assignments.Remove(m.list, id)
	if err != nil {
		return err
	}
	m.list = next
	return nil
}
