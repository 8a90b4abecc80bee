package classes

import (
	"context"
	"sync"
)

// NewMemoryClassRepository constructs an in-memory class repository.
func NewMemoryClassRepository() ClassRepository {
	return &memoryClassRepository{
		byName: make(map[string]*ClassRecord),
	}
}

type memoryClassRepository struct {
	mu     sync.RWMutex
	byName map[string]*ClassRecord
	order  []string
}

func (m *memoryClassRepository) Create(_ context.Context, record *ClassRecord) (*ClassRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneRecord(record)
	if _, exists := m.byName[cloned.Name]; !exists {
		m.order = append(m.order, cloned.Name)
	}
	m.byName[cloned.Name] = cloned
	return cloneRecord(cloned), nil
}

func (m *memoryClassRepository) GetByName(_ context.Context, name string) (*ClassRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byName[canonicalName(name)]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_class", Key: name}
	}
	return cloneRecord(record), nil
}

// List returns records in insertion order.
func (m *memoryClassRepository) List(_ context.Context) ([]*ClassRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*ClassRecord, 0, len(m.order))
	for _, name := range m.order {
		records = append(records, cloneRecord(m.byName[name]))
	}
	return records, nil
}
