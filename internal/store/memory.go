package store

import (
	"sync"

	"deliverytrack/internal/apperr"
)

// Memory is the transient engine: a process-lifetime slice guarded by a
// mutex. Data is lost on exit.
type Memory[T Record[T]] struct {
	kind   string
	mu     sync.Mutex
	items  []T
	nextID int
}

func NewMemory[T Record[T]](kind string) *Memory[T] {
	return &Memory[T]{kind: kind, nextID: startID}
}

func (m *Memory[T]) Create(item T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.Key() == 0 {
		item = item.WithKey(m.nextID)
		m.nextID++
	} else {
		for _, it := range m.items {
			if it.Key() == item.Key() {
				var zero T
				return zero, apperr.AlreadyExists("%s %d", m.kind, item.Key())
			}
		}
		if item.Key() >= m.nextID {
			m.nextID = item.Key() + 1
		}
	}

	m.items = append(m.items, item)
	return item, nil
}

func (m *Memory[T]) Get(id int) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, it := range m.items {
		if it.Key() == id {
			return it, nil
		}
	}
	var zero T
	return zero, apperr.NotFound("%s %d", m.kind, id)
}

func (m *Memory[T]) First(pred func(T) bool) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, it := range m.items {
		if pred == nil || pred(it) {
			return it, nil
		}
	}
	var zero T
	return zero, apperr.NotFound("no %s matches the filter", m.kind)
}

func (m *Memory[T]) List(pred func(T) bool) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]T, 0, len(m.items))
	for _, it := range m.items {
		if pred == nil || pred(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *Memory[T]) Update(item T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, it := range m.items {
		if it.Key() == item.Key() {
			m.items[i] = item
			return nil
		}
	}
	return apperr.NotFound("%s %d", m.kind, item.Key())
}

func (m *Memory[T]) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, it := range m.items {
		if it.Key() == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("%s %d", m.kind, id)
}

func (m *Memory[T]) DeleteAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil
	return nil
}
