package queue

// MockQueue is a slice backed Queue that counts calls.
// Capacity 0 means unbounded.
type MockQueue[T any] struct {
	Capacity int

	EnqueueCount int
	DequeueCount int
	PeekCount    int

	items []T
}

func NewMockQueue[T any](capacity int) *MockQueue[T] {
	return &MockQueue[T]{Capacity: capacity}
}

func (m *MockQueue[T]) Enqueue(v T) bool {
	m.EnqueueCount++
	if m.Capacity > 0 && len(m.items) >= m.Capacity {
		return false
	}
	m.items = append(m.items, v)
	return true
}

func (m *MockQueue[T]) Dequeue() (T, bool) {
	m.DequeueCount++
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	v := m.items[0]
	m.items = m.items[1:]
	return v, true
}

func (m *MockQueue[T]) Peek() (T, bool) {
	m.PeekCount++
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[0], true
}

func (m *MockQueue[T]) IsEmpty() bool {
	return len(m.items) == 0
}

func (m *MockQueue[T]) UsedSlots() uint64 {
	return uint64(len(m.items))
}

func (m *MockQueue[T]) FreeSlots() uint64 {
	if m.Capacity == 0 {
		return Unbounded
	}
	return uint64(m.Capacity - len(m.items))
}
