package msgcache

import (
	"container/list"
	"context"
	"sync"

	"github.com/amannn/next-intl-sub001/pkg/icu"
)

// DefaultMaxEntries bounds a Memory store unless WithMaxEntries says otherwise.
const DefaultMaxEntries = 10000

type entry struct {
	msg icu.Message
	key string
}

// Memory is an in-memory store with LRU eviction.
//
// Keys derive from the message source, so an entry never goes stale and
// there is no expiration: entries leave only through eviction, Delete or
// Clear.
type Memory struct {
	items    map[string]*list.Element
	eviction *list.List
	onEvict  func(key string, msg icu.Message)
	mu       sync.Mutex
	max      int
	closed   bool
}

// MemoryOption configures the in-memory store.
type MemoryOption func(*Memory)

// WithMaxEntries sets the maximum number of entries.
// When the limit is reached, the least recently used entry is evicted.
// Zero means unlimited.
// Default: DefaultMaxEntries.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) {
		m.max = max(n, 0)
	}
}

// WithEvictCallback sets a function called whenever an entry leaves the
// store: LRU eviction, deletion and clearing.
func WithEvictCallback(fn func(key string, msg icu.Message)) MemoryOption {
	return func(m *Memory) {
		m.onEvict = fn
	}
}

// NewMemory creates a new in-memory store.
//
// Example:
//
//	s := msgcache.NewMemory(msgcache.WithMaxEntries(5000))
//	defer s.Close()
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		max:      DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get retrieves a message by key and marks it as recently used.
func (m *Memory) Get(_ context.Context, key string) (icu.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	elem, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	m.eviction.MoveToFront(elem)
	return elem.Value.(*entry).msg, nil
}

// Set stores a message, evicting the least recently used entry when full.
func (m *Memory) Set(_ context.Context, key string, msg icu.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[key]; ok {
		elem.Value.(*entry).msg = msg
		m.eviction.MoveToFront(elem)
		return nil
	}

	if m.max > 0 && len(m.items) >= m.max {
		if oldest := m.eviction.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}

	m.items[key] = m.eviction.PushFront(&entry{key: key, msg: msg})
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[key]; ok {
		m.removeElement(elem)
	}
	return nil
}

// Has checks whether a key exists without touching its recency.
func (m *Memory) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false, ErrClosed
	}

	_, ok := m.items[key]
	return ok, nil
}

// Clear removes all entries.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if m.onEvict != nil {
		for elem := m.eviction.Front(); elem != nil; elem = elem.Next() {
			e := elem.Value.(*entry)
			m.onEvict(e.key, e.msg)
		}
	}

	m.items = make(map[string]*list.Element)
	m.eviction.Init()
	return nil
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close marks the store as closed and drops its entries.
// Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	m.items = nil
	m.eviction.Init()
	return nil
}

// removeElement removes an element and triggers the eviction callback.
// Caller must hold the mutex.
func (m *Memory) removeElement(elem *list.Element) {
	m.eviction.Remove(elem)
	e := elem.Value.(*entry)
	delete(m.items, e.key)

	if m.onEvict != nil {
		m.onEvict(e.key, e.msg)
	}
}

var _ Store = (*Memory)(nil)
