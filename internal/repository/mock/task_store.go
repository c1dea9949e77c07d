package mock

import (
	"context"
	"sync"
	"time"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/repository"
)

// Ensure MockTaskStatusStore implements repository.TaskStatusStore.
var _ repository.TaskStatusStore = (*MockTaskStatusStore)(nil)

// MockTaskStatusStore is an in-memory task status cache for testing.
// TTLs are remembered per put so tests can assert on them, but expiry is
// only honored when Now is set.
type MockTaskStatusStore struct {
	mu      sync.RWMutex
	records map[string]*domain.TaskRecord
	expiry  map[string]time.Time
	TTLs    map[string]time.Duration

	// Now, when non-nil, is consulted on Get to simulate expiry.
	Now func() time.Time

	PutFunc func(ctx context.Context, rec *domain.TaskRecord, ttl time.Duration) error
	GetFunc func(ctx context.Context, taskID string) (*domain.TaskRecord, error)
}

// NewMockTaskStatusStore creates a new mock status store.
func NewMockTaskStatusStore() *MockTaskStatusStore {
	return &MockTaskStatusStore{
		records: make(map[string]*domain.TaskRecord),
		expiry:  make(map[string]time.Time),
		TTLs:    make(map[string]time.Duration),
	}
}

func (m *MockTaskStatusStore) Put(ctx context.Context, rec *domain.TaskRecord, ttl time.Duration) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, rec, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.records[rec.TaskID] = &cp
	m.TTLs[rec.TaskID] = ttl
	if m.Now != nil {
		m.expiry[rec.TaskID] = m.Now().Add(ttl)
	}
	return nil
}

func (m *MockTaskStatusStore) Get(ctx context.Context, taskID string) (*domain.TaskRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, taskID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if m.Now != nil {
		if exp, tracked := m.expiry[taskID]; tracked && !m.Now().Before(exp) {
			return nil, domain.ErrTaskNotFound
		}
	}
	cp := *rec
	return &cp, nil
}

// Ensure MockGuardStore implements repository.GuardStore.
var _ repository.GuardStore = (*MockGuardStore)(nil)

// MockGuardStore is an in-memory one-shot key store for testing.
type MockGuardStore struct {
	mu       sync.Mutex
	acquired map[string]bool

	AcquireFunc func(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseFunc func(ctx context.Context, key string) error
}

// NewMockGuardStore creates a new mock guard store.
func NewMockGuardStore() *MockGuardStore {
	return &MockGuardStore{acquired: make(map[string]bool)}
}

func (m *MockGuardStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, key, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.acquired[key] {
		return false, nil
	}
	m.acquired[key] = true
	return true, nil
}

func (m *MockGuardStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.acquired, key)
	return nil
}
