package mock

import (
	"context"
	"sync"
	"time"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/repository"
)

// Ensure MockUserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*MockUserRepository)(nil)

// MockUserRepository is an in-memory mock of the user repository for testing.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[string]*domain.User // by username
	nextID int64

	CreateFunc        func(ctx context.Context, u *domain.User) error
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
}

// NewMockUserRepository creates a new mock repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.ID = m.nextID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	cp := *u
	m.users[u.Username] = &cp
	return nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
