package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/repository"
)

// Ensure MockPlayerRepository implements repository.PlayerRepository.
var _ repository.PlayerRepository = (*MockPlayerRepository)(nil)

// MockPlayerRepository is an in-memory mock of the player repository for testing.
type MockPlayerRepository struct {
	mu      sync.RWMutex
	players map[int64]*domain.Player
	nextID  int64

	// Hook functions for injecting errors
	CreateFunc            func(ctx context.Context, p *domain.Player) error
	GetByIDFunc           func(ctx context.Context, id int64) (*domain.Player, error)
	ListFunc              func(ctx context.Context, f repository.PlayerFilter, page, limit int) ([]domain.Player, int64, error)
	UpdateFunc            func(ctx context.Context, p *domain.Player) error
	DeleteFunc            func(ctx context.Context, id int64) error
	SetReportFunc         func(ctx context.Context, id int64, report string) error
	UpdateMarketValueFunc func(ctx context.Context, id int64, value int64) error
}

// NewMockPlayerRepository creates a new mock repository.
func NewMockPlayerRepository() *MockPlayerRepository {
	return &MockPlayerRepository{players: make(map[int64]*domain.Player)}
}

func (m *MockPlayerRepository) Create(ctx context.Context, p *domain.Player) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.players[p.ID] = &cp
	return nil
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func matches(p *domain.Player, f repository.PlayerFilter) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.FullName), strings.ToLower(f.Name)) {
		return false
	}
	if f.Country != "" && p.Country != f.Country {
		return false
	}
	if f.Team != "" && (p.CurrentTeam == nil || *p.CurrentTeam != f.Team) {
		return false
	}
	if f.League != "" && (p.League == nil || *p.League != f.League) {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.MinValue != nil && (p.MarketValue == nil || *p.MarketValue < *f.MinValue) {
		return false
	}
	if f.MaxValue != nil && (p.MarketValue == nil || *p.MarketValue > *f.MaxValue) {
		return false
	}
	return true
}

func (m *MockPlayerRepository) List(ctx context.Context, f repository.PlayerFilter, page, limit int) ([]domain.Player, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f, page, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := []domain.Player{}
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.players[id]; ok && matches(p, f) {
			all = append(all, *p)
		}
	}
	total := int64(len(all))

	start := (page - 1) * limit
	if start >= len(all) {
		return []domain.Player{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *MockPlayerRepository) Update(ctx context.Context, p *domain.Player) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.players[p.ID]
	if !ok {
		return domain.ErrPlayerNotFound
	}
	report := existing.ScoutingReport
	cp := *p
	cp.ScoutingReport = report
	m.players[p.ID] = &cp
	return nil
}

func (m *MockPlayerRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[id]; !ok {
		return domain.ErrPlayerNotFound
	}
	delete(m.players, id)
	return nil
}

func (m *MockPlayerRepository) SetReport(ctx context.Context, id int64, report string) error {
	if m.SetReportFunc != nil {
		return m.SetReportFunc(ctx, id, report)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return domain.ErrPlayerNotFound
	}
	p.ScoutingReport = &report
	return nil
}

func (m *MockPlayerRepository) UpdateMarketValue(ctx context.Context, id int64, value int64) error {
	if m.UpdateMarketValueFunc != nil {
		return m.UpdateMarketValueFunc(ctx, id, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return domain.ErrPlayerNotFound
	}
	p.MarketValue = &value
	return nil
}
