package mock

import (
	"context"
	"fmt"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/reportgen"
)

// Ensure MockGenerator implements reportgen.Generator.
var _ reportgen.Generator = (*MockGenerator)(nil)

// MockGenerator is a mock report generator for testing.
type MockGenerator struct {
	Calls      []*domain.Player
	GenerateFn func(ctx context.Context, p *domain.Player) (string, error)
}

// NewMockGenerator creates a new mock generator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) Generate(ctx context.Context, p *domain.Player) (string, error) {
	m.Calls = append(m.Calls, p)
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, p)
	}
	return fmt.Sprintf("Mock report for %s.", p.FullName), nil
}
