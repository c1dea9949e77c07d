package reportgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchside/scoutd/internal/domain"
)

// Generator produces free-text scouting content from player attributes.
// It is treated as an opaque collaborator: attributes in, text or error out.
type Generator interface {
	Generate(ctx context.Context, p *domain.Player) (string, error)
}

// TemplateGenerator is a deterministic fallback used when no API key is
// configured. It keeps the async pipeline exercisable without an upstream.
type TemplateGenerator struct{}

// NewTemplateGenerator creates the fallback generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func (g *TemplateGenerator) Generate(ctx context.Context, p *domain.Player) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Scouting report for %s (%s, age %d). ", p.FullName, p.Country, p.Age)

	switch p.Status {
	case domain.StatusActive:
		b.WriteString("Currently active")
		if p.CurrentTeam != nil {
			fmt.Fprintf(&b, " at %s", *p.CurrentTeam)
		}
		if p.League != nil {
			fmt.Fprintf(&b, " in %s", *p.League)
		}
		b.WriteString(". ")
	case domain.StatusFreeAgent:
		b.WriteString("Available as a free agent. ")
	case domain.StatusRetired:
		b.WriteString("Retired from professional play. ")
	}

	if p.MarketValue != nil {
		fmt.Fprintf(&b, "Estimated market value $%d. ", *p.MarketValue)
	}
	b.WriteString("Shows solid fundamentals and consistent positioning; recommended for continued observation.")

	return b.String(), nil
}

// buildPrompt is shared by generator implementations.
func buildPrompt(p *domain.Player) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short, professional football scouting report for a player named %s. ", p.FullName)
	fmt.Fprintf(&b, "Country: %s. Age: %d. Status: %s. ", p.Country, p.Age, p.Status)
	if p.CurrentTeam != nil {
		fmt.Fprintf(&b, "Team: %s. ", *p.CurrentTeam)
	}
	if p.League != nil {
		fmt.Fprintf(&b, "League: %s. ", *p.League)
	}
	if p.MarketValue != nil {
		fmt.Fprintf(&b, "Market value: $%d. ", *p.MarketValue)
	}
	b.WriteString("Focus on strengths and potential. Keep it under 100 words.")
	return b.String()
}
