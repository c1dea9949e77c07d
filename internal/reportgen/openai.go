package reportgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/pitchside/scoutd/internal/domain"
)

const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultTimeout bounds a single generation call.
	DefaultTimeout = 60 * time.Second

	maxReportTokens = 300
)

// ErrAPIKeyNotSet is returned when constructing the client without a key.
var ErrAPIKeyNotSet = errors.New("OpenAI API key not set")

var _ Generator = (*OpenAIGenerator)(nil)

// OpenAIGenerator produces scouting reports via the OpenAI chat API.
// A failed call is terminal for the task: there is no retry here, the
// caller resubmits.
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIGenerator creates a generator with the given API key and model.
func NewOpenAIGenerator(apiKey, model string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIGenerator{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: DefaultTimeout,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, p *domain.Player) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildPrompt(p)),
		},
		MaxTokens: openai.Int(maxReportTokens),
	}

	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai: no completion choices returned")
	}

	report := strings.TrimSpace(completion.Choices[0].Message.Content)
	if report == "" {
		return "", fmt.Errorf("openai: empty completion")
	}
	return report, nil
}
