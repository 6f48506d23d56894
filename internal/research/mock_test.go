package research

import (
	"context"
	"strings"
	"sync"

	"github.com/sells-group/venturelens/pkg/perplexity"
)

// mockPerplexity implements perplexity.Client for testing. Responses are
// matched by prompt substring; unmatched prompts return fallback.
type mockPerplexity struct {
	mu        sync.Mutex
	responses map[string]string
	errors    map[string]error
	fallback  string
	prompts   []string
}

func (m *mockPerplexity) Ask(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	for sub, err := range m.errors {
		if strings.Contains(prompt, sub) {
			return "", err
		}
	}
	for sub, resp := range m.responses {
		if strings.Contains(prompt, sub) {
			return resp, nil
		}
	}
	return m.fallback, nil
}

func (m *mockPerplexity) ChatCompletion(ctx context.Context, req perplexity.ChatCompletionRequest) (*perplexity.ChatCompletionResponse, error) {
	var prompt string
	if len(req.Messages) > 0 {
		prompt = req.Messages[len(req.Messages)-1].Content
	}
	text, err := m.Ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &perplexity.ChatCompletionResponse{
		Choices: []perplexity.Choice{{Message: perplexity.Message{Role: "assistant", Content: text}}},
	}, nil
}

func (m *mockPerplexity) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *mockPerplexity) promptsContaining(sub string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.prompts {
		if strings.Contains(p, sub) {
			n++
		}
	}
	return n
}
