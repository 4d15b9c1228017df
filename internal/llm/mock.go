package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockResponse is one canned answer for MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider serves queued responses first. Once the queue is empty it
// asks Respond, and without Respond it reports the provider unavailable.
// Every request is recorded in Calls.
type MockProvider struct {
	// Respond answers requests the queue cannot.
	Respond func(Request) MockResponse

	mu    sync.Mutex
	queue []MockResponse
	Calls []Request
}

// NewMockProvider queues responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// NewOfflineProvider answers every request with a schema-shaped reply
// that quotes the learner's last message. It is the "mock" provider
// setting: the whole model path runs without a network.
func NewOfflineProvider() *MockProvider {
	return &MockProvider{Respond: offlineReply}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	var (
		next MockResponse
		ok   bool
	)
	if len(m.queue) > 0 {
		next, m.queue, ok = m.queue[0], m.queue[1:], true
	}
	respond := m.Respond
	m.mu.Unlock()

	if !ok {
		if respond == nil {
			return nil, &ErrProviderUnavailable{}
		}
		next = respond(req)
	}
	if next.Err != nil {
		return nil, next.Err
	}
	if next.Usage == (Usage{}) {
		next.Usage = estimateUsage(req, next.Content)
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// CallCount reports how many requests were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// estimateUsage counts roughly four characters per token.
func estimateUsage(req Request, out json.RawMessage) Usage {
	in := len(req.System)
	for _, msg := range req.Messages {
		in += len(msg.Content)
	}
	u := Usage{InputTokens: (in + 3) / 4, OutputTokens: (len(out) + 3) / 4}
	u.TotalTokens = u.InputTokens + u.OutputTokens
	return u
}

func offlineReply(req Request) MockResponse {
	prompt := ""
	if n := len(req.Messages); n > 0 {
		prompt = req.Messages[n-1].Content
	}
	text := fmt.Sprintf("(offline) You asked: %q. Configure an LLM provider for a full answer.", prompt)

	if req.Schema == nil {
		content, err := json.Marshal(text)
		return MockResponse{Content: content, Err: err}
	}
	content, err := json.Marshal(sampleOf(req.Schema.Definition, text))
	return MockResponse{Content: content, Err: err}
}

// sampleOf builds the smallest value satisfying def, filling strings
// with text.
func sampleOf(def any, text string) any {
	d, _ := def.(map[string]any)
	if enum, ok := d["enum"].([]any); ok && len(enum) > 0 {
		return enum[0]
	}
	switch d["type"] {
	case "object":
		obj := map[string]any{}
		props, _ := d["properties"].(map[string]any)
		required, _ := d["required"].([]any)
		for _, r := range required {
			name, _ := r.(string)
			obj[name] = sampleOf(props[name], text)
		}
		return obj
	case "array":
		return []any{}
	case "integer", "number":
		return 0
	case "boolean":
		return false
	default:
		return text
	}
}
