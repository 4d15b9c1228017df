package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skyscholar/skyscholar/internal/llm"
)

const tutorSystemPrompt = `You are Sky Scholar, a ground-school tutor for student pilots and aviation maintenance technicians.

Answer the learner's question accurately and concisely (2-5 sentences) in plain language.
Ground every factual claim in FAA material: the FARs, the AIM, the Pilot's Handbook of
Aeronautical Knowledge, the Airplane Flying Handbook, or the Aviation Maintenance Technician
Handbooks. List each document you relied on as a source with a precise reference
(part/section or chapter). If the question is vague, ask one clarifying question and
return no sources.`

// TutorAnswerSchema is the structured output requested from the model.
var TutorAnswerSchema = &llm.Schema{
	Name:        "tutor-answer",
	Description: "A tutor reply to an aviation study question, with citations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": "The answer shown to the learner",
			},
			"sources": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Document title, e.g. FAR 91.155",
						},
						"reference": map[string]any{
							"type":        "string",
							"description": "Section or chapter within the document",
						},
					},
					"required":             []any{"title", "reference"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"content", "sources"},
		"additionalProperties": false,
	},
}

// ModelConfig holds generation settings for ModelProvider.
type ModelConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultModelConfig returns sensible defaults for tutor replies.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		MaxTokens:   600,
		Temperature: 0.3,
	}
}

// ModelProvider answers questions with an LLM.
type ModelProvider struct {
	provider llm.Provider
	cfg      ModelConfig
}

var _ AnswerProvider = (*ModelProvider)(nil)

// NewModelProvider creates an AnswerProvider backed by an LLM.
func NewModelProvider(provider llm.Provider, cfg ModelConfig) *ModelProvider {
	return &ModelProvider{provider: provider, cfg: cfg}
}

type tutorAnswerOutput struct {
	Content string   `json:"content"`
	Sources []Source `json:"sources"`
}

func (p *ModelProvider) Answer(ctx context.Context, question string) (Reply, error) {
	ctx = llm.WithPurpose(ctx, "tutor-answer")

	req := llm.Request{
		System: tutorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: question},
		},
		Schema:      TutorAnswerSchema,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}

	resp, err := p.provider.Generate(ctx, req)
	if err != nil {
		return Reply{}, fmt.Errorf("tutor answer: %w", err)
	}

	var out tutorAnswerOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Reply{}, fmt.Errorf("parse tutor answer: %w", err)
	}
	if strings.TrimSpace(out.Content) == "" {
		return Reply{}, fmt.Errorf("parse tutor answer: empty content")
	}

	return Reply{Content: out.Content, Sources: out.Sources}, nil
}

// fallbackProvider serves from secondary when primary fails.
type fallbackProvider struct {
	primary   AnswerProvider
	secondary AnswerProvider
	logger    *slog.Logger
}

// WithFallback wraps primary so that its failures are answered by
// secondary. Context cancellation is not masked.
func WithFallback(primary, secondary AnswerProvider, logger *slog.Logger) AnswerProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &fallbackProvider{primary: primary, secondary: secondary, logger: logger}
}

func (f *fallbackProvider) Answer(ctx context.Context, question string) (Reply, error) {
	reply, err := f.primary.Answer(ctx, question)
	if err == nil {
		return reply, nil
	}
	if ctx.Err() != nil {
		return Reply{}, ctx.Err()
	}
	f.logger.Warn("primary answer provider failed, using fallback", "error", err)
	return f.secondary.Answer(ctx, question)
}
