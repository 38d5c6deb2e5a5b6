package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/askshelf/askshelf/internal/domain"
	"github.com/askshelf/askshelf/internal/domain/item"
)

const rendererSystemPrompt = "You are a library catalog assistant. " +
	"Answer the user's question using ONLY the catalog entries provided. " +
	"Do not invent titles, authors, counts, or availability. " +
	"If the list is empty, say that nothing matching was found. Keep the reply short."

// Renderer phrases a final item list as prose via a chat completion. The
// item list is fixed context: retrieval decides what to say, the renderer
// only decides how to say it.
type Renderer struct {
	client    *openai.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

// RendererConfig holds the reply renderer settings.
type RendererConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Logger    *zap.Logger
}

// NewRenderer creates an OpenAI-compatible reply renderer.
func NewRenderer(cfg *RendererConfig) *Renderer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 256
	}

	return &Renderer{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: maxTokens,
		logger:    cfg.Logger,
	}
}

// Format implements domain.Renderer.
func (r *Renderer) Format(ctx context.Context, items []item.Item, rawQuery string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     r.model,
		MaxTokens: r.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: rendererSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildRendererPrompt(items, rawQuery)},
		},
	})
	if err != nil {
		return "", parseRendererError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrRendererError)
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("blank completion: %w", domain.ErrRendererError)
	}
	return reply, nil
}

// buildRendererPrompt serializes the item list into a compact plain-text
// context block followed by the user's question.
func buildRendererPrompt(items []item.Item, rawQuery string) string {
	var b strings.Builder
	b.WriteString("Catalog entries:\n")
	if len(items) == 0 {
		b.WriteString("(none)\n")
	}
	for i := range items {
		it := &items[i]
		state := "available"
		if !it.Available() {
			state = "not available"
		}
		fmt.Fprintf(&b, "- %q by %s, %d copies, %s", it.Title(), it.Author(), it.Copies(), state)
		if it.Location() != "" {
			fmt.Fprintf(&b, ", shelf %s", it.Location())
		}
		if it.MaxPages() > 0 {
			fmt.Fprintf(&b, ", %d pages", it.MaxPages())
		}
		b.WriteString("\n")
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(rawQuery)
	return b.String()
}

func parseRendererError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("renderer API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, domain.ErrRendererError)
	}
	return fmt.Errorf("renderer request failed: %w", domain.ErrRendererError)
}
