package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

type geminiGenerator struct {
	apiKeys    []string
	model      string
	logger     logger.Logger
	mu         sync.Mutex
	currentKey int
	clients    map[string]*genai.Client
}

// NewGemini creates a Generator that rotates through the configured Gemini
// API keys when one is rate limited.
func NewGemini(cfg config.GeminiConfig, log logger.Logger) (Generator, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, errors.New("gemini: no API keys configured")
	}
	return &geminiGenerator{
		apiKeys: cfg.APIKeys,
		model:   cfg.Model,
		logger:  log,
		clients: make(map[string]*genai.Client),
	}, nil
}

// Generate sends the prompt to Gemini. Rotates API keys on 429 / quota errors.
func (g *geminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.System != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	var lastErr error
	for range len(g.apiKeys) {
		key, idx := g.key()

		client, err := g.client(ctx, key)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), genCfg)
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", &UpstreamError{Provider: config.ProviderGemini, Err: fmt.Errorf("generate content: %w", err)}
		}

		text := responseText(result)
		if text == "" {
			return "", &UpstreamError{Provider: config.ProviderGemini, Err: ErrEmptyResponse}
		}
		return text, nil
	}

	return "", &UpstreamError{
		Provider:  config.ProviderGemini,
		Err:       fmt.Errorf("all API keys exhausted: %w", lastErr),
		Retryable: true,
	}
}

func (g *geminiGenerator) key() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

// rotateKey moves past idx unless another caller already did.
func (g *geminiGenerator) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func (g *geminiGenerator) client(ctx context.Context, key string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[key]; ok {
		return c, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	g.clients[key] = c
	return c, nil
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String()
}
