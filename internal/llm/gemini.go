package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// geminiClient implements TextGenerator on top of the genai SDK.
type geminiClient struct {
	cfg      LLMConfig
	client   *genai.Client
	observer Observer
}

// NewGeminiClient creates a TextGenerator backed by the Gemini API.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (TextGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini backend requires ai.api_key")
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.taskParams(req)
	model := c.cfg.DefaultModel()

	gcfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temp)),
		MaxOutputTokens: int32(maxTok),
	}
	if req.SystemPrompt != "" {
		gcfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	return generate(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(req.UserPrompt), gcfg)
		if err != nil {
			var apiErr genai.APIError
			if errors.As(err, &apiErr) {
				return "", "", &statusError{Service: "gemini", Status: apiErr.Code, Body: apiErr.Message}
			}
			return "", "", fmt.Errorf("gemini generate: %w", err)
		}
		return resp.Text(), model, nil
	})
}
