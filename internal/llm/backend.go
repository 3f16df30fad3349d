package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/projextpal/projextpal-cli/internal/auth"
)

// GeneratePath is the backend route that accepts a prompt and returns a completion.
const GeneratePath = "/api/v1/ai/generate"

// backendClient implements TextGenerator against the ProjeXtPal backend.
type backendClient struct {
	cfg      LLMConfig
	http     *http.Client
	creds    auth.Provider
	observer Observer
}

// NewBackendClient creates a TextGenerator that posts prompts to the
// ProjeXtPal backend with a bearer credential from creds.
func NewBackendClient(cfg LLMConfig, creds auth.Provider, observer Observer) TextGenerator {
	if observer == nil {
		observer = NoopObserver{}
	}
	if creds == nil {
		creds = auth.None{}
	}
	return &backendClient{
		cfg:      cfg,
		http:     newHTTPClient(),
		creds:    creds,
		observer: observer,
	}
}

// backendRequest is the JSON body sent to POST /api/v1/ai/generate.
type backendRequest struct {
	Prompt string `json:"prompt"`
}

// backendResponse is the JSON body returned on success.
type backendResponse struct {
	Response string `json:"response"`
}

func (c *backendClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	body := backendRequest{Prompt: joinPrompt(req.SystemPrompt, req.UserPrompt)}
	return generate(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (string, string, error) {
		text, err := c.doRequest(ctx, body)
		return text, c.cfg.DefaultModel(), err
	})
}

func (c *backendClient) doRequest(ctx context.Context, body backendRequest) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(c.cfg.Endpoint, "/") + GeneratePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if err := auth.Authorize(ctx, httpReq, c.creds); err != nil {
		return "", err
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", &statusError{Service: "backend", Status: httpResp.StatusCode, Body: string(respBody)}
	}

	var resp backendResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return resp.Response, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
