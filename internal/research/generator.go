// Package research implements the research steps behind report generation,
// scenario validation, and lease analysis, plus the text-generation client
// they share.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/porticohq/portico/internal/log"
	"github.com/porticohq/portico/internal/pkg/httpclient"
)

// Tier selects the model class for a generation call.
type Tier string

const (
	// TierFast is the cheap lookup model, adequate for data gathering.
	TierFast Tier = "fast"

	// TierReasoning is the expensive synthesis model.
	TierReasoning Tier = "reasoning"
)

// GenerateRequest is one research question posed to the external capability.
type GenerateRequest struct {
	// SystemRole names the persona, e.g. "Macroeconomist".
	SystemRole string

	// Prompt is the user-facing question.
	Prompt string

	// Tier selects the model class. Defaults to TierFast.
	Tier Tier
}

// Generator produces research text. Errors are capability failures; the
// pipeline decides whether a failed call degrades or aborts the run.
type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (string, error)
}

// Config configures the HTTP generator.
type Config struct {
	// BaseURL is the chat-completions endpoint root.
	BaseURL string `conf:"base_url" yaml:"base_url" json:"base_url"`

	// APIKey authenticates outbound calls. When empty the generator runs in
	// offline mode and returns canned content instead of calling out.
	APIKey string `conf:"api_key" yaml:"api_key" json:"api_key"`

	// FastModel serves TierFast requests.
	FastModel string `conf:"fast_model" yaml:"fast_model" json:"fast_model"`

	// ReasoningModel serves TierReasoning requests.
	ReasoningModel string `conf:"reasoning_model" yaml:"reasoning_model" json:"reasoning_model"`
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.BaseURL == "" {
		out.BaseURL = "https://api.perplexity.ai"
	}

	if out.FastModel == "" {
		out.FastModel = "sonar"
	}

	if out.ReasoningModel == "" {
		out.ReasoningModel = "sonar-pro"
	}

	return out
}

// HTTPGenerator calls an OpenAI-compatible chat-completions endpoint.
type HTTPGenerator struct {
	config Config
	client *httpclient.HttpClient
}

var _ Generator = (*HTTPGenerator)(nil)

// NewHTTPGenerator creates a generator from config.
func NewHTTPGenerator(config *Config, client *httpclient.HttpClient) *HTTPGenerator {
	if client == nil {
		client = httpclient.NewHttpClient()
	}

	return &HTTPGenerator{
		config: config.withDefaults(),
		client: client,
	}
}

func (g *HTTPGenerator) model(tier Tier) string {
	if tier == TierReasoning {
		return g.config.ReasoningModel
	}

	return g.config.FastModel
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// Generate poses one question and returns the model's answer text.
func (g *HTTPGenerator) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	if g.config.APIKey == "" {
		log.Debug(ctx, "generator in offline mode, returning canned content")
		return "Mock Data: System in Offline/Demo Mode (No API Key found).", nil
	}

	role := req.SystemRole
	if role == "" {
		role = "Research Assistant"
	}

	body, err := json.Marshal(&chatRequest{
		Model: g.model(req.Tier),
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf("You are an expert %s.", role)},
			{Role: "user", Content: req.Prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")

	resp, err := g.client.Do(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     g.config.BaseURL + "/chat/completions",
		Headers: headers,
		Body:    body,
		Auth: &httpclient.AuthConfig{
			Type:   "bearer",
			APIKey: g.config.APIKey,
		},
	})
	if err != nil {
		return "", err
	}

	content := gjson.GetBytes(resp.Body, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("generation response has no content: %s", resp.Body)
	}

	return content.String(), nil
}

// StaticGenerator answers every request with a fixed string. Used in tests
// and demo setups.
type StaticGenerator struct {
	Content string
}

var _ Generator = (*StaticGenerator)(nil)

func (g *StaticGenerator) Generate(_ context.Context, _ *GenerateRequest) (string, error) {
	return g.Content, nil
}
