package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGenerator_OfflineMode(t *testing.T) {
	gen := NewHTTPGenerator(&Config{}, nil)

	content, err := gen.Generate(context.Background(), &GenerateRequest{Prompt: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "Mock Data: System in Offline/Demo Mode (No API Key found).", content)
}

func TestHTTPGenerator_Generate(t *testing.T) {
	var captured chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"rates are easing"}}]}`))
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(&Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
	}, nil)

	content, err := gen.Generate(context.Background(), &GenerateRequest{
		SystemRole: "Macroeconomist",
		Prompt:     "forecast please",
		Tier:       TierFast,
	})
	require.NoError(t, err)
	assert.Equal(t, "rates are easing", content)

	assert.Equal(t, "sonar", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "Macroeconomist")
	assert.Equal(t, "forecast please", captured.Messages[1].Content)
}

func TestHTTPGenerator_TierSelectsModel(t *testing.T) {
	var model string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		model = req.Model

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(&Config{BaseURL: srv.URL, APIKey: "k"}, nil)

	_, err := gen.Generate(context.Background(), &GenerateRequest{Tier: TierReasoning})
	require.NoError(t, err)
	assert.Equal(t, "sonar-pro", model)

	_, err = gen.Generate(context.Background(), &GenerateRequest{Tier: TierFast})
	require.NoError(t, err)
	assert.Equal(t, "sonar", model)
}

func TestHTTPGenerator_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(&Config{BaseURL: srv.URL, APIKey: "k"}, nil)

	_, err := gen.Generate(context.Background(), &GenerateRequest{Prompt: "q"})
	require.Error(t, err)
}

func TestHTTPGenerator_MissingContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(&Config{BaseURL: srv.URL, APIKey: "k"}, nil)

	_, err := gen.Generate(context.Background(), &GenerateRequest{Prompt: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}
