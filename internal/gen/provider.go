// Package gen proxies prompt generation to an external model provider and
// extracts the JSON array payload from its response. It shares no state
// with the relay.
package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"padlink/internal/app"
)

// Provider turns a rendered prompt into the generated JSON array.
type Provider interface {
	Generate(ctx context.Context, prompt string) (json.RawMessage, error)
}

var ErrUnknownProvider = errors.New("unknown provider")

// New builds the configured provider.
func New(cfg app.Config) (Provider, error) {
	hc := &http.Client{Timeout: 60 * time.Second}
	switch cfg.Provider {
	case "openai":
		return &OpenAI{endpoint: cfg.OpenAIEndpoint, key: cfg.OpenAIKey, model: cfg.Model, hc: hc}, nil
	case "gemini":
		return &Gemini{baseURL: cfg.GeminiBaseURL, key: cfg.GeminiKey, model: cfg.Model, hc: hc}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// postJSON sends a JSON body and decodes the JSON response into out.
func postJSON(ctx context.Context, hc *http.Client, url string, headers map[string]string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// firstArray parses a JSON object and returns its first array-valued field.
// Providers are asked for JSON output but wrap the array in an object with
// an arbitrary key, so the key is not relied upon.
func firstArray(content []byte) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(content, &obj); err != nil {
		// The model may have returned a bare array already.
		var arr []json.RawMessage
		if json.Unmarshal(content, &arr) == nil {
			return json.RawMessage(content), nil
		}
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	for _, v := range obj {
		t := bytes.TrimSpace(v)
		if len(t) > 0 && t[0] == '[' {
			return v, nil
		}
	}
	return nil, errors.New("no array field in response")
}
