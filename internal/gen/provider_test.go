package gen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"padlink/internal/app"
)

func TestFirstArray(t *testing.T) {
	got, err := firstArray([]byte(`{"questions":[1,2,3]}`))
	if err != nil {
		t.Fatalf("firstArray failed: %v", err)
	}
	if string(got) != "[1,2,3]" {
		t.Errorf("got %s, want [1,2,3]", got)
	}

	// A bare array passes through unchanged.
	got, err = firstArray([]byte(`["a","b"]`))
	if err != nil {
		t.Fatalf("bare array failed: %v", err)
	}
	if string(got) != `["a","b"]` {
		t.Errorf("got %s", got)
	}

	if _, err := firstArray([]byte(`{"count":3}`)); err == nil {
		t.Error("object without array accepted, want error")
	}
	if _, err := firstArray([]byte(`"just text"`)); err == nil {
		t.Error("scalar accepted, want error")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	cfg := app.Config{Provider: "acme"}
	if _, err := New(cfg); err == nil {
		t.Error("unknown provider accepted, want error")
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var gotAuth string
	var gotReq openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"items":["up","down"]}`}},
			},
		})
	}))
	defer srv.Close()

	o := &OpenAI{endpoint: srv.URL, key: "k", model: "m", hc: &http.Client{Timeout: 5 * time.Second}}
	data, err := o.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if string(data) != `["up","down"]` {
		t.Errorf("data = %s", data)
	}
	if gotAuth != "Bearer k" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotReq.Model != "m" || len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "system" {
		t.Errorf("request = %+v", gotReq)
	}
	if gotReq.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %q, want json_object", gotReq.ResponseFormat.Type)
	}
}

func TestOpenAIGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	o := &OpenAI{endpoint: srv.URL, key: "k", model: "m", hc: srv.Client()}
	if _, err := o.Generate(context.Background(), "p"); err == nil {
		t.Error("upstream 502 accepted, want error")
	}
}

func TestGeminiGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": `{"quiz":[{"q":"?"}]}`}}}},
			},
		})
	}))
	defer srv.Close()

	g := &Gemini{baseURL: srv.URL + "/", key: "secret", model: "m", hc: srv.Client()}
	data, err := g.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if string(data) != `[{"q":"?"}]` {
		t.Errorf("data = %s", data)
	}
	if gotPath != "/m:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("key = %q", gotKey)
	}
	if gotReq.GenerationConfig.ResponseMimeType != "application/json" {
		t.Errorf("mime = %q", gotReq.GenerationConfig.ResponseMimeType)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 || gotReq.Contents[0].Parts[0].Text != "the prompt" {
		t.Errorf("contents = %+v", gotReq.Contents)
	}
}
