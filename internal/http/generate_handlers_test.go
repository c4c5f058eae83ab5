package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"log/slog"
)

// fakeProvider records the prompt it was asked for.
type fakeProvider struct {
	prompt string
	data   json.RawMessage
	err    error
}

func (f *fakeProvider) Generate(_ context.Context, prompt string) (json.RawMessage, error) {
	f.prompt = prompt
	return f.data, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateRendersTemplate(t *testing.T) {
	p := &fakeProvider{data: json.RawMessage(`[1,2]`)}
	api := &GenAPI{Log: testLogger(), Provider: p, Template: "make ${count} about ${topic}"}

	req := httptest.NewRequest("POST", "/api/", strings.NewReader(`{"count":3,"topic":"maps"}`))
	w := httptest.NewRecorder()
	api.Generate(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if p.prompt != "make 3 about maps" {
		t.Errorf("prompt = %q", p.prompt)
	}

	var resp generateResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Title != "Generated Content" {
		t.Errorf("title = %q, want default", resp.Title)
	}
	if string(resp.Data) != "[1,2]" {
		t.Errorf("data = %s", resp.Data)
	}
}

func TestGeneratePromptOverrideAndTitle(t *testing.T) {
	p := &fakeProvider{data: json.RawMessage(`[]`)}
	api := &GenAPI{Log: testLogger(), Provider: p, Template: "unused"}

	req := httptest.NewRequest("POST", "/api/", strings.NewReader(`{"prompt":"ask ${n}","title":"Quiz","n":"7"}`))
	w := httptest.NewRecorder()
	api.Generate(w, req)

	if p.prompt != "ask 7" {
		t.Errorf("prompt = %q, want override with vars applied", p.prompt)
	}
	var resp generateResp
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Title != "Quiz" {
		t.Errorf("title = %q", resp.Title)
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	api := &GenAPI{Log: testLogger(), Provider: &fakeProvider{err: errors.New("upstream down")}, Template: "t"}

	req := httptest.NewRequest("POST", "/api/", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	api.Generate(w, req)

	if w.Code != 500 {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] == "" {
		t.Errorf("body = %s, want error field", w.Body)
	}
}

func TestGenerateNoProvider(t *testing.T) {
	api := &GenAPI{Log: testLogger(), Provider: nil, Template: "t"}

	req := httptest.NewRequest("POST", "/api/", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	api.Generate(w, req)

	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGenerateBadPayload(t *testing.T) {
	api := &GenAPI{Log: testLogger(), Provider: &fakeProvider{}, Template: "t"}

	req := httptest.NewRequest("POST", "/api/", strings.NewReader(`{{{`))
	w := httptest.NewRecorder()
	api.Generate(w, req)

	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
