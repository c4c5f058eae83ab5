package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"padlink/internal/gen"
	"padlink/internal/store"
	"padlink/pkg/metrics"
)

// GenAPI is the stateless prompt-generation proxy. DB may be nil, in which
// case nothing is persisted. Provider is nil when the configured provider
// name is unknown; each request then fails with 400, mirroring startup
// config problems at the request boundary instead of crashing.
type GenAPI struct {
	Log      *slog.Logger
	Provider gen.Provider
	Template string
	DB       *store.Postgres
}

type generateResp struct {
	Title string          `json:"title"`
	Data  json.RawMessage `json:"data"`
}

type historyItem struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Generate renders the prompt, calls the provider, and returns the
// extracted array. Body fields: "prompt" overrides the template, "title"
// labels the result, everything else is a ${key} substitution variable.
func (a *GenAPI) Generate(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		metrics.GenerateRequests.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}

	if a.Provider == nil {
		metrics.GenerateRequests.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "invalid provider configuration")
		return
	}

	prompt := a.Template
	if p, ok := body["prompt"].(string); ok && p != "" {
		prompt = p
	}
	title := "Generated Content"
	if t, ok := body["title"].(string); ok && t != "" {
		title = t
	}

	vars := map[string]string{}
	for k, v := range body {
		if k == "prompt" || k == "title" {
			continue
		}
		vars[k] = fmt.Sprint(v)
	}
	prompt = gen.Render(prompt, vars)

	data, err := a.Provider.Generate(r.Context(), prompt)
	if err != nil {
		a.Log.Error("generate", "err", err)
		metrics.GenerateRequests.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// History is best-effort; a store failure never fails the request.
	if a.DB != nil {
		if _, err := a.DB.SaveGeneration(r.Context(), title, data); err != nil {
			a.Log.Warn("generate.save", "err", err)
		}
	}

	metrics.GenerateRequests.WithLabelValues("ok").Inc()
	writeJSON(w, generateResp{Title: title, Data: data})
}

// History lists up to 100 stored generations, newest first.
func (a *GenAPI) History(w http.ResponseWriter, r *http.Request) {
	items, err := a.DB.ListGenerations(r.Context(), 100, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]historyItem, 0, len(items))
	for _, g := range items {
		resp = append(resp, historyItem{ID: g.ID, Title: g.Title, Data: g.Data, CreatedAt: g.CreatedAt})
	}
	writeJSON(w, resp)
}

// send JSON with proper headers
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
