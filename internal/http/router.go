package httpx

import (
	"net/http"

	"log/slog"

	"padlink/internal/app"
	"padlink/internal/gen"
	"padlink/internal/store"
	"padlink/internal/ws"
	"padlink/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers. db may be
// nil (history disabled); prov may be nil (generate returns 400).
func NewRouter(cfg app.Config, logger *slog.Logger, hub *ws.Hub, prov gen.Provider, tmpl string, db *store.Postgres) http.Handler {
	mw := NewMiddleware(cfg)
	api := &GenAPI{Log: logger, Provider: prov, Template: tmpl, DB: db}

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket relay endpoint
	mux.Handle("/ws", http.HandlerFunc(hub.ServeWS))

	// Generation proxy
	mux.Handle("/api/", mw.WrapAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		api.Generate(w, r)
	})))
	if db != nil {
		mux.Handle("/api/history", mw.WrapAPI(http.HandlerFunc(api.History)))
	}

	// Controller + display pages
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	return mux
}
