package httpx

import (
	"net/http"
	"time"

	"github.com/rs/cors"

	"padlink/internal/app"
	"padlink/pkg/ratelimit"
)

type Middleware struct {
	cors   *cors.Cors
	rlimit *ratelimit.Limiter
}

// NewMiddleware builds the shared middleware stack from config
func NewMiddleware(cfg app.Config) *Middleware {
	return &Middleware{
		cors: cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllow,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}),
		rlimit: ratelimit.New(60, time.Minute), // 60 req/min default
	}
}

// WrapAPI applies CORS + rate limiting to the JSON API
func (m *Middleware) WrapAPI(h http.Handler) http.Handler {
	return m.cors.Handler(m.rlimit.Middleware(h))
}
