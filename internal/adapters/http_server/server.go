package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"
	"github.com/unrolled/secure"
)

type Options struct {
	RequestTimeout     time.Duration
	RateLimitPerMinute int  // 0 disables rate limiting
	Production         bool // enables HSTS-style hardening
}

type Server struct{ mux *chi.Mux }

func New(opts Options) *Server {
	m := chi.NewRouter()

	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(securityHeaders(opts.Production))
	if opts.RateLimitPerMinute > 0 {
		m.Use(httprate.Limit(opts.RateLimitPerMinute, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "rate limit exceeded")
			}),
		))
	}
	m.Use(Metrics)
	m.Use(Logger(log.Logger))
	if opts.RequestTimeout > 0 {
		m.Use(Timeout(opts.RequestTimeout))
	}

	return &Server{mux: m}
}

func securityHeaders(production bool) func(http.Handler) http.Handler {
	sec := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		STSSeconds:         31536000,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !production,
	})
	return sec.Handler
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
