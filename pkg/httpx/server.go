package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	defaultCSP      = "default-src 'self'"
	maxRequestBody  = 10 << 20
	handlerDeadline = 30 * time.Second
	requestsPerIP   = 100
)

// ServerConfig holds the options for NewRouter.
type ServerConfig struct {
	ServiceName   string
	IsDevelopment bool
	// Comma-separated origin list; "*" opens CORS to everyone and belongs in dev only.
	CORSAllowedOrigins string
	// Empty means defaultCSP.
	ContentSecurityPolicy string
}

// NewRouter builds the chi.Mux every binary serves from. The four function
// arguments come from pkg/app and run first, in the order:
//
//	recover, sentry, request id, otel span, access log
//
// followed by the shared chain:
//
//	real ip, per-ip rate limit, cors, body cap, handler deadline, security headers
//
// Sentry re-panics after capturing, so recover has to sit outside it.
// The request id is assigned before the span and the log line so both carry it.
func NewRouter(
	cfg ServerConfig,
	loggerMiddleware func(http.Handler) http.Handler,
	recoveryMiddleware func(http.Handler) http.Handler,
	sentryMiddleware func(http.Handler) http.Handler,
	otelMiddleware func(http.Handler) http.Handler,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(
		recoveryMiddleware,
		sentryMiddleware,
		middleware.RequestID,
		otelMiddleware,
		loggerMiddleware,
		middleware.RealIP,
		httprate.LimitByIP(requestsPerIP, time.Minute),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(maxRequestBody),
		middleware.Timeout(handlerDeadline),
		securityHeaders(cfg).Handler,
	)
	return r
}

func securityHeaders(cfg ServerConfig) *secure.Secure {
	csp := cfg.ContentSecurityPolicy
	if csp == "" {
		csp = defaultCSP
	}
	return secure.New(secure.Options{
		ContentSecurityPolicy: csp,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), usb=(), magnetometer=(), gyroscope=()",
		// two years; secure skips the header on plain HTTP and in dev mode
		STSSeconds:           63072000,
		STSIncludeSubdomains: true,
		IsDevelopment:        cfg.IsDevelopment,
	})
}

// CORSMiddleware allows the item API's verbs from the listed origins.
// Credentials are never allowed, so "*" stays usable for local work.
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   parseOrigins(allowedOrigins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// parseOrigins falls back to "*" when the list holds no usable entry.
func parseOrigins(s string) []string {
	var out []string
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}

// RequestBodyLimit wraps the body in http.MaxBytesReader. Handlers see an
// *http.MaxBytesError from Read once maxBytes is passed.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer sets the read, write and idle timeouts and a 1 MB header cap.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}
