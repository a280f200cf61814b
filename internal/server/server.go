package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/GiftMarket_Go/docs"
	"github.com/osse101/GiftMarket_Go/internal/handler"
	"github.com/osse101/GiftMarket_Go/internal/logger"
	"github.com/osse101/GiftMarket_Go/internal/metrics"
	"github.com/osse101/GiftMarket_Go/internal/middleware"
	"github.com/osse101/GiftMarket_Go/internal/sse"
)

// Config holds the HTTP settings
type Config struct {
	Port           int
	CORSOrigins    []string
	TrustedProxies []string
	RateLimit      int
}

// Deps are the components the routes are served by
type Deps struct {
	Handlers *handler.Handlers
	Verifier *middleware.Verifier
	SSEHub   *sse.Hub
	Store    handler.Pinger
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree. Middleware runs outermost first.
func NewRouter(cfg Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", HeaderInitData, HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID},
		MaxAge:         CORSMaxAge,
	}))
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, NewSuspiciousActivityDetector(cfg.RateLimit)))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	h := deps.Handlers
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.TelegramAuth(deps.Verifier))

		r.Group(func(r chi.Router) {
			r.Use(RequestSizeLimitMiddleware(MaxBodyBytes))

			r.Route("/session", func(r chi.Router) {
				r.Post("/", h.HandleOpenSession)
				r.Get("/", h.HandleGetSession)
				r.Delete("/", h.HandleCloseSession)
				r.Get("/events", sse.Handler(deps.SSEHub, middleware.Identity))
			})

			r.Route("/items", func(r chi.Router) {
				r.Get("/", h.HandleListItems)
				r.Get("/facets", h.HandleFacets)
				r.Post("/{id}/purchase", h.HandlePurchase)
				r.Post("/{id}/listings", h.HandleSell)
			})
			r.Get("/gifts", h.HandleOwnedItems)

			r.Route("/wallet", func(r chi.Router) {
				r.Post("/deposit", h.HandleDeposit)
				r.Get("/card-deposit/quote", h.HandleQuoteCardDeposit)
				r.Post("/card-deposit", h.HandleCardDeposit)
				r.Post("/withdraw/validate", h.HandleValidateWithdrawal)
			})

			r.Get("/listings", h.HandleListListings)
			r.Get("/settings/support", h.HandleSupport)
			r.Get("/profile/referral", h.HandleReferral)
		})

		// image data URLs make publish bodies larger
		r.With(RequestSizeLimitMiddleware(MaxPublishBytes)).Post("/listings/publish", h.HandlePublish)
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps the event stream working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderInitData) || strings.EqualFold(k, HeaderAuthorization) {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitized)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
