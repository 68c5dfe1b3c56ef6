package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/tebnews/TEBNews_Go/internal/auth"
	"github.com/tebnews/TEBNews_Go/internal/battle"
	"github.com/tebnews/TEBNews_Go/internal/blackjack"
	"github.com/tebnews/TEBNews_Go/internal/caseopen"
	"github.com/tebnews/TEBNews_Go/internal/database"
	"github.com/tebnews/TEBNews_Go/internal/economy"
	"github.com/tebnews/TEBNews_Go/internal/handler"
	"github.com/tebnews/TEBNews_Go/internal/logger"
	"github.com/tebnews/TEBNews_Go/internal/metrics"
	"github.com/tebnews/TEBNews_Go/internal/slots"
	"github.com/tebnews/TEBNews_Go/internal/sse"
	"github.com/tebnews/TEBNews_Go/internal/user"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Version        string
	StateTTL       time.Duration
}

// Services are the domain services routed by the server
type Services struct {
	User      user.Service
	Economy   economy.Service
	Cases     caseopen.Service
	Blackjack blackjack.Service
	Slots     slots.Service
	Battles   battle.Service
}

// Token issues and verifies player bearer tokens
type Token interface {
	handler.TokenIssuer
	TokenVerifier
}

var _ Token = (*auth.TokenIssuer)(nil)

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, svc Services, tokens Token, hub *sse.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, dbPool, svc, tokens, hub),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool: dbPool,
	}
}

// NewRouter builds the routing tree. Exposed so tests can drive it without a listener.
func NewRouter(opts Options, dbPool database.Pool, svc Services, tokens Token, hub *sse.Hub) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion(opts.Version))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	userHandler := handler.NewUserHandler(svc.User, svc.Economy, tokens)
	inventoryHandler := handler.NewInventoryHandler(svc.Economy)
	caseHandler := handler.NewCaseHandler(svc.Cases)
	blackjackHandler := handler.NewBlackjackHandler(svc.Blackjack, opts.StateTTL)
	slotsHandler := handler.NewSlotsHandler(svc.Slots)
	battleHandler := handler.NewBattleHandler(svc.Battles, hub)
	adminCacheHandler := handler.NewAdminCacheHandler(svc.User)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(APIKeyMiddleware(opts.APIKey, opts.TrustedProxies, detector))
			r.Post("/users", userHandler.HandleRegisterUser)
			r.Get("/cache/stats", adminCacheHandler.HandleGetCacheStats)
		})

		// Live streams are public; browsers cannot attach a bearer header to an EventSource
		r.Get("/battles/events", battleHandler.HandleLobbyEvents)
		r.Get("/battles/{id}/events", battleHandler.HandleBattleEvents)
		r.Get("/battles/{id}/ws", battleHandler.HandleBattleWebSocket)

		// Player routes
		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(tokens, opts.TrustedProxies, detector))

			r.Get("/me", userHandler.HandleGetMe)

			r.Get("/inventory", inventoryHandler.HandleGetInventory)
			r.Post("/inventory/{id}/sell", inventoryHandler.HandleSellItem)

			r.Route("/cases", func(r chi.Router) {
				r.Get("/", caseHandler.HandleListCases)
				r.Get("/{id}", caseHandler.HandleGetCase)
				r.Post("/{id}/open", caseHandler.HandleOpenCase)
			})

			r.Route("/blackjack", func(r chi.Router) {
				r.Post("/deal", blackjackHandler.HandleDeal)
				r.Post("/hit", blackjackHandler.HandleHit)
				r.Post("/stand", blackjackHandler.HandleStand)
				r.Post("/double", blackjackHandler.HandleDouble)
			})

			r.Post("/slots/spin", slotsHandler.HandleSpinSlots)

			r.Get("/battles", battleHandler.HandleListBattles)
			r.Post("/battles", battleHandler.HandleCreateBattle)
			r.Post("/battles/bot", battleHandler.HandleBotBattle)
			r.Get("/battles/{id}", battleHandler.HandleGetBattle)
			r.Post("/battles/{id}/join", battleHandler.HandleJoinBattle)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

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
		statusCode:     http.StatusOK, // default status
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

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		// Honour an upstream request id so traces line up across proxies
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

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, "Cookie") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
