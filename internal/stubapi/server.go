package stubapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/logger"
	"github.com/osse101/BurgerClient_Go/internal/metrics"
)

// Options tunes the stub backend
type Options struct {
	// AccessTTL is how long an access token is accepted
	AccessTTL time.Duration
	// CookTime is how long a placed order stays pending
	CookTime time.Duration
	// FirstOrderNumber is the number before the first order's
	FirstOrderNumber int
	Now              func() time.Time
}

func (o Options) withDefaults() Options {
	if o.AccessTTL <= 0 {
		o.AccessTTL = DefaultAccessTTL
	}
	if o.CookTime <= 0 {
		o.CookTime = DefaultCookTime
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Backend is an in-memory implementation of the burger backend's HTTP API
type Backend struct {
	state *state
}

// NewBackend creates a backend serving the given catalog
func NewBackend(ingredients []domain.Ingredient, opts Options) *Backend {
	return &Backend{state: newState(ingredients, opts.withDefaults())}
}

// ResetCode returns the code a password reset request for email would have
// mailed
func (b *Backend) ResetCode(email string) (string, bool) {
	return b.state.resetCode(email)
}

// Handler returns the router. Resources live under /api so a client can use
// http://host:port/api as its base URL.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/ingredients", b.handleIngredients)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/all", b.handleFeed)
			r.Get("/{number}", b.handleOrderByNumber)
			r.Group(func(r chi.Router) {
				r.Use(b.requireAuth)
				r.Get("/", b.handleUserOrders)
				r.Post("/", b.handlePlaceOrder)
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", b.handleRegister)
			r.Post("/login", b.handleLogin)
			r.Post("/logout", b.handleLogout)
			r.Post("/token", b.handleToken)
			r.Group(func(r chi.Router) {
				r.Use(b.requireAuth)
				r.Get("/user", b.handleGetUser)
				r.Patch("/user", b.handleUpdateUser)
			})
		})

		r.Route("/password-reset", func(r chi.Router) {
			r.Post("/", b.handleForgotPassword)
			r.Post("/reset", b.handleResetPassword)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondFailure(w, http.StatusNotFound, MsgNotFound)
	})

	return r
}

type ctxKey struct{}

func emailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(ctxKey{}).(string)
	return email
}

// requireAuth resolves the authorization header to an account. An expired
// token is answered with 403 and the jwt expired message.
func (b *Backend) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), bearerPrefix)
		if token == "" {
			respondFailure(w, http.StatusUnauthorized, MsgUnauthorised)
			return
		}

		email, err := b.state.authenticate(token)
		switch err {
		case nil:
		case errTokenExpired:
			respondFailure(w, http.StatusForbidden, MsgJWTExpired)
			return
		default:
			respondFailure(w, http.StatusUnauthorized, MsgUnauthorised)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, email)))
	})
}

// statusRecorder captures the status code for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/healthz") || strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		requestID := r.Header.Get(logger.HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Debug(LogMsgRequestStarted, "method", r.Method, "path", r.URL.Path, "authorized", r.Header.Get("Authorization") != "")

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", duration.Milliseconds())
	})
}

// Server runs a Backend over HTTP
type Server struct {
	httpServer *http.Server
}

// NewServer creates a server for backend on port
func NewServer(port int, backend *Backend) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           backend.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
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
