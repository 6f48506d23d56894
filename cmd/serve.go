package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/venturelens/internal/decide"
	"github.com/sells-group/venturelens/internal/model"
	"github.com/sells-group/venturelens/internal/research"
	"github.com/sells-group/venturelens/internal/score"
)

var servePort int

// validate checks request payloads against their struct tags.
var validate = validator.New()

type validateRequest struct {
	Idea  string `json:"idea" validate:"required,min=10"`
	Roast bool   `json:"roast"`
}

type analyzeRequest struct {
	Idea           string `json:"idea" validate:"required,min=10"`
	Roast          bool   `json:"roast"`
	ProductName    string `json:"productName"`
	Differentiator string `json:"differentiator"`
	TargetMarket   string `json:"targetMarket"`
	Price          int    `json:"price" validate:"gte=0"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP validation API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(env),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go drainOnSignal(ctx, srv, 10*time.Second)

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// drainOnSignal shuts the server down once ctx is cancelled. The signal
// context is already dead at that point, so the drain gets a fresh deadline
// to let in-flight requests finish.
func drainOnSignal(ctx context.Context, srv *http.Server, timeout time.Duration) {
	<-ctx.Done()
	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// newRouter builds the API surface: health probe plus the two validation
// endpoints.
func newRouter(env *validationEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/validate", func(w http.ResponseWriter, req *http.Request) {
		var payload validateRequest
		if !decodePayload(w, req, &payload) {
			return
		}

		result, err := env.Decide.Simple(req.Context(), payload.Idea, payload.Roast)
		if err != nil {
			writeDecisionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/v1/analyze", func(w http.ResponseWriter, req *http.Request) {
		var payload analyzeRequest
		if !decodePayload(w, req, &payload) {
			return
		}

		dr := decide.DetailedRequest{Idea: payload.Idea, Roast: payload.Roast}
		if payload.ProductName != "" || payload.Differentiator != "" {
			dr.Product = productFromRequest(payload)
		}

		result, err := env.Decide.Detailed(req.Context(), dr)
		if err != nil {
			writeDecisionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	return r
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// requestID tags every request with a uuid for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(contextWithRequestID(r.Context(), id)))
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestIDFrom(r)),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func decodePayload(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "validation failed: " + err.Error()})
		return false
	}
	return true
}

// writeDecisionError maps pipeline errors to status codes: bad input is the
// caller's fault, a failed research round is upstream's.
func writeDecisionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrIdeaTooShort):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, research.ErrResearchFailed):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "competitor research failed, try again later"})
	default:
		zap.L().Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func productFromRequest(p analyzeRequest) *score.Product {
	return &score.Product{
		Name:           p.ProductName,
		Differentiator: p.Differentiator,
		TargetMarket:   p.TargetMarket,
		Price:          p.Price,
	}
}

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
