package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const (
	maxBodyBytes      = 64 << 10
	validationMessage = "Please fill in all fields with valid values."
	publishTimeout    = 10 * time.Second
)

// Advisor issues recommendations and exposes the table it serves from.
type Advisor interface {
	Advise(ctx context.Context, c domain.FarmConditions) (domain.Recommendation, error)
	Entries() []domain.TableEntry
}

// Publisher forwards issued recommendations, e.g. to the Kafka result topic.
type Publisher interface {
	Publish(ctx context.Context, rec domain.Recommendation) error
}

// Options configures the server. Zero values disable the optional features.
type Options struct {
	Addr           string
	Delay          time.Duration
	AllowedOrigins []string
	Publisher      Publisher
}

// Server exposes the recommendation API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	advisor    Advisor
	publisher  Publisher
	delay      time.Duration
	logger     *slog.Logger
	publishing sync.WaitGroup
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(opts Options, advisor Advisor, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})

	s := &Server{
		httpServer: &http.Server{
			Addr:         opts.Addr,
			Handler:      c.Handler(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10*time.Second + opts.Delay,
			IdleTimeout:  60 * time.Second,
		},
		advisor:   advisor,
		publisher: opts.Publisher,
		delay:     opts.Delay,
		logger:    logger,
	}

	mux.HandleFunc("POST /api/v1/recommendations", s.handleRecommend)
	mux.HandleFunc("GET /api/v1/table", s.handleTable)
	mux.HandleFunc("GET /api/v1/crops/{name}/icon", handleIcon)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections, then waits for in-flight publishes,
// both within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.publishing.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return errors.Join(err, ctx.Err())
	}
	return err
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	conditions, err := domain.DecodeConditions(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeValidation(w, verr.Problems)
			return
		}
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "request body must be a single JSON object"})
		return
	}

	if !retry.SleepWithContext(r.Context(), s.delay) {
		s.logger.Debug("client went away during delay", "error", r.Context().Err())
		return
	}

	rec, err := s.advisor.Advise(r.Context(), conditions)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeValidation(w, verr.Problems)
			return
		}
		s.logger.Error("advise failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if s.publisher != nil {
		s.publish(r.Context(), rec)
	}

	sharedobs.WriteJSON(w, http.StatusOK, rec)
}

// publish forwards rec in the background. The publish outlives the request
// so a disconnecting client does not drop it; failures are only logged.
func (s *Server) publish(ctx context.Context, rec domain.Recommendation) {
	s.publishing.Add(1)
	go func() {
		defer s.publishing.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		if err := s.publisher.Publish(ctx, rec); err != nil {
			s.logger.Warn("publish recommendation failed", "recommendation_id", rec.ID, "error", err)
		}
	}()
}

func (s *Server) handleTable(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"entries": s.advisor.Entries()})
}

func handleIcon(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	sharedobs.WriteJSON(w, http.StatusOK, domain.CropPick{Name: name, Icon: domain.CropIcon(name)})
}

func writeValidation(w http.ResponseWriter, details []string) {
	sharedobs.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":   validationMessage,
		"details": details,
	})
}
