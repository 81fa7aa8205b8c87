package topicapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/notify/pkg/broadcast"
	"github.com/dmitrymomot/notify/pkg/httpserver"
	"github.com/dmitrymomot/notify/pkg/logger"
	"github.com/dmitrymomot/notify/pkg/workerpool"
)

// MaxPayloadSize bounds a published request body.
const MaxPayloadSize = 1 << 20

// ErrBacklog is reported by the readiness probe while the worker pool queue
// is deeper than the configured limit.
var ErrBacklog = errors.New("topicapi: delivery backlog over limit")

// Option configures the router.
type Option func(*api)

// WithMaxBacklog makes /healthz answer NOT_READY while more than n
// deliveries wait in the worker pool queue. Zero or less disables the check
// and /healthz becomes a plain liveness probe.
func WithMaxBacklog(n int) Option {
	return func(a *api) { a.maxBacklog = n }
}

// RequestIDExtractor adds the chi request id to records logged with a
// request context. Pass it to logger.WithContextExtractors.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := middleware.GetReqID(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}

// Stats is the /stats response body.
type Stats struct {
	Pool   workerpool.Stats `json:"pool"`
	Topics map[string]int   `json:"topics"`
}

// Published is the POST /topics/{topic} response body.
type Published struct {
	Topic     string `json:"topic"`
	Listeners int    `json:"listeners"`
}

type api struct {
	bus        *broadcast.Bus[string]
	pool       *workerpool.Pool
	logger     *slog.Logger
	maxBacklog int
}

// NewRouter builds the HTTP handler for bus. pool is the strategy the bus
// delivers through; it backs /stats and the readiness probe.
func NewRouter(bus *broadcast.Bus[string], pool *workerpool.Pool, log *slog.Logger, opts ...Option) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	a := &api{bus: bus, pool: pool, logger: log.With(logger.Component("topicapi"))}
	for _, opt := range opts {
		opt(a)
	}

	var checks []httpserver.Check
	if a.maxBacklog > 0 {
		checks = append(checks, a.backlog)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(a.logger, checks...))
	r.Get("/stats", a.stats)
	r.Route("/topics", func(r chi.Router) {
		r.Get("/", a.topics)
		r.Post("/{topic}", a.publish)
	})
	return r
}

func (a *api) backlog(context.Context) error {
	if depth := a.pool.QueueDepth(); depth > a.maxBacklog {
		return fmt.Errorf("%w: %d queued, limit %d", ErrBacklog, depth, a.maxBacklog)
	}
	return nil
}

func (a *api) stats(w http.ResponseWriter, _ *http.Request) {
	s := Stats{Pool: a.pool.Stats(), Topics: make(map[string]int)}
	for _, t := range a.bus.Topics() {
		s.Topics[t] = a.bus.Len(t)
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *api) topics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.bus.Topics())
}

func (a *api) publish(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxPayloadSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.bus.Publish(topic, string(body)); err != nil {
		a.logger.WarnContext(r.Context(), "publish failed",
			logger.Topic(topic),
			logger.Error(err))
		if errors.Is(err, broadcast.ErrBusClosed) || errors.Is(err, broadcast.ErrDeliveryRejected) {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusAccepted, Published{Topic: topic, Listeners: a.bus.Len(topic)})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
