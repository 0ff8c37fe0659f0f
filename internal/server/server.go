// Package server exposes a reactive store of numeric fields over HTTP.
//
// Every write goes through a reactive wrapper. A watcher effect reads the
// whole state and pushes a snapshot to websocket clients each time it
// re-runs, so clients only hear about writes that actually changed something.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/AnatoleLucet/reactive"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server owns one reactive session. The session is not safe for concurrent
// use, mu serializes every handler touching it.
type Server struct {
	mu sync.Mutex

	session *reactive.Session
	state   reactive.Target
	watcher *reactive.Runner[struct{}]
	runs    int

	hub      *Hub
	logger   *slog.Logger
	registry *prometheus.Registry
}

type config struct {
	logger  *slog.Logger
	initial map[string]float64
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithInitial seeds the state.
func WithInitial(fields map[string]float64) Option {
	return func(c *config) { c.initial = fields }
}

func New(opts ...Option) *Server {
	cfg := config{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	registry := prometheus.NewRegistry()
	session := reactive.NewSession(
		reactive.WithLogger(cfg.logger),
		reactive.WithMetrics(reactive.NewMetrics(reactive.WithRegistry(registry))),
		reactive.WithTracing(),
	)

	raw := reactive.NewObject(nil)
	for k, v := range cfg.initial {
		raw.Set(k, v)
	}

	logger := cfg.logger.With("component", "server")
	s := &Server{
		session:  session,
		state:    session.Wrap(raw),
		hub:      NewHub(logger),
		logger:   logger,
		registry: registry,
	}
	s.watcher = session.Effect(s.broadcast)

	return s
}

// Routes returns the HTTP handler of the server.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/state", s.handleSnapshot)
	r.Put("/state/{key}", s.handleWrite)
	r.Delete("/state/{key}", s.handleDelete)
	r.Get("/watch", s.handleWatch)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// Runs returns how many times the watcher effect ran.
func (s *Server) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runs
}

// Close stops the watcher effect.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.watcher.Stop()
}

// snapshot reads every field, tracking them when called from an effect.
func (s *Server) snapshot() map[string]float64 {
	// Len is tracked, new and deleted keys re-run the watcher
	fields := make(map[string]float64, s.state.Len())

	for _, k := range s.state.Keys() {
		key, ok := k.(string)
		if !ok {
			continue
		}

		fields[key] = reactive.Get[float64](s.state, key)
	}

	return fields
}

func (s *Server) broadcast() {
	s.runs++

	msg, err := json.Marshal(s.snapshot())
	if err != nil {
		s.logger.Error("encode snapshot", "error", err)
		return
	}

	s.hub.Broadcast(msg)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var fields map[string]float64
	s.session.Untrack(func() { fields = s.snapshot() })
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, fields)
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := decodeNumber(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.state.Set(key, value)
	s.mu.Unlock()

	s.logger.Debug("write", "key", key, "value", value)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	existed := s.state.Has(key)
	if existed {
		s.state.Delete(key)
	}
	s.mu.Unlock()

	if !existed {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("no field %q", key)})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	c, err := s.hub.accept(w, r)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.mu.Lock()
	var initial []byte
	s.session.Untrack(func() { initial, err = json.Marshal(s.snapshot()) })
	if err == nil {
		s.hub.add(c, initial)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("encode snapshot", "error", err)
		c.conn.Close()
		return
	}

	s.hub.run(c)
}

var errNotANumber = errors.New("body must be a JSON number")

func decodeNumber(body io.Reader) (float64, error) {
	var value float64
	if err := json.NewDecoder(body).Decode(&value); err != nil {
		return 0, fmt.Errorf("%w: %v", errNotANumber, err)
	}

	return value, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
