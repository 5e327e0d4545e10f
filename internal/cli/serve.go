package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/minus3theta/bitris-commands/pkg/buildinfo"
	"github.com/minus3theta/bitris-commands/pkg/cache"
	"github.com/minus3theta/bitris-commands/pkg/errors"
	"github.com/minus3theta/bitris-commands/pkg/observability"
)

// maxAPIOrders caps the accepted-order list in API responses.
const maxAPIOrders = 1000

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		ttl      time.Duration
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve count and possible over a JSON HTTP API",
		Long: `Serve the solve operations as a JSON HTTP API.

Endpoints:

  POST /api/count     count perfect clear piece combinations
  POST /api/possible  check which orders can reach a perfect clear
  GET  /healthz       liveness and version

Both solve endpoints accept the scenario fields as JSON:

  {"board": "####....##/####....##", "pattern": "*p4", "drop": "softdrop", "hold": true}

Results cache under an api: namespace, in Redis when --redis is given and in
the local file cache otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, ttl, workers)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for shared caching (e.g. redis://localhost:6379/0)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "cache lifetime for API results")
	cmd.Flags().IntVar(&workers, "workers", 0, "solver goroutines per request (default: number of CPUs)")

	return cmd
}

// runServe starts the API server and shuts it down when ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisURL string, ttl time.Duration, workers int) error {
	backend, err := c.serveCache(redisURL)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer backend.Close()

	srv := &solveServer{
		logger:  c.Logger,
		backend: backend,
		keyer:   cache.NewScopedKeyer(nil, "api:"),
		ttl:     ttl,
		workers: workers,
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serveCache picks the API cache backend: Redis when a URL is given,
// otherwise the same file or null cache the other commands use.
func (c *CLI) serveCache(redisURL string) (cache.Cache, error) {
	if redisURL == "" {
		return c.newCache()
	}
	return cache.NewRedisCache(redisURL)
}

// =============================================================================
// Server
// =============================================================================

// solveServer carries the dependencies of the HTTP API.
type solveServer struct {
	logger  *log.Logger
	backend cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	workers int
}

// routes assembles the API router.
func (s *solveServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Post("/api/count", s.handleCount)
	r.Post("/api/possible", s.handlePossible)
	r.Get("/healthz", s.handleHealth)
	return r
}

// requestID tags every request with a UUID, echoed in the X-Request-ID
// header and attached to the request logger.
func (s *solveServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := withLogger(r.Context(), s.logger.With("request", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusWriter captures the status code and bytes written for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// logRequests logs one line per request and feeds the HTTP hooks.
func (s *solveServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, sw.status, dur)
		loggerFromContext(r.Context()).Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

// =============================================================================
// Requests and Responses
// =============================================================================

// solveRequest carries the scenario fields of a solve call.
type solveRequest struct {
	Board   string `json:"board"`
	Height  int    `json:"height,omitempty"`
	Pattern string `json:"pattern,omitempty"`
	Drop    string `json:"drop,omitempty"`
	Hold    *bool  `json:"hold,omitempty"`
	Workers int    `json:"workers,omitempty"`
	Orders  bool   `json:"orders,omitempty"`
}

// scenario converts the request into a validated scenario. Omitted fields
// keep the scenario defaults; serverWorkers applies when the request does
// not name a worker count.
func (req solveRequest) scenario(serverWorkers int) (*Scenario, error) {
	sc := DefaultScenario()
	sc.Board.Text = req.Board
	sc.Board.Height = req.Height
	sc.Pattern.Expression = req.Pattern
	if req.Drop != "" {
		sc.Rules.Drop = req.Drop
	}
	if req.Hold != nil {
		sc.Rules.Hold = *req.Hold
	}
	if serverWorkers > 0 {
		sc.Run.Workers = serverWorkers
	}
	if req.Workers > 0 {
		sc.Run.Workers = req.Workers
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

type countResponse struct {
	Count      uint64 `json:"count"`
	Nodes      int    `json:"nodes"`
	Pieces     int    `json:"pieces"`
	Cached     bool   `json:"cached"`
	DurationMs int64  `json:"durationMs"`
}

type possibleResponse struct {
	Total      int      `json:"total"`
	Accepted   int      `json:"accepted"`
	Orders     []string `json:"orders,omitempty"`
	Cached     bool     `json:"cached"`
	DurationMs int64    `json:"durationMs"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

// handleCount counts perfect clear piece combinations for the request board.
func (s *solveServer) handleCount(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	sc, err := req.scenario(s.workers)
	if err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}

	start := time.Now()
	res, cached, err := countScenario(r.Context(), sc, s.backend, s.keyer, s.ttl)
	if err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{
		Count:      res.Count,
		Nodes:      res.Nodes,
		Pieces:     res.Pieces,
		Cached:     cached,
		DurationMs: time.Since(start).Milliseconds(),
	})
}

// handlePossible checks which orders from the request pattern can reach a
// perfect clear.
func (s *solveServer) handlePossible(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	sc, err := req.scenario(s.workers)
	if err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}

	start := time.Now()
	res, cached, err := possibleScenario(r.Context(), sc, s.backend, s.keyer, s.ttl)
	if err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}

	resp := possibleResponse{
		Total:      res.Total,
		Accepted:   res.Accepted,
		Cached:     cached,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if req.Orders {
		resp.Orders = res.Orders
		if len(resp.Orders) > maxAPIOrders {
			resp.Orders = resp.Orders[:maxAPIOrders]
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleHealth reports liveness and the build version.
func (s *solveServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// writeError reports a handler failure to the hooks and renders the error
// with its machine-readable code.
func (s *solveServer) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	loggerFromContext(r.Context()).Warnf("Request failed: %v", err)
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

// writeJSON renders v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusForError maps solve errors onto HTTP status codes.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidShape, errors.ErrCodeInvalidBoard,
		errors.ErrCodeInvalidPattern, errors.ErrCodeInvalidScenario, errors.ErrCodeInvalidRules,
		errors.ErrCodeNoShapeSequences, errors.ErrCodeContainsInvalidPermutation,
		errors.ErrCodeShapeSequenceOutOfPattern, errors.ErrCodeShortPatternDimension,
		errors.ErrCodeExceedsGraphPlacementLimit, errors.ErrCodeBoardHeightOutOfRange,
		errors.ErrCodeUnexpectedBoardSpaces:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
