// Package api exposes the graphdoc pipeline over HTTP.
//
// The server accepts document manifests as JSON, runs the generate and
// render stages through the shared pipeline runner, and returns either the
// diagram text or a rendered artifact. Every request is tagged with a
// request ID for log correlation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/graphdoc/pkg/doc"
	gderrors "github.com/matzehuels/graphdoc/pkg/errors"
	docio "github.com/matzehuels/graphdoc/pkg/io"
	"github.com/matzehuels/graphdoc/pkg/pipeline"
	"github.com/matzehuels/graphdoc/pkg/render"
)

// Server wraps the pipeline runner behind an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server around the given runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the chi router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Post("/generate", s.handleGenerate)
	r.Post("/render", s.handleRender)

	return r
}

// ListenAndServe starts the server on addr and shuts down gracefully when
// ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestID assigns a UUID to each request and threads it through the
// response headers and log lines.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		logger := s.logger.With("request_id", id, "method", r.Method, "path", r.URL.Path)
		logger.Debug("request started")
		next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), logger)))
	})
}

type loggerKey struct{}

func withLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func loggerFrom(ctx context.Context, fallback *log.Logger) *log.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return logger
	}
	return fallback
}

// generateRequest is the body for POST /generate and POST /render.
type generateRequest struct {
	// Document is the manifest in the JSON document format.
	Document json.RawMessage `json:"document"`

	// Options configures the pipeline run.
	Options pipeline.Options `json:"options"`
}

// generateResponse is the body for POST /generate.
type generateResponse struct {
	Text      string `json:"text"`
	TextHash  string `json:"text_hash"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
	Cached    bool   `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	logger := loggerFrom(r.Context(), s.logger)

	req, d, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	opts := req.Options
	opts.Formats = []string{render.FormatDOT}
	opts.Logger = logger

	result, err := s.runner.Execute(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, logger, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Text:      result.Text,
		TextHash:  result.TextHash,
		NodeCount: result.Stats.NodeCount,
		EdgeCount: result.Stats.EdgeCount,
		Cached:    result.CacheInfo.GenerateHit,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	logger := loggerFrom(r.Context(), s.logger)

	req, d, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	opts := req.Options
	if len(opts.Formats) != 1 {
		s.writeError(w, logger, gderrors.New(gderrors.ErrCodeInvalidInput,
			"render requires exactly one format"))
		return
	}
	format := opts.Formats[0]
	opts.Logger = logger

	result, err := s.runner.Execute(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Text-Hash", result.TextHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// decodeDocument parses the request body and builds the document from the
// embedded manifest. Reports the error itself and returns ok=false on
// failure.
func (s *Server) decodeDocument(w http.ResponseWriter, r *http.Request) (*generateRequest, *doc.Document, bool) {
	logger := loggerFrom(r.Context(), s.logger)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, logger, gderrors.Wrap(gderrors.ErrCodeInvalidInput, err,
			"invalid request body"))
		return nil, nil, false
	}
	if len(req.Document) == 0 {
		s.writeError(w, logger, gderrors.New(gderrors.ErrCodeInvalidInput,
			"missing document"))
		return nil, nil, false
	}

	d, err := docio.ReadJSON(bytes.NewReader(req.Document))
	if err != nil {
		s.writeError(w, logger, err)
		return nil, nil, false
	}
	return &req, d, true
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	code := gderrors.GetCode(err)
	status := statusFor(code)
	logger.Error("request failed", "code", code, "error", err)
	writeJSON(w, status, errorResponse{
		Error: gderrors.UserMessage(err),
		Code:  string(code),
	})
}

func statusFor(code gderrors.Code) int {
	switch code {
	case gderrors.ErrCodeSchema, gderrors.ErrCodeReference, gderrors.ErrCodeConfig,
		gderrors.ErrCodeInvalidInput, gderrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case gderrors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func contentType(format string) string {
	switch format {
	case render.FormatSVG:
		return "image/svg+xml"
	case render.FormatPNG:
		return "image/png"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent, so an encode failure is unreportable.
	_ = json.NewEncoder(w).Encode(v)
}
