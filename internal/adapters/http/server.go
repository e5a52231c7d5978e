package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/eventgrid"
	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/aretw0/eventgrid/pkg/ports"
	"github.com/aretw0/eventgrid/pkg/textgrid"
	"github.com/go-chi/chi/v5"
)

const apiVersion = "1.0.0"

// Server converts event logs posted over HTTP.
type Server struct {
	// Cache holds rendered documents. Required.
	Cache ports.DocumentCache
	// Options are applied to every conversion before the request's own.
	Options []eventgrid.Option
	// Profile identifies Options in cache keys, so servers with different
	// aliases or filters never share entries.
	Profile string
	// MaxBytes caps the request body (0 = unlimited).
	MaxBytes int64
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
	Logger  *slog.Logger
}

// NewHandler creates a new HTTP handler for the server.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	r.Post("/v1/textgrid", s.Convert)
	return r
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "eventgrid-http",
		"version":     eventgrid.Version,
		"api_version": apiVersion,
	})
}

// convertParams are the query parameters of a conversion. Absent parameters
// keep the server's profile values.
type convertParams struct {
	mode     domain.BoundMode
	hasMode  bool
	format   textgrid.Format
	fillGaps *bool
}

func parseParams(r *http.Request) (convertParams, error) {
	q := r.URL.Query()
	var p convertParams
	var err error

	if v := q.Get("mode"); v != "" {
		if p.mode, err = domain.ParseBoundMode(v); err != nil {
			return p, err
		}
		p.hasMode = true
	}
	if v := q.Get("format"); v != "" {
		if p.format, err = textgrid.ParseFormat(v); err != nil {
			return p, err
		}
	}
	if v := q.Get("fill_gaps"); v != "" {
		var fill bool
		if fill, err = strconv.ParseBool(v); err != nil {
			return p, fmt.Errorf("fill_gaps: %w", err)
		}
		p.fillGaps = &fill
	}
	return p, nil
}

func (p convertParams) options() []eventgrid.Option {
	var opts []eventgrid.Option
	if p.hasMode {
		opts = append(opts, eventgrid.WithBoundMode(p.mode))
	}
	var render []textgrid.RenderOption
	if p.format != "" {
		render = append(render, textgrid.WithFormat(p.format))
	}
	if p.fillGaps != nil {
		if *p.fillGaps {
			render = append(render, textgrid.WithGapFill())
		} else {
			render = append(render, textgrid.WithoutGapFill())
		}
	}
	return append(opts, eventgrid.WithRenderOptions(render...))
}

// fillGapsKey distinguishes an absent fill_gaps from an explicit value.
func (p convertParams) fillGapsKey() string {
	if p.fillGaps == nil {
		return ""
	}
	return strconv.FormatBool(*p.fillGaps)
}

// Convert handles POST /v1/textgrid.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	params, err := parseParams(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid query: %v", err), http.StatusBadRequest)
		return
	}

	body := r.Body
	if s.MaxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.MaxBytes)
	}
	input, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Event log too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		s.Logger.Warn("Convert: body read failed", "error", err)
		return
	}

	conv := eventgrid.New(append(append([]eventgrid.Option{}, s.Options...), params.options()...)...)
	key := ports.Key(input, s.Profile, conv.Mode().String(), string(params.format), params.fillGapsKey())

	doc, err := s.Cache.Get(r.Context(), key)
	switch {
	case err == nil:
		w.Header().Set("X-Cache", "hit")
	case errors.Is(err, domain.ErrCacheMiss):
		text, stats, convErr := conv.ConvertBytes(r.Context(), input)
		if convErr != nil {
			s.writeConvertError(w, convErr)
			return
		}
		doc = []byte(text)
		if err := s.Cache.Put(r.Context(), key, doc); err != nil {
			s.Logger.Warn("Convert: cache put failed", "error", err)
		}
		w.Header().Set("X-Cache", "miss")
		w.Header().Set("X-Eventgrid-Tiers", strconv.Itoa(stats.Tiers))
		w.Header().Set("X-Eventgrid-Intervals", strconv.Itoa(stats.Intervals))
	default:
		http.Error(w, "Cache unavailable", http.StatusServiceUnavailable)
		s.Logger.Error("Convert: cache get failed", "error", err)
		return
	}

	etag := `"` + ports.Digest(doc) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		s.Logger.Error("Convert response write failed", "error", err)
	}
}

func (s *Server) writeConvertError(w http.ResponseWriter, err error) {
	var malformed *domain.MalformedInputError
	var orderErr *domain.OrderError
	switch {
	case errors.As(err, &malformed), errors.As(err, &orderErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		s.Logger.Warn("Convert: rejected event log", "error", err)
	default:
		http.Error(w, "Conversion failed", http.StatusInternalServerError)
		s.Logger.Error("Convert failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
