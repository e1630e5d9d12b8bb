package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"studysheet/internal/logger"
	"studysheet/internal/seed"
)

type Config struct {
	// DumpPath is the raw question dump served as a seed document.
	DumpPath string
	Log      *logger.Logger
}

type Server struct {
	cfg Config
	log *logger.Logger
}

// sheetResponse is the body of GET /api/sheet.
type sheetResponse struct {
	Topics []seed.TopicSeed `json:"topics"`
	Total  int              `json:"total"`
}

func New(cfg Config) *Server {
	l := cfg.Log
	if l == nil {
		l = logger.Nop()
	}
	return &Server{cfg: cfg, log: l}
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/sheet", s.handleSheet).Methods("GET")
	return r
}

// Serve accepts connections on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", ln.Addr().String(), "dump", s.cfg.DumpPath)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	b, err := os.ReadFile(s.cfg.DumpPath)
	if err != nil {
		s.log.Error("read dump failed", "path", s.cfg.DumpPath, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load sheet data")
		return
	}
	raw, err := seed.ParseRaw(b)
	if err != nil {
		s.log.Error("parse dump failed", "path", s.cfg.DumpPath, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load sheet data")
		return
	}
	doc := seed.Ingest(raw)
	writeJSON(w, http.StatusOK, sheetResponse{Topics: doc.Topics, Total: doc.Total})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", sw.status, "took", time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
