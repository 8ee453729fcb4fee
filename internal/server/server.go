// Package server exposes the MCQ pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/abhisek/docquiz/internal/config"
	"github.com/abhisek/docquiz/internal/docsource"
	"github.com/abhisek/docquiz/internal/mcqgen"
	"github.com/abhisek/docquiz/internal/session"
)

const (
	cookieName   = "docquiz-session"
	sessionIDKey = "sid"
)

// Server serves the upload and generation endpoints.
type Server struct {
	cfg         config.ServerConfig
	maxAttempts int
	gen         *mcqgen.Generator
	source      docsource.TextSource
	docs        *session.Registry
	cookies     *sessions.CookieStore
	logger      *zap.Logger
	handler     http.Handler
}

// New creates a Server and ensures the upload directory exists. Every
// generation request runs at most maxAttempts attempts.
func New(cfg config.ServerConfig, maxAttempts int, gen *mcqgen.Generator, source docsource.TextSource, docs *session.Registry, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
		if secret == nil {
			return nil, errors.New("generate session secret")
		}
		logger.Warn("no session secret configured; sessions will not survive a restart")
	}
	cookies := sessions.NewCookieStore(secret)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		cfg:         cfg,
		maxAttempts: maxAttempts,
		gen:         gen,
		source:      source,
		docs:        docs,
		cookies:     cookies,
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload-pdf", s.handleUpload)
	mux.HandleFunc("POST /generate-mcqs", s.handleGenerate)
	mux.HandleFunc("GET /api-docs", s.handleAPIDocs)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.handler = withRequestID(withLogging(logger, withCORS(mux)))
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// sessionID returns the caller's session ID. With create set, a new ID is
// assigned and the cookie written when the request carries none.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request, create bool) (string, error) {
	// Get returns a fresh session alongside a decode error for tampered or
	// stale cookies; that session is still usable.
	sess, err := s.cookies.Get(r, cookieName)
	if err != nil {
		s.logger.Debug("discarding invalid session cookie", zap.Error(err))
	}

	if id, ok := sess.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}
	if !create {
		return "", nil
	}

	id := session.NewID()
	sess.Values[sessionIDKey] = id
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}
