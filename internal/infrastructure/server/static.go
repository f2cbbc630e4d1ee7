package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"captcha-verifier/internal/application/port/output"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

const shutdownTimeout = 5 * time.Second

// StaticServer hosts the game's static files for local verification runs.
type StaticServer struct {
	addr   string
	root   string
	logger output.LoggerPort
	srv    *http.Server
}

func NewStaticServer(addr, root string, logger output.LoggerPort) (*StaticServer, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat web root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("web root %s is not a directory", root)
	}

	return &StaticServer{
		addr:   addr,
		root:   root,
		logger: logger,
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(root, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// NewRouter serves root with request logging into logger and no client
// caching, so a rebuilt game is always what the browser sees.
func NewRouter(root string, logger output.LoggerPort) http.Handler {
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(newRequestLogger(logger)))
	r.Use(middleware.NoCache)
	r.Use(middleware.Recoverer)
	r.Handle("/*", http.FileServer(http.Dir(root)))
	return r
}

// Serve listens until ctx is done, then shuts down gracefully.
func (s *StaticServer) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.logger.Info("Serving static files", "addr", ln.Addr().String(), "root", s.root)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("Static server stopped")
	return nil
}
