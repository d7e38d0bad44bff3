package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/renix-codex/posts/internal/api"
	"github.com/renix-codex/posts/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	api *api.API
	mux *http.ServeMux
	log logger.Logger
}

func New(a *api.API, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Server{api: a, mux: http.NewServeMux(), log: log}
	s.routes()
	return s
}

// Handler is the single dispatch entry point for hosts embedding the service.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(sctx); err != nil {
			s.log.Warn("http shutdown incomplete", "error", err)
		}
	}()
	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-drained
	return nil
}
