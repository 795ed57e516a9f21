package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mvasiljevs/taskdesk/internal/logging"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// stop signal.
const shutdownTimeout = 5 * time.Second

// Server wraps the gin engine in an http.Server with graceful shutdown.
type Server struct {
	addr   string
	engine *gin.Engine
	logger logging.Logger
}

// NewServer builds the engine and registers the routes.
func NewServer(addr string, h *Handlers, authenticate gin.HandlerFunc, logger logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	Setup(engine, h, authenticate)

	return &Server{addr: addr, engine: engine, logger: logger}
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "http server stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
