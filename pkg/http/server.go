package http

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/tollrate/pkg/http/router"
	"github.com/lintang-b-s/tollrate/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/tollrate/pkg/http/server"
	"github.com/lintang-b-s/tollrate/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	tollService controllers.TollService,

) (*Server, error) {
	apiConfig := util.LoadAPIConfig()

	config := http_server.Config{
		Port:           apiConfig.Port,
		Timeout:        apiConfig.Timeout,
		UseRateLimit:   useRateLimit,
		RateLimitRPS:   apiConfig.RateLimitRPS,
		RateLimitBurst: apiConfig.RateLimitBurst,
	}

	server := http_router.NewAPI(log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(
			gctx, config, tollService,
		)
	})
	s.g = g

	return s, nil
}

// Wait blocks until the API stops. Shutdown through context cancellation is not an error.
func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	err := s.g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// GracefulShutdown blocks until SIGINT or SIGTERM is received.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
