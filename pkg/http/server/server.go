package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           int
	Timeout        time.Duration
	UseRateLimit   bool
	RateLimitRPS   float64
	RateLimitBurst int
}

// New builds the http.Server; handlers are cut off by http.TimeoutHandler after config.Timeout.
func New(ctx context.Context, h http.Handler, config Config) *http.Server {
	if config.Timeout > 0 {
		h = http.TimeoutHandler(h, config.Timeout, "request timed out")
	}
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: h,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},

		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:      config.Timeout + viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT"),
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}
}
