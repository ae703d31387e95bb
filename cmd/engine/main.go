package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	"github.com/lintang-b-s/tollrate/pkg/engine"
	"github.com/lintang-b-s/tollrate/pkg/http"
	"github.com/lintang-b-s/tollrate/pkg/http/usecases"
	"github.com/lintang-b-s/tollrate/pkg/logger"
	"github.com/lintang-b-s/tollrate/pkg/util"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", true, "enable the request rate limiter")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file loaded", zap.Error(err))
	}
	util.SetDefaults()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}

	tollEngine, err := engine.NewEngineFromConfig(util.LoadPipelineConfig(), logger)
	if err != nil {
		panic(err)
	}

	tollService, err := usecases.NewTollService(logger, tollEngine, util.LoadAPIConfig().ResultCacheSize)
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx, logger, *useRateLimit, tollService)

	signal := http.GracefulShutdown()

	logger.Info("Toll Rate API Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("toll rate api exited with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
