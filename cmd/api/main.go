package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pennsieve/playground-api/internal/config"
	"github.com/pennsieve/playground-api/internal/container"
	"github.com/pennsieve/playground-api/internal/handler"
	"github.com/pennsieve/playground-api/internal/logging"
	"github.com/pennsieve/playground-api/internal/server"
	"go.uber.org/automaxprocs/maxprocs"
)

var logger = logging.Default

func main() {
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...))
	})); err != nil {
		logger.Warn("error setting GOMAXPROCS", slog.String("error", err.Error()))
	}

	cfg := config.Load()
	logging.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		logger.Error("error creating container", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("container ready",
		slog.String("accountsTable", c.Config().AccountsTable),
		slog.Bool("lambda", cfg.IsRunningOnLambda()))

	accountServiceHandler := handler.NewAccountServiceHandler(c)

	if cfg.IsRunningOnLambda() {
		lambda.Start(accountServiceHandler)
		return
	}

	if err := runLocal(ctx, server.NewServer(accountServiceHandler), cfg.LocalAddress); err != nil {
		logger.Error("local server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runLocal(ctx context.Context, s *server.Server, address string) error {
	errs := make(chan error, 1)
	go func() {
		errs <- s.Start(address)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down local server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
