package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/jaevor/go-nanoid"
	"github.com/linksnap/linksnap/internal/stub"
	"go.uber.org/zap"
)

// Options configures the stub shortening service.
type Options struct {
	Port       int    `default:"8888" help:"Port to listen on"               short:"p"`
	CodeLength int    `default:"8"    help:"Length of generated short codes" short:"c"`
	BaseURL    string `help:"Public base URL for short links (default http://localhost:PORT)"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}

		var server *http.Server

		hooks.OnStart(func() {
			baseURL := options.BaseURL
			if baseURL == "" {
				baseURL = fmt.Sprintf("http://localhost:%d", options.Port)
			}

			generate, err := nanoid.Standard(options.CodeLength)
			if err != nil {
				logger.Fatal("code generator init failed", zap.Error(err))
			}

			svc := stub.NewService(stub.NewMemoryStore(), stub.CodeGenerator(generate), baseURL)
			router := stub.NewRouter(svc, logger)

			server = &http.Server{
				Addr:              fmt.Sprintf(":%d", options.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Info("stub service starting",
				zap.Int("port", options.Port),
				zap.String("baseUrl", baseURL),
			)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("server shutdown error", zap.Error(err))
				}
			}

			logger.Info("shutdown complete")
		})
	})

	cli.Run()
}
