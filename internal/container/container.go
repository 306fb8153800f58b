// Package container wires application services into a samber/do
// injector, one provider package per concern.
package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linksnap/linksnap/internal/client"
	"github.com/linksnap/linksnap/internal/history"
	"github.com/linksnap/linksnap/internal/history/blob"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Options holds the CLI configuration. humacli binds the struct tags to
// flags and environment variables.
type Options struct {
	BaseURL        string `help:"Base URL of the shortening service"                      short:"b"`
	History        string `default:"file"                                                help:"History backend: file, memory, redis, or postgres"`
	HistoryFile    string `help:"History file path (file backend; defaults to the config dir)"`
	RedisAddr      string `default:"localhost:6379"                                      help:"Redis address (redis backend)"`
	PostgresDSN    string `help:"PostgreSQL DSN (postgres backend)"`
	TimeoutSeconds int    `default:"15"                                                  help:"Shorten request timeout in seconds"`
	Verbose        bool   `help:"Verbose (development) logging"                          short:"v"`
}

// New builds an injector with every provider package registered.
func New(options *Options) *do.Injector {
	injector := do.New()

	do.ProvideValue(injector, options)
	LoggerPackage(injector)
	BlobPackage(injector)
	HistoryPackage(injector)
	ClientPackage(injector)

	return injector
}

// LoggerPackage registers the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.Verbose {
			return zap.NewDevelopment()
		}

		cfg := zap.NewProductionConfig()
		// The CLI prints results on stdout; logs stay on stderr.
		cfg.OutputPaths = []string{"stderr"}

		return cfg.Build()
	})
}

// BlobPackage registers the history blob backend selected by the
// options.
func BlobPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (blob.Store, error) {
		options := do.MustInvoke[*Options](i)

		switch options.History {
		case "", "file":
			path := options.HistoryFile
			if path == "" {
				resolved, err := blob.DefaultFilePath()
				if err != nil {
					return nil, fmt.Errorf("resolve history path: %w", err)
				}
				path = resolved
			}

			return blob.NewFile(path), nil
		case "memory":
			return blob.NewMemory(), nil
		case "redis":
			redisClient := redis.NewClient(&redis.Options{
				Addr: options.RedisAddr,
			})

			return blob.NewRedis(redisClient), nil
		case "postgres":
			pool, err := pgxpool.New(context.Background(), options.PostgresDSN)
			if err != nil {
				return nil, fmt.Errorf("connect postgres: %w", err)
			}

			return blob.NewPostgres(pool), nil
		default:
			return nil, fmt.Errorf("unknown history backend %q", options.History)
		}
	})
}

// HistoryPackage registers the history store.
func HistoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*history.Store, error) {
		b := do.MustInvoke[blob.Store](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return history.NewStore(b, logger), nil
	})
}

// ClientPackage registers the shortening client.
func ClientPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*client.Client, error) {
		options := do.MustInvoke[*Options](i)
		hist := do.MustInvoke[*history.Store](i)
		logger := do.MustInvoke[*zap.Logger](i)

		httpClient := &http.Client{
			Timeout: time.Duration(options.TimeoutSeconds) * time.Second,
		}

		return client.New(options.BaseURL, httpClient, hist, logger), nil
	})
}
