package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/eventgrid"
	httpAdapter "github.com/aretw0/eventgrid/internal/adapters/http"
	"github.com/aretw0/eventgrid/internal/adapters/memory"
	"github.com/aretw0/eventgrid/internal/adapters/redis"
	"github.com/aretw0/eventgrid/internal/metrics"
	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/aretw0/eventgrid/pkg/ports"
)

// memoryCacheEntries bounds the in-process cache when Redis is not configured.
const memoryCacheEntries = 256

// ServeOptions configures RunServe.
type ServeOptions struct {
	ConfigPath string
	Overrides  Overrides
	Addr       string // overrides server.addr
	RedisAddr  string // overrides server.redis.addr
	Debug      bool
	// Ready, if set, receives the listen address once the server accepts requests.
	Ready func(addr string)
}

// RunServe runs the HTTP API until ctx is cancelled.
func RunServe(ctx context.Context, opts ServeOptions) error {
	cfg, err := ResolveConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	if opts.RedisAddr != "" {
		cfg.Server.Redis.Addr = opts.RedisAddr
	}

	logger := createLogger(opts.Debug)
	collector := metrics.New()

	var cache ports.DocumentCache
	if rc := cfg.Server.Redis; rc.Addr != "" {
		redisCache := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithTTL(rc.TTL), redis.WithPrefix(rc.Prefix))
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisCache.Ping(pingCtx); err != nil {
			return fmt.Errorf("redis %s: %w", rc.Addr, err)
		}
		cache = redisCache
		logger.Info("Using redis document cache", "addr", rc.Addr, "ttl", rc.TTL)
	} else {
		cache = memory.New(memoryCacheEntries)
	}

	handler := httpAdapter.NewHandler(&httpAdapter.Server{
		Cache: cache,
		Options: append(cfg.ConverterOptions(),
			eventgrid.WithLogger(logger),
			eventgrid.WithObserver(collector),
		),
		Profile:  profileFingerprint(cfg),
		MaxBytes: cfg.Server.MaxBytes,
		Metrics:  collector.Handler(),
		Logger:   logger,
	})

	if cfg.Server.Timeout > 0 {
		handler = http.TimeoutHandler(handler, cfg.Server.Timeout, "conversion timed out")
	}
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return &domain.IOError{Op: "listen", Path: srv.Addr, Err: err}
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("Starting eventgrid server", "addr", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()
	if opts.Ready != nil {
		opts.Ready(ln.Addr().String())
	}

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		logger.Info("eventgrid server stopped gracefully")
		return nil
	}
}
