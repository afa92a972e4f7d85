// The frontend server hosts the static single-page dashboard and reverse-
// proxies API traffic to the backend so the browser talks to one origin.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sethvargo/go-envconfig"

	"github.com/geniusforceai/familydash/pkg/logger"
)

type frontendConfig struct {
	Port       string `env:"FRONTEND_PORT, default=3000"`
	StaticDir  string `env:"FRONTEND_DIR,  default=./static"`
	BackendURL string `env:"BACKEND_URL,   default=http://localhost:8000"`
	LogLevel   string `env:"LOG_LEVEL,     default=info"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg frontendConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel})

	backend, err := url.Parse(cfg.BackendURL)
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.BackendURL).Msg("invalid backend url")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.Logger())

	// API traffic goes to the backend; everything else is served from the
	// static directory, falling back to index.html for SPA routes.
	proxy := echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
		Balancer: echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{{URL: backend}}),
	})
	e.Group("/api", proxy)
	e.Group("/token", proxy)
	e.Group("/health", proxy)

	e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root:  cfg.StaticDir,
		HTML5: true,
	}))

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("backend", cfg.BackendURL).Msg("starting frontend server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
