package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"evalbank/internal/app"
	"evalbank/internal/config"
	"evalbank/internal/ratelimit"
	"evalbank/internal/server"
	"evalbank/internal/session"
	"evalbank/internal/util"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)
	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session ttl: %v", err)
	}
	trustedProxies, err := util.NewTrustedProxies(cfg.TrustedProxyCIDRs)
	if err != nil {
		log.Fatalf("failed to parse trusted proxy cidrs: %v", err)
	}

	appCore, err := app.New(app.Config{
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	var writeLimiter *ratelimit.FixedWindowLimiter
	if cfg.WriteRateLimitPerMinute > 0 {
		writeLimiter, err = ratelimit.NewRedisFixedWindowLimiter(
			cfg.RedisAddr, cfg.RedisPassword, "evalbank:ratelimit:write",
			cfg.WriteRateLimitPerMinute, time.Minute,
		)
		if err != nil {
			log.Fatalf("failed to init write rate limiter: %v", err)
		}
	}

	httpServer, err := server.New(server.Config{
		App:            appCore,
		Selections:     session.NewRedisSelectionStore(cfg.RedisAddr, cfg.RedisPassword, sessionTTL),
		APIToken:       cfg.APIToken,
		WriteLimiter:   writeLimiter,
		TrustedProxies: trustedProxies,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("evalbank server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
