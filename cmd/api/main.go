package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"leasehub/internal/app"
	"leasehub/internal/core/config"
	"leasehub/internal/core/logger"
	"leasehub/internal/core/server"
	"leasehub/internal/service"
	mdw "leasehub/internal/transport/http/middleware"
	"leasehub/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	ctx := context.Background()
	store, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("store open failed", zap.Error(err))
	}
	defer closeStore()

	authSvc, leasing, stats := app.Services(cfg, store, log)
	if cfg.Store.Seed {
		if err := service.Seed(ctx, store, authSvc, app.SeedOptions(cfg), log.Named("seed")); err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
	}

	counter, closeCounter := app.NewCounter(ctx, cfg, log)
	defer closeCounter()

	r := router.NewAPIEngine(log, router.Deps{
		Auth:    authSvc,
		Leasing: leasing,
		Stats:   stats,
		Counter: counter,
	}, options(cfg))

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)
	if errLog, err := logger.ToStdLogger(log.Named("http"), zapcore.WarnLevel); err == nil {
		srv.ErrorLog = errLog
	}

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("leasehub api starting",
		zap.String("env", cfg.App.Env),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("leasehub api stopped")
}

func options(cfg *config.Config) router.Options {
	o := router.DefaultOptions()
	l := cfg.Limits
	o.RPS, o.Burst = l.RPS, l.Burst
	if l.PerIPRPS > 0 {
		o.PerIPRPS, o.PerIPBurst = l.PerIPRPS, l.PerIPBurst
	}
	o.Concurrency = l.Concurrency
	o.MaxBodyBytes = l.MaxBodyBytes
	o.RequestTimeout = time.Duration(l.RequestTimeoutS) * time.Second
	o.CORSOrigins = cfg.App.HTTP.CORSOrigins
	o.AuthThrottle = mdw.AuthThrottle{
		Name:    "auth",
		Window:  time.Duration(l.AuthWindowSec) * time.Second,
		PerIP:   l.AuthPerIP,
		PerUser: l.AuthPerUser,
	}
	return o
}
