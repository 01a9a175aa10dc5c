// Package app 根据配置组装存储、日志、计数器与服务层，api 服务和 admin 命令行共用
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"leasehub/internal/core/auth"
	"leasehub/internal/core/cache"
	"leasehub/internal/core/config"
	"leasehub/internal/core/database"
	"leasehub/internal/core/logger"
	"leasehub/internal/domain"
	"leasehub/internal/repo"
	"leasehub/internal/repo/memory"
	"leasehub/internal/service"
)

func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	return logger.New(logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: cfg.App.Env == "local",
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
}

// OpenStore 按 store.driver 打开存储；gorm 驱动在 store.autoMigrate 开启时自动迁移。
// 返回的 func 用于释放连接池
func OpenStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (domain.Store, func(), error) {
	if cfg.Store.Driver == "memory" {
		l.Info("store ready", zap.String("driver", "memory"))
		return memory.New(), func() {}, nil
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.Store.Driver,
		DSN:                cfg.Store.DSN,
		Username:           cfg.Store.Username,
		Password:           cfg.Store.Password,
		MaxOpenConns:       cfg.Store.MaxOpenConns,
		MaxIdleConns:       cfg.Store.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.Store.ConnMaxLifetimeMin,
		LogLevel:           cfg.Store.LogLevel,
		Log:                l,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.Store.Driver, err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	gs := repo.NewGormStore(db)
	if cfg.Store.AutoMigrate {
		if err := gs.AutoMigrate(ctx); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}
	l.Info("store ready", zap.String("driver", cfg.Store.Driver))
	return gs, closeDB, nil
}

// Migrate 无视 store.autoMigrate，直接迁移（内存存储无需迁移）
func Migrate(ctx context.Context, store domain.Store) error {
	gs, ok := store.(*repo.GormStore)
	if !ok {
		return nil
	}
	return gs.AutoMigrate(ctx)
}

// NewCounter 配置了 redis 且能 PING 通时用 redis，否则退回进程内计数器
func NewCounter(ctx context.Context, cfg *config.Config, l *zap.Logger) (cache.Counter, func()) {
	if cfg.Redis.Addr == "" {
		return cache.NewMemory(), func() {}
	}
	rc := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pctx); err != nil {
		l.Warn("redis unreachable, using in-process counter", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = rc.Close()
		return cache.NewMemory(), func() {}
	}
	l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	return rc, func() { _ = rc.Close() }
}

func NewJWTer(cfg *config.Config) *auth.JWTer {
	return &auth.JWTer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, TTL: cfg.JWT.TTL()}
}

// Services 构造服务层
func Services(cfg *config.Config, store domain.Store, l *zap.Logger) (*service.AuthService, *service.LeasingService, *service.StatsService) {
	authSvc := service.NewAuthService(store, NewJWTer(cfg), l.Named("auth"))
	return authSvc, service.NewLeasingService(store, l.Named("leasing")), service.NewStatsService(store)
}

func SeedOptions(cfg *config.Config) service.SeedOptions {
	return service.SeedOptions{AdminPassword: cfg.Seed.AdminPassword, TenantPassword: cfg.Seed.TenantPassword}
}
