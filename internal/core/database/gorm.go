package database

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	zlog "leasehub/internal/core/logger"
)

var ErrUnsupportedDriver = errors.New("unsupported store driver")

type Opts struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
	Log                *zap.Logger
}

func NewGorm(o Opts) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dsn, err := NormalizeMySQLDSN(o.DSN, o.Username, o.Password)
		if err != nil {
			return nil, err
		}
		dial = mysql.Open(dsn)
	case "sqlite":
		dial = sqlite.Open(o.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:                 gormLogger(o.Log, o.LogLevel),
		SkipDefaultTransaction: true,
		PrepareStmt:            o.Driver != "sqlite",
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if o.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	return db, nil
}

// gormLogger 有 zap logger 时把 gorm 的 SQL 日志转到 zap
func gormLogger(l *zap.Logger, level string) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	if l == nil {
		return logger.Default.LogMode(lvl)
	}
	w := log.New(zlog.ToWriter(l.Named("gorm"), zapcore.WarnLevel), "", 0)
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}

// NormalizeMySQLDSN 兼容 go-sql-driver DSN、mysql:// 与 jdbc:mysql:// 三种写法，
// 统一输出开启 parseTime 的驱动 DSN；user/pass 非空时覆盖 DSN 里的账号密码
func NormalizeMySQLDSN(input, user, pass string) (string, error) {
	in := strings.TrimPrefix(strings.TrimSpace(input), "jdbc:")
	var cfg *mysqldrv.Config
	if strings.HasPrefix(in, "mysql://") {
		u, err := url.Parse(in)
		if err != nil {
			return "", fmt.Errorf("parse mysql url: %w", err)
		}
		cfg = mysqldrv.NewConfig()
		cfg.Net, cfg.Addr, cfg.DBName = "tcp", u.Host, strings.TrimPrefix(u.Path, "/")
		if u.User != nil {
			cfg.User = u.User.Username()
			cfg.Passwd, _ = u.User.Password()
		}
		q := u.Query()
		if v := q.Get("useSSL"); v == "true" || v == "1" {
			cfg.TLSConfig = "true"
		}
		if tz := q.Get("serverTimezone"); tz != "" {
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return "", fmt.Errorf("serverTimezone: %w", err)
			}
			cfg.Loc = loc
		}
		for _, jdbcOnly := range []string{"useSSL", "serverTimezone", "useUnicode", "characterEncoding", "zeroDateTimeBehavior"} {
			q.Del(jdbcOnly)
		}
		for k := range q {
			if cfg.Params == nil {
				cfg.Params = map[string]string{}
			}
			cfg.Params[k] = q.Get(k)
		}
	} else {
		var err error
		if cfg, err = mysqldrv.ParseDSN(in); err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}
	}
	if user != "" {
		cfg.User = user
	}
	if pass != "" {
		cfg.Passwd = pass
	}
	cfg.ParseTime = true
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	return cfg.FormatDSN(), nil
}
