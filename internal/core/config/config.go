package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const DefaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
	CORSOrigins     []string
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type FileLog struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  FileLog
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

func (j JWT) TTL() time.Duration { return time.Duration(j.AccessTokenTTLMin) * time.Minute }

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Store 存储选择：memory 为进程内存储；sqlite / postgres / mysql 走 gorm
type Store struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
	Seed               bool
}

type Limits struct {
	RPS             float64
	Burst           int
	PerIPRPS        float64
	PerIPBurst      int
	Concurrency     int64
	MaxBodyBytes    int64
	RequestTimeoutS int
	AuthWindowSec   int
	AuthPerIP       int64
	AuthPerUser     int64
}

type Seed struct {
	AdminPassword  string
	TenantPassword string
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	Store  Store
	Redis  Redis `mapstructure:"redis"`
	Limits Limits
	Seed   Seed
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "leasehub")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 5000)
	v.SetDefault("app.http.readTimeoutSec", 10)
	v.SetDefault("app.http.writeTimeoutSec", 15)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.corsOrigins", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/leasehub.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "leasehub")
	v.SetDefault("jwt.accessTokenTTLMin", 7*24*60)

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.username", "")
	v.SetDefault("store.password", "")
	v.SetDefault("store.maxOpenConns", 20)
	v.SetDefault("store.maxIdleConns", 5)
	v.SetDefault("store.connMaxLifetimeMin", 30)
	v.SetDefault("store.autoMigrate", true)
	v.SetDefault("store.logLevel", "warn")
	v.SetDefault("store.seed", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.perIPRps", 20)
	v.SetDefault("limits.perIPBurst", 40)
	v.SetDefault("limits.concurrency", 300)
	v.SetDefault("limits.maxBodyBytes", 1<<20)
	v.SetDefault("limits.requestTimeoutS", 10)
	v.SetDefault("limits.authWindowSec", 60)
	v.SetDefault("limits.authPerIP", 30)
	v.SetDefault("limits.authPerUser", 10)

	v.SetDefault("seed.adminPassword", "admin123")
	v.SetDefault("seed.tenantPassword", "tenant123")
}

// Load 加载顺序：默认值 → YAML 文件（path 为空时取 CONFIG_PATH，再退回 DefaultPath）→ APP_* 环境变量。
// 只有显式指定的配置文件不存在时才报错
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "memory", "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("store.driver %q is not one of memory, sqlite, postgres, mysql", c.Store.Driver)
	}
	if c.Store.Driver != "memory" && c.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required for driver %s", c.Store.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required (set APP_JWT_SECRET)")
	}
	if c.JWT.AccessTokenTTLMin <= 0 {
		return errors.New("jwt.accessTokenTTLMin must be positive")
	}
	return nil
}
