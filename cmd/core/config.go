package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/JoeShih716/go-mem-point/internal/app/point/adapter/out/journal"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
	"github.com/JoeShih716/go-mem-point/internal/env"
)

type Config struct {
	App struct {
		Env string `yaml:"env"` // dev | prod
	} `yaml:"app"`

	GRPC struct {
		Addr string `yaml:"addr"`
	} `yaml:"grpc"`

	HTTP struct {
		Addr            string        `yaml:"addr"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"http"`

	Guard struct {
		Mode string `yaml:"mode"` // global | per_user | sequencer
	} `yaml:"guard"`

	Journal journal.Config `yaml:"journal"`
}

// loadDotEnv 載入 .env，檔案不存在時略過
func loadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// loadConfig 讀取 yaml，再以環境變數覆寫，最後補上預設值
// 設定檔不存在時只使用環境變數與預設值
func loadConfig(path string) (Config, error) {
	var cfg Config

	cfgData, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	env.TrySetFromEnv("APP_ENV", &cfg.App.Env)
	env.TrySetFromEnv("GRPC_ADDR", &cfg.GRPC.Addr)
	env.TrySetFromEnv("HTTP_ADDR", &cfg.HTTP.Addr)
	env.TrySetFromEnv("GUARD_MODE", &cfg.Guard.Mode)
	env.TrySetFromEnv("JOURNAL_DRIVER", &cfg.Journal.Driver)
	env.TrySetFromEnv("JOURNAL_FILE_PATH", &cfg.Journal.File.Path)
	env.TrySetFromEnv("JOURNAL_NATS_URL", &cfg.Journal.NATS.URL)
	env.TrySetFromEnv("MYSQL_PASSWORD", &cfg.Journal.MySQL.Password)
	if err := env.TrySetIntFromEnv("JOURNAL_BUFFER", &cfg.Journal.Buffer); err != nil {
		return Config{}, err
	}
	var brokers string
	env.TrySetFromEnv("JOURNAL_KAFKA_BROKERS", &brokers)
	if brokers != "" {
		cfg.Journal.Kafka.Brokers = strings.Split(brokers, ",")
	}

	applyDefaults(&cfg)

	if _, err := usecase.ParseGuardMode(cfg.Guard.Mode); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Env == "" {
		cfg.App.Env = "dev"
	}
	if cfg.GRPC.Addr == "" {
		cfg.GRPC.Addr = ":50051"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Guard.Mode == "" {
		cfg.Guard.Mode = string(usecase.GuardModeGlobal)
	}
	if cfg.Journal.Driver == "" {
		cfg.Journal.Driver = journal.DriverNone
	}
}
