package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-mem-point/internal/app/point/adapter/out/journal"
	memory_adapter "github.com/JoeShih716/go-mem-point/internal/app/point/adapter/out/memory"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, `
app:
  env: prod
grpc:
  addr: ":6000"
http:
  addr: ":7000"
  shutdown_timeout: 3s
guard:
  mode: sequencer
journal:
  driver: kafka
  buffer: 512
  batch_size: 32
  kafka:
    brokers: ["kafka-1:9092", "kafka-2:9092"]
    topic: point-ledger
  mysql:
    host: db
    conn_max_lifetime: 5m
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, ":6000", cfg.GRPC.Addr)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "sequencer", cfg.Guard.Mode)
	assert.Equal(t, journal.DriverKafka, cfg.Journal.Driver)
	assert.Equal(t, 512, cfg.Journal.Buffer)
	assert.Equal(t, 32, cfg.Journal.BatchSize)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Journal.Kafka.Brokers)
	assert.Equal(t, "point-ledger", cfg.Journal.Kafka.Topic)
	assert.Equal(t, "db", cfg.Journal.MySQL.Host)
	assert.Equal(t, 5*time.Minute, cfg.Journal.MySQL.ConnMaxLifetime)
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, ":50051", cfg.GRPC.Addr)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, string(usecase.GuardModeGlobal), cfg.Guard.Mode)
	assert.Equal(t, journal.DriverNone, cfg.Journal.Driver)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "guard:\n  mode: global\njournal:\n  driver: file\n")

	t.Setenv("APP_ENV", "prod")
	t.Setenv("GRPC_ADDR", ":1")
	t.Setenv("HTTP_ADDR", ":2")
	t.Setenv("GUARD_MODE", "per_user")
	t.Setenv("JOURNAL_DRIVER", "nats")
	t.Setenv("JOURNAL_NATS_URL", "nats://nats:4222")
	t.Setenv("JOURNAL_BUFFER", "16")
	t.Setenv("JOURNAL_KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, ":1", cfg.GRPC.Addr)
	assert.Equal(t, ":2", cfg.HTTP.Addr)
	assert.Equal(t, "per_user", cfg.Guard.Mode)
	assert.Equal(t, journal.DriverNATS, cfg.Journal.Driver)
	assert.Equal(t, "nats://nats:4222", cfg.Journal.NATS.URL)
	assert.Equal(t, 16, cfg.Journal.Buffer)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Journal.Kafka.Brokers)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := loadConfig(writeConfig(t, "guard:\n  mode: optimistic\n"))
	assert.Error(t, err)

	_, err = loadConfig(writeConfig(t, "guard: [\n"))
	assert.Error(t, err)

	t.Setenv("JOURNAL_BUFFER", "lots")
	_, err = loadConfig(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("POINT_DOTENV_TEST=loaded\n"), 0o600))
	t.Setenv("POINT_DOTENV_TEST", "")
	require.NoError(t, os.Unsetenv("POINT_DOTENV_TEST"))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("POINT_DOTENV_TEST"))
}

func TestNewStores(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	testCases := []struct {
		mode      usecase.GuardMode
		wantGuard usecase.Guard
		synced    bool
	}{
		{mode: usecase.GuardModeGlobal, wantGuard: &usecase.MutexGuard{}},
		{mode: usecase.GuardModePerUser, wantGuard: &usecase.KeyedGuard{}, synced: true},
		{mode: usecase.GuardModeSequencer, wantGuard: &usecase.Sequencer{}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.mode), func(t *testing.T) {
			balances, ledger, guard := newStores(ctx, tc.mode)
			assert.IsType(t, tc.wantGuard, guard)
			if tc.synced {
				assert.IsType(t, &memory_adapter.SyncBalanceStore{}, balances)
				assert.IsType(t, &memory_adapter.SyncLedgerStore{}, ledger)
			} else {
				assert.IsType(t, &memory_adapter.BalanceStore{}, balances)
				assert.IsType(t, &memory_adapter.LedgerStore{}, ledger)
			}

			// 每種組合都要能正常運作
			core := usecase.NewPointUseCase(balances, ledger, guard)
			p, err := core.Charge(ctx, 1, 10)
			require.NoError(t, err)
			assert.Equal(t, int64(10), p.Point)
		})
	}
}
