package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		portEnv, bindAddrEnv, logLevelEnv, envEnv, stationTimezoneEnv, trainPolicyFileEnv,
		storeBackendEnv, sqlitePathEnv, redisAddrEnv, redisDBEnv, redisKeyPrefixEnv,
		passingGraceMinutesEnv, recheckIntervalEnv, refreshIntervalEnv,
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want %q", cfg.Addr(), "127.0.0.1:8080")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
	if cfg.Location.String() != "Asia/Shanghai" {
		t.Errorf("Location = %v, want Asia/Shanghai", cfg.Location)
	}
	if cfg.Store.Backend != StoreBackendSQLite || cfg.Store.SQLitePath != defaultSQLitePath {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Redis.KeyPrefix != defaultRedisKeyPrefix {
		t.Errorf("Redis.KeyPrefix = %q, want %q", cfg.Redis.KeyPrefix, defaultRedisKeyPrefix)
	}
	if cfg.Window.PassingGraceMinutes != 5 || cfg.Window.LateToleranceMinutes != 30 {
		t.Errorf("Window = %+v", cfg.Window)
	}
	if cfg.Scheduler.RefreshInterval != 5*time.Second || cfg.Scheduler.RecheckInterval != time.Minute {
		t.Errorf("Scheduler = %+v", cfg.Scheduler)
	}
	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("ValidateForRun() error = %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(portEnv, "9090")
	t.Setenv(logLevelEnv, "DEBUG")
	t.Setenv(stationTimezoneEnv, "UTC")
	t.Setenv(storeBackendEnv, " Redis ")
	t.Setenv(redisDBEnv, "2")
	t.Setenv(passingGraceMinutesEnv, "7")
	t.Setenv(lateToleranceMinutesEnv, "-3")
	t.Setenv(recheckIntervalEnv, "90s")
	t.Setenv(refreshIntervalEnv, "15")
	t.Setenv(recheckDebounceEnv, "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" || cfg.LogLevel != slog.LevelDebug || cfg.Location != time.UTC {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Store.Backend != StoreBackendRedis || cfg.Redis.DB != 2 {
		t.Errorf("Store = %+v, Redis = %+v", cfg.Store, cfg.Redis)
	}
	if cfg.Window.PassingGraceMinutes != 7 {
		t.Errorf("PassingGraceMinutes = %d, want 7", cfg.Window.PassingGraceMinutes)
	}
	if cfg.Window.LateToleranceMinutes != defaultLateToleranceMinutes {
		t.Errorf("LateToleranceMinutes = %d, want default", cfg.Window.LateToleranceMinutes)
	}
	if cfg.Scheduler.RecheckInterval != 90*time.Second {
		t.Errorf("RecheckInterval = %v, want 90s", cfg.Scheduler.RecheckInterval)
	}
	if cfg.Scheduler.RefreshInterval != 15*time.Second {
		t.Errorf("RefreshInterval = %v, want 15s", cfg.Scheduler.RefreshInterval)
	}
	if cfg.Scheduler.RecheckDebounce != defaultRecheckDebounce {
		t.Errorf("RecheckDebounce = %v, want default", cfg.Scheduler.RecheckDebounce)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want error
	}{
		{name: "timezone", env: map[string]string{stationTimezoneEnv: "Mars/Olympus"}, want: ErrInvalidTimezone},
		{name: "redis db", env: map[string]string{stationTimezoneEnv: "UTC", redisDBEnv: "zero"}, want: ErrInvalidRedisDB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateForRun_JoinsErrors(t *testing.T) {
	cfg := &Config{
		Port:  "http",
		Store: &StoreConfig{Backend: "postgres"},
		Redis: &RedisConfig{},
	}

	err := ValidateForRun(cfg)

	if !errors.Is(err, ErrInvalidPort) {
		t.Errorf("error = %v, want %v", err, ErrInvalidPort)
	}
	if !errors.Is(err, ErrUnknownStoreBackend) {
		t.Errorf("error = %v, want %v", err, ErrUnknownStoreBackend)
	}
}

func TestValidateForRun_RedisBackendNeedsAddr(t *testing.T) {
	cfg := &Config{
		Port:  "8080",
		Store: &StoreConfig{Backend: StoreBackendRedis},
		Redis: &RedisConfig{},
	}

	if err := ValidateForRun(cfg); !errors.Is(err, ErrRedisAddrMissing) {
		t.Errorf("ValidateForRun() error = %v, want %v", err, ErrRedisAddrMissing)
	}
}
