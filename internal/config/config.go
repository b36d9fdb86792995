package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	portEnv            = "PORT"
	bindAddrEnv        = "BIND_ADDR"
	logLevelEnv        = "LOG_LEVEL"
	envEnv             = "ENV"
	stationTimezoneEnv = "STATION_TIMEZONE"
	trainPolicyFileEnv = "TRAIN_POLICY_FILE"

	defaultPort            = "8080"
	defaultBindAddr        = "127.0.0.1"
	defaultEnv             = "dev"
	defaultStationTimezone = "Asia/Shanghai"
)

type Config struct {
	Port            string
	BindAddr        string
	LogLevel        slog.Level
	Env             string
	StationTimezone string
	Location        *time.Location
	TrainPolicyFile string
	Store           *StoreConfig
	Redis           *RedisConfig
	Window          *WindowConfig
	Scheduler       *SchedulerConfig
}

func Load() (*Config, error) {
	port := os.Getenv(portEnv)
	if port == "" {
		port = defaultPort
	}

	bindAddr := os.Getenv(bindAddrEnv)
	if bindAddr == "" {
		bindAddr = defaultBindAddr
	}

	env := os.Getenv(envEnv)
	if env == "" {
		env = defaultEnv
	}

	timezone := os.Getenv(stationTimezoneEnv)
	if timezone == "" {
		timezone = defaultStationTimezone
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, timezone)
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:            port,
		BindAddr:        bindAddr,
		LogLevel:        parseLogLevel(os.Getenv(logLevelEnv)),
		Env:             env,
		StationTimezone: timezone,
		Location:        location,
		TrainPolicyFile: os.Getenv(trainPolicyFileEnv),
		Store:           LoadStoreConfig(),
		Redis:           redisConfig,
		Window:          LoadWindowConfig(),
		Scheduler:       LoadSchedulerConfig(),
	}, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
