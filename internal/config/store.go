package config

import (
	"os"
	"strings"
)

const (
	storeBackendEnv = "STORE_BACKEND"
	sqlitePathEnv   = "SQLITE_PATH"

	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
	StoreBackendSQLite = "sqlite"

	defaultStoreBackend = StoreBackendSQLite
	defaultSQLitePath   = "priority-board.db"
)

type StoreConfig struct {
	Backend    string
	SQLitePath string
}

func LoadStoreConfig() *StoreConfig {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv(storeBackendEnv)))
	if backend == "" {
		backend = defaultStoreBackend
	}

	path := os.Getenv(sqlitePathEnv)
	if path == "" {
		path = defaultSQLitePath
	}

	return &StoreConfig{
		Backend:    backend,
		SQLitePath: path,
	}
}

func (c *StoreConfig) Validate() error {
	switch c.Backend {
	case StoreBackendMemory, StoreBackendRedis:
		return nil
	case StoreBackendSQLite:
		if c.SQLitePath == "" {
			return ErrSQLitePathMissing
		}
		return nil
	default:
		return ErrUnknownStoreBackend
	}
}
