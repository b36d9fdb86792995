package kvstore

import (
	"context"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Store is a KVStore that can report its health and release resources.
type Store interface {
	domain.KVStore
	Ping(ctx context.Context) error
	Close() error
	Backend() string
}
