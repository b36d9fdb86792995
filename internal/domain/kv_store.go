package domain

import "context"

//go:generate mockgen -source=kv_store.go -destination=kv_store_mock.go -package=domain

// KVStore persists JSON documents by key. Load returns (nil, nil) for a missing key.
type KVStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
