package kvstore

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrSQLiteOpen      = errors.New("sqlite open error")
	ErrUnknownBackend  = errors.New("unknown store backend")
	ErrEmptyKey        = errors.New("store key must not be empty")
)
