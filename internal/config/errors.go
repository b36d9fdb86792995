package config

import "errors"

var (
	ErrRedisAddrMissing    = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB      = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidPort         = errors.New("PORT must be a number between 1 and 65535")
	ErrInvalidTimezone     = errors.New("STATION_TIMEZONE is not a known time zone")
	ErrUnknownStoreBackend = errors.New("STORE_BACKEND must be memory, redis or sqlite")
	ErrSQLitePathMissing   = errors.New("SQLITE_PATH is required for the sqlite backend")
	ErrInvalidTrainPolicy  = errors.New("invalid train policy")
)
