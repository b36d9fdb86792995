package config

import "time"

const (
	passingGraceMinutesEnv  = "PASSING_GRACE_MINUTES"
	lateToleranceMinutesEnv = "LATE_TOLERANCE_MINUTES"
	imminentCacheTTLEnv     = "IMMINENT_CACHE_TTL"
	expiryCacheTTLEnv       = "EXPIRY_CACHE_TTL"
	evaluatorCacheSizeEnv   = "EVALUATOR_CACHE_SIZE"

	defaultPassingGraceMinutes  = 5
	defaultLateToleranceMinutes = 30
	defaultImminentCacheTTL     = 10 * time.Second
	defaultExpiryCacheTTL       = 60 * time.Second
	defaultEvaluatorCacheSize   = 4096
)

type WindowConfig struct {
	PassingGraceMinutes  int
	LateToleranceMinutes int
	ImminentCacheTTL     time.Duration
	ExpiryCacheTTL       time.Duration
	EvaluatorCacheSize   int
}

func LoadWindowConfig() *WindowConfig {
	return &WindowConfig{
		PassingGraceMinutes:  positiveInt(passingGraceMinutesEnv, defaultPassingGraceMinutes),
		LateToleranceMinutes: positiveInt(lateToleranceMinutesEnv, defaultLateToleranceMinutes),
		ImminentCacheTTL:     positiveDuration(imminentCacheTTLEnv, defaultImminentCacheTTL),
		ExpiryCacheTTL:       positiveDuration(expiryCacheTTLEnv, defaultExpiryCacheTTL),
		EvaluatorCacheSize:   positiveInt(evaluatorCacheSizeEnv, defaultEvaluatorCacheSize),
	}
}
