package config

import "time"

const (
	clockTickIntervalEnv = "CLOCK_TICK_INTERVAL"
	recheckIntervalEnv   = "RECHECK_INTERVAL"
	refreshIntervalEnv   = "REFRESH_INTERVAL"
	recheckDebounceEnv   = "RECHECK_DEBOUNCE"

	defaultClockTickInterval = 60 * time.Second
	defaultRecheckInterval   = 60 * time.Second
	defaultRefreshInterval   = 5 * time.Second
	defaultRecheckDebounce   = 10 * time.Second
)

type SchedulerConfig struct {
	ClockTickInterval time.Duration
	RecheckInterval   time.Duration
	RefreshInterval   time.Duration
	RecheckDebounce   time.Duration
}

func LoadSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		ClockTickInterval: positiveDuration(clockTickIntervalEnv, defaultClockTickInterval),
		RecheckInterval:   positiveDuration(recheckIntervalEnv, defaultRecheckInterval),
		RefreshInterval:   positiveDuration(refreshIntervalEnv, defaultRefreshInterval),
		RecheckDebounce:   positiveDuration(recheckDebounceEnv, defaultRecheckDebounce),
	}
}
