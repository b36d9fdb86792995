package window

import (
	"context"
	"time"

	"github.com/bluele/gcache"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/observability/metrics"
)

const (
	DefaultImminentTTL = 10 * time.Second
	DefaultExpiryTTL   = 60 * time.Second
	DefaultCacheSize   = 4096

	minuteBucketLayout = "2006-01-02T15:04"
)

type StatusResolver interface {
	Resolve(trainNo string) domain.TrainStatus
}

type Config struct {
	Bounds      Bounds
	ImminentTTL time.Duration
	ExpiryTTL   time.Duration
	CacheSize   int
}

func DefaultConfig() Config {
	return Config{
		Bounds:      DefaultBounds(),
		ImminentTTL: DefaultImminentTTL,
		ExpiryTTL:   DefaultExpiryTTL,
		CacheSize:   DefaultCacheSize,
	}
}

// Evaluation is the full set of facts for one (train, now, service date).
type Evaluation struct {
	Status      domain.TrainStatus
	Imminent    bool
	Expired     bool
	DiffMinutes float64
}

// Evaluator memoizes train status and window answers per minute bucket.
// Answers may be stale by up to the cache TTL; callers that change train
// data call Purge.
type Evaluator struct {
	resolver      StatusResolver
	bounds        Bounds
	statusCache   gcache.Cache
	imminentCache gcache.Cache
	expiryCache   gcache.Cache
	metrics       *metrics.BoardMetrics
}

func NewEvaluator(resolver StatusResolver, cfg Config, boardMetrics *metrics.BoardMetrics) *Evaluator {
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	imminentTTL := cfg.ImminentTTL
	if imminentTTL <= 0 {
		imminentTTL = DefaultImminentTTL
	}
	expiryTTL := cfg.ExpiryTTL
	if expiryTTL <= 0 {
		expiryTTL = DefaultExpiryTTL
	}

	return &Evaluator{
		resolver:      resolver,
		bounds:        cfg.Bounds,
		statusCache:   gcache.New(size).LRU().Expiration(imminentTTL).Build(),
		imminentCache: gcache.New(size).LRU().Expiration(imminentTTL).Build(),
		expiryCache:   gcache.New(size).LRU().Expiration(expiryTTL).Build(),
		metrics:       boardMetrics,
	}
}

func (e *Evaluator) Status(ctx context.Context, trainNo string) domain.TrainStatus {
	if cached, err := e.statusCache.Get(trainNo); err == nil {
		e.recordLookup(ctx, "status", true)
		return cached.(domain.TrainStatus)
	}
	e.recordLookup(ctx, "status", false)

	status := e.resolver.Resolve(trainNo)
	_ = e.statusCache.Set(trainNo, status)
	return status
}

func (e *Evaluator) IsEarlyMorning(ctx context.Context, trainNo string) bool {
	return e.Status(ctx, trainNo).IsEarlyMorning
}

func (e *Evaluator) IsImminent(ctx context.Context, trainNo string, now time.Time, serviceDate string) bool {
	key := trainNo + "|" + serviceDate + "|" + now.Format(minuteBucketLayout)
	if cached, err := e.imminentCache.Get(key); err == nil {
		e.recordLookup(ctx, "imminent", true)
		return cached.(bool)
	}
	e.recordLookup(ctx, "imminent", false)

	imminent := Imminent(e.Status(ctx, trainNo), now, serviceDate, e.bounds)
	_ = e.imminentCache.Set(key, imminent)
	return imminent
}

func (e *Evaluator) IsExpired(ctx context.Context, trainNo string, now time.Time, serviceDate string) bool {
	key := trainNo + "|" + serviceDate + "|" + now.Format(minuteBucketLayout)
	if cached, err := e.expiryCache.Get(key); err == nil {
		e.recordLookup(ctx, "expiry", true)
		return cached.(bool)
	}
	e.recordLookup(ctx, "expiry", false)

	expired := Expired(e.Status(ctx, trainNo), now, serviceDate)
	_ = e.expiryCache.Set(key, expired)
	return expired
}

func (e *Evaluator) Evaluate(ctx context.Context, trainNo string, now time.Time, serviceDate string) Evaluation {
	status := e.Status(ctx, trainNo)
	eval := Evaluation{
		Status:   status,
		Imminent: e.IsImminent(ctx, trainNo, now, serviceDate),
		Expired:  e.IsExpired(ctx, trainNo, now, serviceDate),
	}
	if diff, ok := DiffMinutes(status, now, serviceDate); ok {
		eval.DiffMinutes = diff
	}
	return eval
}

// Purge drops every memoized answer.
func (e *Evaluator) Purge() {
	e.statusCache.Purge()
	e.imminentCache.Purge()
	e.expiryCache.Purge()
}

func (e *Evaluator) recordLookup(ctx context.Context, cache string, hit bool) {
	if e.metrics != nil {
		e.metrics.RecordCacheLookup(ctx, cache, hit)
	}
}
