package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/normalize"
)

const TrainListKey = "trainList"

// Trains is the train registry. It satisfies domain.TrainLookup.
type Trains struct {
	store domain.KVStore

	mu    sync.RWMutex
	items []domain.Train
}

func LoadTrains(ctx context.Context, store domain.KVStore) (*Trains, error) {
	r := &Trains{store: store}

	data, err := store.Load(ctx, TrainListKey)
	if err != nil {
		return nil, fmt.Errorf("load trains: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &r.items); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptDocument, TrainListKey, err)
		}
	}

	slog.InfoContext(ctx, "train registry loaded", slog.Int("count", len(r.items)))

	return r, nil
}

// GetByNumber returns the first train with trainNo.
func (r *Trains) GetByNumber(trainNo string) (domain.Train, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOfNumber(trainNo); i >= 0 {
		return r.items[i], true
	}
	return domain.Train{}, false
}

func (r *Trains) List() []domain.Train {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

func (r *Trains) Update(ctx context.Context, id int, patch domain.TrainPatch) (domain.Train, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.items, func(t domain.Train) bool { return t.ID == id })
	if i < 0 {
		return domain.Train{}, domain.ErrTrainNotFound
	}

	patch.Apply(&r.items[i])
	return r.items[i], r.persistLocked(ctx)
}

// UpdateTicketTime rewrites the ticket-check time in place. hhmm must be HH:mm.
func (r *Trains) UpdateTicketTime(ctx context.Context, trainNo, hhmm string) (domain.Train, error) {
	return r.updateByNumber(ctx, trainNo, hhmm, func(t *domain.Train) {
		t.TicketTime = domain.TimeText(hhmm)
	})
}

// UpdateArrivalTime rewrites the arrival time in place. hhmm must be HH:mm.
func (r *Trains) UpdateArrivalTime(ctx context.Context, trainNo, hhmm string) (domain.Train, error) {
	return r.updateByNumber(ctx, trainNo, hhmm, func(t *domain.Train) {
		t.ArrivalTime = hhmm
	})
}

// Replace swaps the whole list. Trains without an id are numbered after the
// highest id present.
func (r *Trains) Replace(ctx context.Context, trains []domain.Train) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := slices.Clone(trains)
	next := 0
	for _, t := range items {
		next = max(next, t.ID)
	}
	for i := range items {
		if items[i].ID == 0 {
			next++
			items[i].ID = next
		}
	}

	r.items = items
	return r.persistLocked(ctx)
}

func (r *Trains) updateByNumber(ctx context.Context, trainNo, hhmm string, apply func(*domain.Train)) (domain.Train, error) {
	if _, ok := normalize.ClockMinutes(hhmm); !ok {
		return domain.Train{}, domain.ErrInvalidTime
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfNumber(trainNo)
	if i < 0 {
		return domain.Train{}, domain.ErrTrainNotFound
	}

	apply(&r.items[i])
	return r.items[i], r.persistLocked(ctx)
}

func (r *Trains) indexOfNumber(trainNo string) int {
	return slices.IndexFunc(r.items, func(t domain.Train) bool { return t.TrainNo == trainNo })
}

func (r *Trains) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(r.items)
	if err != nil {
		return fmt.Errorf("%w: encode trains: %w", domain.ErrPersistence, err)
	}
	if err := r.store.Save(ctx, TrainListKey, data); err != nil {
		slog.ErrorContext(ctx, "failed to persist trains",
			slog.String("event", "registry.trains.save.fail"),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}
