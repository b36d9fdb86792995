package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

const (
	PassengerListKey = "passengerList"
	PassengerSeqKey  = "passengerSeq"
)

// Passengers is the single shared passenger collection. Every mutation holds
// the write lock until memory is updated and the write-through save returns.
// A failed save is reported with domain.ErrPersistence; memory stays changed.
type Passengers struct {
	store domain.KVStore

	mu    sync.RWMutex
	items []domain.Passenger
	seq   int
}

func LoadPassengers(ctx context.Context, store domain.KVStore) (*Passengers, error) {
	r := &Passengers{store: store}

	data, err := store.Load(ctx, PassengerListKey)
	if err != nil {
		return nil, fmt.Errorf("load passengers: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &r.items); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptDocument, PassengerListKey, err)
		}
	}

	seqData, err := store.Load(ctx, PassengerSeqKey)
	if err != nil {
		return nil, fmt.Errorf("load passenger sequence: %w", err)
	}
	if len(seqData) > 0 {
		seq, err := strconv.Atoi(string(seqData))
		if err != nil {
			slog.WarnContext(ctx, "ignoring unreadable passenger sequence",
				slog.String("value", string(seqData)),
			)
		} else {
			r.seq = seq
		}
	}
	for _, p := range r.items {
		r.seq = max(r.seq, p.ID)
	}

	slog.InfoContext(ctx, "passenger registry loaded",
		slog.Int("count", len(r.items)),
		slog.Int("sequence", r.seq),
	)

	return r, nil
}

func (r *Passengers) List() []domain.Passenger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

func (r *Passengers) Get(id int) (domain.Passenger, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.items[i], true
	}
	return domain.Passenger{}, false
}

func (r *Passengers) ByTrainNo(trainNo string) []domain.Passenger {
	return r.filter(func(p domain.Passenger) bool { return p.TrainNo == trainNo })
}

func (r *Passengers) ByDate(date string) []domain.Passenger {
	return r.filter(func(p domain.Passenger) bool { return p.Date == date })
}

// Add stores p under the next id. p.IsServed is forced false and the card
// number must be free among open records for the same date.
func (r *Passengers) Add(ctx context.Context, p domain.Passenger) (domain.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.IsServed = false
	if domain.CardNoTaken(r.items, p.CardNo, p.Date, 0) {
		return domain.Passenger{}, domain.ErrDuplicateCardNo
	}

	p = r.appendLocked(p)
	return p, r.persistLocked(ctx)
}

// AddMany adds every record in one write. Open records whose card number is
// already taken are skipped and reported by their index in ps.
func (r *Passengers) AddMany(ctx context.Context, ps []domain.Passenger) ([]domain.Passenger, []int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := make([]domain.Passenger, 0, len(ps))
	var duplicates []int
	for i, p := range ps {
		if !p.IsServed && domain.CardNoTaken(r.items, p.CardNo, p.Date, 0) {
			duplicates = append(duplicates, i)
			continue
		}
		added = append(added, r.appendLocked(p))
	}
	if len(added) == 0 {
		return added, duplicates, nil
	}
	return added, duplicates, r.persistLocked(ctx)
}

// AddServed records a passenger that has already left.
func (r *Passengers) AddServed(ctx context.Context, p domain.Passenger) (domain.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.IsServed = true
	p = r.appendLocked(p)
	return p, r.persistLocked(ctx)
}

// Update applies form to the record with id. IsServed is never changed here.
func (r *Passengers) Update(ctx context.Context, id int, form domain.PassengerForm) (domain.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Passenger{}, domain.ErrPassengerNotFound
	}
	if !r.items[i].IsServed && domain.CardNoTaken(r.items, form.CardNo, form.Date, id) {
		return domain.Passenger{}, domain.ErrDuplicateCardNo
	}

	form.Apply(&r.items[i])
	return r.items[i], r.persistLocked(ctx)
}

// MarkServed is the one-way open to served transition.
func (r *Passengers) MarkServed(ctx context.Context, id int) (domain.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Passenger{}, domain.ErrPassengerNotFound
	}
	if r.items[i].IsServed {
		return r.items[i], domain.ErrPassengerServed
	}

	r.items[i].IsServed = true
	return r.items[i], r.persistLocked(ctx)
}

// Delete removes a record. Its id is not handed out again.
func (r *Passengers) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrPassengerNotFound
	}
	r.items = slices.Delete(r.items, i, i+1)
	return r.persistLocked(ctx)
}

func (r *Passengers) filter(keep func(domain.Passenger) bool) []domain.Passenger {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Passenger, 0)
	for _, p := range r.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (r *Passengers) indexOf(id int) int {
	return slices.IndexFunc(r.items, func(p domain.Passenger) bool { return p.ID == id })
}

func (r *Passengers) appendLocked(p domain.Passenger) domain.Passenger {
	r.seq++
	p.ID = r.seq
	r.items = append(r.items, p)
	return p
}

func (r *Passengers) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(r.items)
	if err != nil {
		return fmt.Errorf("%w: encode passengers: %w", domain.ErrPersistence, err)
	}
	if err := r.store.Save(ctx, PassengerListKey, data); err != nil {
		slog.ErrorContext(ctx, "failed to persist passengers",
			slog.String("event", "registry.passengers.save.fail"),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if err := r.store.Save(ctx, PassengerSeqKey, []byte(strconv.Itoa(r.seq))); err != nil {
		slog.ErrorContext(ctx, "failed to persist passenger sequence",
			slog.String("event", "registry.passengers.seq.fail"),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}
