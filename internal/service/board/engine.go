package board

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/normalize"
	"github.com/KasumiMercury/primind-priority-board/internal/service/window"
)

type PassengerSource interface {
	List() []domain.Passenger
}

type Evaluator interface {
	Evaluate(ctx context.Context, trainNo string, now time.Time, serviceDate string) window.Evaluation
	IsEarlyMorning(ctx context.Context, trainNo string) bool
}

// Engine orders the visible working set and selects active reminders.
// It only reads from its source.
type Engine struct {
	passengers PassengerSource
	evaluator  Evaluator
	location   *time.Location
}

func NewEngine(passengers PassengerSource, evaluator Evaluator, location *time.Location) *Engine {
	if location == nil {
		location = time.Local
	}
	return &Engine{
		passengers: passengers,
		evaluator:  evaluator,
		location:   location,
	}
}

// Rows returns today's open passengers plus tomorrow's early-morning ones,
// in display order.
func (e *Engine) Rows(ctx context.Context, now time.Time) []Row {
	now = now.In(e.location)
	today, tomorrow := dayKeys(now)

	rows := make([]Row, 0)
	for _, p := range e.passengers.List() {
		if p.IsServed {
			continue
		}
		rolledOver := false
		switch p.Date {
		case today:
		case tomorrow:
			if !e.evaluator.IsEarlyMorning(ctx, p.TrainNo) {
				continue
			}
			rolledOver = true
		default:
			continue
		}
		rows = append(rows, e.buildRow(ctx, p, now, rolledOver))
	}

	Sort(rows)
	return rows
}

// Reminders is the ordered notification set: visible rows that are imminent.
// The same (train, passenger) pair always yields the same reminder id.
func (e *Engine) Reminders(ctx context.Context, now time.Time) []domain.Reminder {
	return remindersFrom(e.Rows(ctx, now))
}

// Counts tallies open and served passengers over today plus the rolled-over
// next-day window.
func (e *Engine) Counts(ctx context.Context, now time.Time) Counts {
	now = now.In(e.location)
	today, tomorrow := dayKeys(now)

	var counts Counts
	for _, p := range e.passengers.List() {
		if p.Date != today && (p.Date != tomorrow || !e.evaluator.IsEarlyMorning(ctx, p.TrainNo)) {
			continue
		}
		if p.IsServed {
			counts.Served++
		} else {
			counts.Open++
		}
	}
	return counts
}

func (e *Engine) Snapshot(ctx context.Context, now time.Time) Snapshot {
	now = now.In(e.location)
	rows := e.Rows(ctx, now)
	today, _ := dayKeys(now)

	return Snapshot{
		Now:       now,
		Today:     today,
		Rows:      rows,
		Reminders: remindersFrom(rows),
		Counts:    e.Counts(ctx, now),
	}
}

func (e *Engine) buildRow(ctx context.Context, p domain.Passenger, now time.Time, rolledOver bool) Row {
	eval := e.evaluator.Evaluate(ctx, p.TrainNo, now, p.Date)

	row := Row{
		Passenger:     p,
		Status:        eval.Status,
		CategoryLabel: eval.Status.Category.Label(),
		Imminent:      eval.Imminent,
		Expired:       eval.Expired,
		RolledOver:    rolledOver,
		TypeTag:       p.Type.TagType(),
	}
	if eval.Status.HasReference() {
		minutes := window.RoundMinutes(eval.DiffMinutes)
		row.MinutesRemaining = &minutes
	}
	row.Tier = tierOf(row)

	switch {
	case row.Imminent:
		row.RowClass = RowClassUrgent
	case row.Expired:
		row.RowClass = RowClassExpired
	}
	return row
}

func tierOf(r Row) Tier {
	switch {
	case r.Expired:
		return TierExpired
	case !r.Status.HasReference():
		return TierNoReference
	case r.Imminent:
		return TierImminent
	case r.RolledOver:
		return TierRolledOver
	default:
		return TierUpcoming
	}
}

// Compare orders rows by tier, reference time, train number and finally
// passenger id so the order is total.
func Compare(a, b Row) int {
	if c := cmp.Compare(a.Tier, b.Tier); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Status.ReferenceTime, b.Status.ReferenceTime); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Passenger.TrainNo, b.Passenger.TrainNo); c != 0 {
		return c
	}
	return cmp.Compare(a.Passenger.ID, b.Passenger.ID)
}

func Sort(rows []Row) {
	slices.SortStableFunc(rows, Compare)
}

func remindersFrom(rows []Row) []domain.Reminder {
	reminders := make([]domain.Reminder, 0)
	for _, r := range rows {
		if !r.Imminent || !r.Status.HasReference() {
			continue
		}
		minutes := 0
		if r.MinutesRemaining != nil {
			minutes = *r.MinutesRemaining
		}
		reminders = append(reminders, domain.Reminder{
			ID:          domain.ReminderID(r.Passenger.TrainNo, r.Passenger.ID),
			PassengerID: r.Passenger.ID,
			Payload: domain.ReminderPayload{
				TrainNo:          r.Passenger.TrainNo,
				PassengerName:    r.Passenger.Name,
				CardNo:           r.Passenger.CardNo,
				Category:         r.Status.Category,
				ReferenceLabel:   r.Status.Category.ReferenceLabel(),
				ReferenceTime:    r.Status.ReferenceTime,
				MinutesRemaining: minutes,
			},
		})
	}
	return reminders
}

func dayKeys(now time.Time) (string, string) {
	return now.Format(normalize.DateLayout), now.AddDate(0, 0, 1).Format(normalize.DateLayout)
}
