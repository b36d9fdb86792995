package desk

import (
	"context"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

type PassengerStore interface {
	List() []domain.Passenger
	Get(id int) (domain.Passenger, bool)
	ByTrainNo(trainNo string) []domain.Passenger
	ByDate(date string) []domain.Passenger
	Add(ctx context.Context, p domain.Passenger) (domain.Passenger, error)
	AddMany(ctx context.Context, ps []domain.Passenger) ([]domain.Passenger, []int, error)
	AddServed(ctx context.Context, p domain.Passenger) (domain.Passenger, error)
	Update(ctx context.Context, id int, form domain.PassengerForm) (domain.Passenger, error)
	MarkServed(ctx context.Context, id int) (domain.Passenger, error)
}

type TrainStore interface {
	GetByNumber(trainNo string) (domain.Train, bool)
	List() []domain.Train
	Update(ctx context.Context, id int, patch domain.TrainPatch) (domain.Train, error)
	UpdateTicketTime(ctx context.Context, trainNo, hhmm string) (domain.Train, error)
	UpdateArrivalTime(ctx context.Context, trainNo, hhmm string) (domain.Train, error)
	Replace(ctx context.Context, trains []domain.Train) error
}

// StatusSource is the memoizing evaluator; Purge drops answers derived from
// train data that just changed.
type StatusSource interface {
	Status(ctx context.Context, trainNo string) domain.TrainStatus
	Purge()
}

// Trigger is told after every applied mutation so views refresh at once.
type Trigger interface {
	AfterMutation(ctx context.Context) error
}

type ImportResult struct {
	BatchID    string             `json:"batchId"`
	Imported   int                `json:"imported"`
	Discarded  int                `json:"discarded"`
	Duplicates int                `json:"duplicates"`
	Passengers []domain.Passenger `json:"passengers"`
}

type TrainDetail struct {
	Train      domain.Train       `json:"train"`
	Status     domain.TrainStatus `json:"status"`
	Label      string             `json:"label"`
	Passengers []domain.Passenger `json:"passengers"`
}
