package reference

import (
	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/normalize"
	"github.com/KasumiMercury/primind-priority-board/internal/service/category"
)

// earlyMorningEndMinutes closes the [00:00, 01:00) band in which next-day
// records are rolled onto today's board.
const earlyMorningEndMinutes = 60

// Resolver picks the reference event of a train: the ticket check for
// originating and passing trains, the arrival for terminating ones.
type Resolver struct {
	trains           domain.TrainLookup
	classifier       *category.Classifier
	arrivalFallbacks map[string]string
}

func NewResolver(trains domain.TrainLookup, classifier *category.Classifier) *Resolver {
	return &Resolver{
		trains:           trains,
		classifier:       classifier,
		arrivalFallbacks: classifier.Policy().ArrivalFallbacks,
	}
}

func (r *Resolver) Resolve(trainNo string) domain.TrainStatus {
	var record *domain.Train
	if train, ok := r.trains.GetByNumber(trainNo); ok {
		record = &train
	}

	classification := r.classifier.Classify(trainNo, record)

	status := domain.TrainStatus{
		TrainNo:     trainNo,
		Category:    classification.Category,
		LeadMinutes: classification.LeadMinutes,
	}

	if classification.Category.IsTerminating() {
		status.ReferenceTime = r.arrivalTime(trainNo, record)
	} else if record != nil {
		status.ReferenceTime = normalize.Time(record.TicketTime)
	}

	status.IsEarlyMorning = IsEarlyMorning(status.ReferenceTime)
	return status
}

func (r *Resolver) arrivalTime(trainNo string, record *domain.Train) string {
	if record != nil && record.ArrivalTime != "" {
		if arrival := normalize.Time(record.ArrivalTime); arrival != "" {
			return arrival
		}
	}
	if fallback, ok := r.arrivalFallbacks[trainNo]; ok {
		return normalize.Time(fallback)
	}
	return ""
}

// IsEarlyMorning reports whether an HH:mm reference falls in [00:00, 01:00).
func IsEarlyMorning(referenceTime string) bool {
	minutes, ok := normalize.ClockMinutes(referenceTime)
	return ok && minutes < earlyMorningEndMinutes
}
