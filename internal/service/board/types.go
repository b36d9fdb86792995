package board

import (
	"time"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

// Tier is the primary ordering bucket of a visible row. Lower sorts first.
type Tier int

const (
	TierNoReference Tier = iota
	TierImminent
	TierUpcoming
	TierRolledOver
	TierExpired
)

func (t Tier) String() string {
	switch t {
	case TierNoReference:
		return "no_reference"
	case TierImminent:
		return "imminent"
	case TierUpcoming:
		return "upcoming"
	case TierRolledOver:
		return "rolled_over"
	case TierExpired:
		return "expired"
	default:
		return "unknown"
	}
}

const (
	RowClassUrgent  = "urgent"
	RowClassExpired = "expired"
)

// Row is one visible passenger with its derived train facts.
type Row struct {
	Passenger        domain.Passenger   `json:"passenger"`
	Status           domain.TrainStatus `json:"status"`
	CategoryLabel    string             `json:"categoryLabel"`
	Imminent         bool               `json:"imminent"`
	Expired          bool               `json:"expired"`
	RolledOver       bool               `json:"rolledOver"`
	MinutesRemaining *int               `json:"minutesRemaining,omitempty"`
	Tier             Tier               `json:"tier"`
	RowClass         string             `json:"rowClass"`
	TypeTag          string             `json:"typeTag"`
}

type Counts struct {
	Open   int `json:"open"`
	Served int `json:"served"`
}

// Snapshot is the full board view for one instant.
type Snapshot struct {
	Now       time.Time         `json:"now"`
	Today     string            `json:"today"`
	Rows      []Row             `json:"rows"`
	Reminders []domain.Reminder `json:"reminders"`
	Counts    Counts            `json:"counts"`
}

// ExpiredCount is the number of expired rows in the snapshot.
func (s Snapshot) ExpiredCount() int {
	n := 0
	for _, r := range s.Rows {
		if r.Expired {
			n++
		}
	}
	return n
}
