package domain

// Category is the operational category of a train at the home station.
type Category string

const (
	CategoryOriginating Category = "originating"
	CategoryPassing     Category = "passing"
	CategoryTerminating Category = "terminating"
	CategoryUnknown     Category = "unknown"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsTerminating() bool {
	return c == CategoryTerminating
}

func (c Category) IsPassing() bool {
	return c == CategoryPassing
}

// Label is the wording staff see on the board.
func (c Category) Label() string {
	switch c {
	case CategoryOriginating:
		return "始发车"
	case CategoryPassing:
		return "通过车"
	case CategoryTerminating:
		return "终到车"
	default:
		return "未知"
	}
}

// ReferenceLabel names the reference event: arrival for terminating trains,
// ticket check for everything else.
func (c Category) ReferenceLabel() string {
	if c == CategoryTerminating {
		return "到站"
	}
	return "开检"
}

// Classification is the classifier output for one train number.
type Classification struct {
	Category    Category `json:"category"`
	LeadMinutes int      `json:"leadMinutes"`
}

// TrainStatus is the derived, never persisted view of a train.
// ReferenceTime is "" when no reference event is known; such a train is
// never imminent and never expired.
type TrainStatus struct {
	TrainNo        string   `json:"trainNo"`
	Category       Category `json:"category"`
	LeadMinutes    int      `json:"leadMinutes"`
	ReferenceTime  string   `json:"referenceTime"`
	IsEarlyMorning bool     `json:"isEarlyMorning"`
}

func (s TrainStatus) HasReference() bool {
	return s.ReferenceTime != ""
}
