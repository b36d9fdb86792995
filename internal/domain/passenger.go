package domain

// PassengerType is the assistance category of a priority passenger.
type PassengerType string

const (
	PassengerTypeMilitary PassengerType = "military"
	PassengerTypeElderly  PassengerType = "elderly"
	PassengerTypeWeak     PassengerType = "weak"
	PassengerTypeSick     PassengerType = "sick"
	PassengerTypeDisabled PassengerType = "disabled"
)

// TagType returns the display tag used by the dashboard for the type.
func (t PassengerType) TagType() string {
	switch t {
	case PassengerTypeMilitary:
		return "success"
	case PassengerTypeElderly:
		return "warning"
	case PassengerTypeWeak:
		return "info"
	case PassengerTypeSick, PassengerTypeDisabled:
		return "danger"
	default:
		return ""
	}
}

type Source string

const (
	SourceOnline  Source = "online"
	SourceOffline Source = "offline"
)

// Passenger is one assistance record. IsServed is terminal: once true it is never reset.
type Passenger struct {
	ID         int           `json:"id"`
	Date       string        `json:"date"`
	TrainNo    string        `json:"trainNo"`
	Name       string        `json:"name"`
	CardNo     string        `json:"cardNo"`
	Type       PassengerType `json:"type,omitempty"`
	Service    string        `json:"service"`
	StaffName  string        `json:"staffName"`
	Companions int           `json:"companions"`
	Remark     string        `json:"remark"`
	Source     Source        `json:"source,omitempty"`
	IsServed   bool          `json:"isServed"`
}

// PassengerForm carries the editable fields of a passenger.
type PassengerForm struct {
	Date       string        `json:"date" validate:"required,datetime=2006-01-02"`
	TrainNo    string        `json:"trainNo" validate:"required"`
	Name       string        `json:"name" validate:"required"`
	CardNo     string        `json:"cardNo" validate:"required"`
	Type       PassengerType `json:"type" validate:"omitempty,oneof=military elderly weak sick disabled"`
	Service    string        `json:"service" validate:"required"`
	StaffName  string        `json:"staffName" validate:"required"`
	Companions int           `json:"companions" validate:"gte=0"`
	Remark     string        `json:"remark"`
	Source     Source        `json:"source" validate:"omitempty,oneof=online offline"`
}

// Apply copies the form onto p, leaving ID and IsServed untouched.
func (f PassengerForm) Apply(p *Passenger) {
	p.Date = f.Date
	p.TrainNo = f.TrainNo
	p.Name = f.Name
	p.CardNo = f.CardNo
	p.Type = f.Type
	p.Service = f.Service
	p.StaffName = f.StaffName
	p.Companions = f.Companions
	p.Remark = f.Remark
	p.Source = f.Source
}

// CardNoTaken reports whether cardNo is held by another open passenger on date.
// The record with excludeID is ignored so an edit does not collide with itself.
func CardNoTaken(passengers []Passenger, cardNo, date string, excludeID int) bool {
	if cardNo == "" {
		return false
	}
	for _, p := range passengers {
		if p.CardNo == cardNo && p.Date == date && !p.IsServed && p.ID != excludeID {
			return true
		}
	}
	return false
}
