package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Train is a registry entry. Route is the origin segment and Route2 the destination segment.
type Train struct {
	ID          int       `json:"id"`
	TrainNo     string    `json:"trainNo"`
	Route       string    `json:"route"`
	Route2      string    `json:"route2"`
	TicketTime  TimeValue `json:"ticketTime"`
	ArrivalTime string    `json:"arrivalTime,omitempty"`
}

// TrainPatch is a partial update; nil fields are left unchanged.
type TrainPatch struct {
	TrainNo     *string    `json:"trainNo,omitempty"`
	Route       *string    `json:"route,omitempty"`
	Route2      *string    `json:"route2,omitempty"`
	TicketTime  *TimeValue `json:"ticketTime,omitempty"`
	ArrivalTime *string    `json:"arrivalTime,omitempty"`
}

func (p TrainPatch) Apply(t *Train) {
	if p.TrainNo != nil {
		t.TrainNo = *p.TrainNo
	}
	if p.Route != nil {
		t.Route = *p.Route
	}
	if p.Route2 != nil {
		t.Route2 = *p.Route2
	}
	if p.TicketTime != nil {
		t.TicketTime = *p.TicketTime
	}
	if p.ArrivalTime != nil {
		t.ArrivalTime = *p.ArrivalTime
	}
}

// TimeValue keeps a time-of-day in the encoding it arrived in: a string
// (ISO datetime or HH:mm) or a spreadsheet day fraction.
type TimeValue struct {
	text   string
	number float64
	isNum  bool
	set    bool
}

func TimeText(s string) TimeValue {
	return TimeValue{text: s, set: s != ""}
}

func TimeFraction(f float64) TimeValue {
	return TimeValue{number: f, isNum: true, set: true}
}

func (v TimeValue) IsZero() bool {
	return !v.set
}

// Raw returns the underlying string or float64, or nil when unset.
func (v TimeValue) Raw() any {
	switch {
	case !v.set:
		return nil
	case v.isNum:
		return v.number
	default:
		return v.text
	}
}

func (v TimeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw())
}

func (v *TimeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = TimeValue{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TimeText(s)
		return nil
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("ticket time must be a string or number: %w", err)
		}
		*v = TimeFraction(f)
		return nil
	}
}
