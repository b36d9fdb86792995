package domain

import (
	"encoding/json"
	"testing"
)

func TestCardNoTaken(t *testing.T) {
	passengers := []Passenger{
		{ID: 1, Date: "2024-05-20", CardNo: "A1"},
		{ID: 2, Date: "2024-05-20", CardNo: "B2", IsServed: true},
		{ID: 3, Date: "2024-05-21", CardNo: "C3"},
	}

	tests := []struct {
		name      string
		cardNo    string
		date      string
		excludeID int
		want      bool
	}{
		{name: "open holder", cardNo: "A1", date: "2024-05-20", want: true},
		{name: "editing the holder", cardNo: "A1", date: "2024-05-20", excludeID: 1, want: false},
		{name: "served holder frees the card", cardNo: "B2", date: "2024-05-20", want: false},
		{name: "other date", cardNo: "C3", date: "2024-05-20", want: false},
		{name: "empty card", cardNo: "", date: "2024-05-20", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CardNoTaken(passengers, tt.cardNo, tt.date, tt.excludeID); got != tt.want {
				t.Errorf("CardNoTaken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeValue_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{name: "clock string", in: `"10:05"`, want: "10:05"},
		{name: "iso string", in: `"2024-05-20T10:05:00"`, want: "2024-05-20T10:05:00"},
		{name: "fraction", in: `0.5`, want: 0.5},
		{name: "null", in: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v TimeValue
			if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got := v.Raw(); got != tt.want {
				t.Errorf("Raw() = %v, want %v", got, tt.want)
			}

			out, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(out) != tt.in {
				t.Errorf("Marshal() = %s, want %s", out, tt.in)
			}
		})
	}
}

func TestTimeValue_RejectsObjects(t *testing.T) {
	var v TimeValue
	if err := json.Unmarshal([]byte(`{"h":10}`), &v); err == nil {
		t.Error("Unmarshal() error = nil, want error")
	}
}

func TestReminderID_Stable(t *testing.T) {
	if got := ReminderID("K100", 2); got != "reminder-K100-2" {
		t.Errorf("ReminderID() = %q, want %q", got, "reminder-K100-2")
	}
}
