package domain

import "fmt"

// ReminderPayload is what a rendering sink displays for one reminder.
type ReminderPayload struct {
	TrainNo          string   `json:"trainNo"`
	PassengerName    string   `json:"passengerName"`
	CardNo           string   `json:"cardNo"`
	Category         Category `json:"category"`
	ReferenceLabel   string   `json:"referenceLabel"`
	ReferenceTime    string   `json:"referenceTime"`
	MinutesRemaining int      `json:"minutesRemaining"`
}

type Reminder struct {
	ID          string          `json:"id"`
	PassengerID int             `json:"passengerId"`
	Payload     ReminderPayload `json:"payload"`
}

// ReminderID is stable for a (train number, passenger id) pair.
func ReminderID(trainNo string, passengerID int) string {
	return fmt.Sprintf("reminder-%s-%d", trainNo, passengerID)
}
