package domain

import "context"

//go:generate mockgen -source=reminder_sink.go -destination=reminder_sink_mock.go -package=domain

// ReminderSink renders reminders. RenderReminder with an id that is already
// shown replaces the payload in place.
type ReminderSink interface {
	RenderReminder(ctx context.Context, id string, payload ReminderPayload) error
	RemoveReminder(ctx context.Context, id string) error
	ClearAllReminders(ctx context.Context) error
}
