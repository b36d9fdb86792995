package sink

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

// Logging writes every sink call to slog before passing it on.
type Logging struct {
	next domain.ReminderSink
}

func WithLogging(next domain.ReminderSink) *Logging {
	return &Logging{next: next}
}

func (l *Logging) RenderReminder(ctx context.Context, id string, payload domain.ReminderPayload) error {
	err := l.next.RenderReminder(ctx, id, payload)
	if err != nil {
		slog.WarnContext(ctx, "failed to render reminder",
			slog.String("reminder_id", id),
			slog.String("error", err.Error()),
		)
		return err
	}

	slog.InfoContext(ctx, "reminder rendered",
		slog.String("reminder_id", id),
		slog.String("train_no", payload.TrainNo),
		slog.String("card_no", payload.CardNo),
		slog.String("category", payload.Category.String()),
		slog.String("reference_label", payload.ReferenceLabel),
		slog.String("reference_time", payload.ReferenceTime),
		slog.Int("minutes_remaining", payload.MinutesRemaining),
	)
	return nil
}

func (l *Logging) RemoveReminder(ctx context.Context, id string) error {
	err := l.next.RemoveReminder(ctx, id)
	if err != nil {
		slog.WarnContext(ctx, "failed to remove reminder",
			slog.String("reminder_id", id),
			slog.String("error", err.Error()),
		)
		return err
	}

	slog.InfoContext(ctx, "reminder removed", slog.String("reminder_id", id))
	return nil
}

func (l *Logging) ClearAllReminders(ctx context.Context) error {
	err := l.next.ClearAllReminders(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to clear reminders", slog.String("error", err.Error()))
		return err
	}

	slog.InfoContext(ctx, "reminders cleared")
	return nil
}
