package domain

import (
	"context"
	"time"
)

type BoardSnapshotRecord struct {
	CycleID       string
	RecordedAt    time.Time
	OpenCount     int
	ServedCount   int
	ReminderCount int
	ExpiredCount  int
}

type BoardRecorder interface {
	RecordSnapshot(ctx context.Context, record BoardSnapshotRecord) error
	Close() error
}
