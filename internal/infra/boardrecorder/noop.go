package boardrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.BoardRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordSnapshot(_ context.Context, _ domain.BoardSnapshotRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
