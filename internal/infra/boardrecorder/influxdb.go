package boardrecorder

import (
	"context"
	"fmt"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

const snapshotMeasurement = "board_snapshot"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	station  string
}

// NewRecorder returns an InfluxDB recorder, or a no-op one when recording is
// disabled or credentials are missing.
func NewRecorder(ctx context.Context, cfg *Config) (domain.BoardRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "board snapshot recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, board snapshot recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "board snapshot recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		station:  cfg.StationName,
	}, nil
}

func (r *influxDBRecorder) RecordSnapshot(ctx context.Context, record domain.BoardSnapshotRecord) error {
	cycleID := record.CycleID
	if cycleID == "" {
		cycleID = "default"
	}

	point := influxdb2.NewPoint(
		snapshotMeasurement,
		map[string]string{
			"station": r.station,
		},
		map[string]any{
			"cycle_id":       cycleID,
			"open_count":     record.OpenCount,
			"served_count":   record.ServedCount,
			"reminder_count": record.ReminderCount,
			"expired_count":  record.ExpiredCount,
		},
		record.RecordedAt,
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write board snapshot to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("cycle_id", cycleID),
			slog.String("bucket", r.bucket),
		)
		return fmt.Errorf("write board snapshot: %w", err)
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
