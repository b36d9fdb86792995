package desk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/infra/importer"
	"github.com/KasumiMercury/primind-priority-board/internal/observability/metrics"
	"github.com/KasumiMercury/primind-priority-board/internal/observability/tracing"
)

// Service applies staff actions to the shared collections. Each method
// returns only after memory holds the change. A persistence failure comes
// back wrapped in domain.ErrPersistence alongside the applied record.
type Service struct {
	passengers PassengerStore
	trains     TrainStore
	statuses   StatusSource
	trigger    Trigger
	validate   *validator.Validate
	metrics    *metrics.BoardMetrics
	clock      func() time.Time
}

func NewService(
	passengers PassengerStore,
	trains TrainStore,
	statuses StatusSource,
	trigger Trigger,
	boardMetrics *metrics.BoardMetrics,
	location *time.Location,
) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		passengers: passengers,
		trains:     trains,
		statuses:   statuses,
		trigger:    trigger,
		validate:   newValidator(),
		metrics:    boardMetrics,
		clock:      func() time.Time { return time.Now().In(location) },
	}
}

func (s *Service) Passengers(trainNo, date string) []domain.Passenger {
	switch {
	case trainNo != "" && date != "":
		out := make([]domain.Passenger, 0)
		for _, p := range s.passengers.ByTrainNo(trainNo) {
			if p.Date == date {
				out = append(out, p)
			}
		}
		return out
	case trainNo != "":
		return s.passengers.ByTrainNo(trainNo)
	case date != "":
		return s.passengers.ByDate(date)
	default:
		return s.passengers.List()
	}
}

func (s *Service) AddPassenger(ctx context.Context, form domain.PassengerForm) (domain.Passenger, error) {
	ctx, span := tracing.StartMutationSpan(ctx, "add")
	defer span.End()

	if err := s.validateForm(form); err != nil {
		s.recordMutation(ctx, "add", err)
		tracing.RecordError(span, err)
		return domain.Passenger{}, err
	}

	var p domain.Passenger
	form.Apply(&p)

	added, err := s.passengers.Add(ctx, p)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		s.recordMutation(ctx, "add", err)
		tracing.RecordError(span, err)
		return domain.Passenger{}, err
	}

	slog.InfoContext(ctx, "passenger added",
		slog.Int("passenger_id", added.ID),
		slog.String("train_no", added.TrainNo),
		slog.String("date", added.Date),
	)

	s.afterMutation(ctx, "add", err)
	tracing.RecordError(span, err)
	return added, err
}

func (s *Service) EditPassenger(ctx context.Context, id int, form domain.PassengerForm) (domain.Passenger, error) {
	ctx, span := tracing.StartMutationSpan(ctx, "edit")
	defer span.End()

	if err := s.validateForm(form); err != nil {
		s.recordMutation(ctx, "edit", err)
		tracing.RecordError(span, err)
		return domain.Passenger{}, err
	}

	updated, err := s.passengers.Update(ctx, id, form)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		s.recordMutation(ctx, "edit", err)
		tracing.RecordError(span, err)
		return domain.Passenger{}, err
	}

	slog.InfoContext(ctx, "passenger edited",
		slog.Int("passenger_id", updated.ID),
		slog.String("train_no", updated.TrainNo),
	)

	s.afterMutation(ctx, "edit", err)
	tracing.RecordError(span, err)
	return updated, err
}

// MarkLeft closes the passenger with row.ID. When no such record exists the
// row is stored as a new, already served passenger, provided it names a train
// or a passenger; otherwise ErrPassengerNotFound.
func (s *Service) MarkLeft(ctx context.Context, row domain.Passenger) (domain.Passenger, error) {
	ctx, span := tracing.StartMutationSpan(ctx, "mark_left")
	defer span.End()

	var (
		p   domain.Passenger
		err error
	)
	if _, ok := s.passengers.Get(row.ID); ok {
		p, err = s.passengers.MarkServed(ctx, row.ID)
	} else {
		if strings.TrimSpace(row.TrainNo) == "" && strings.TrimSpace(row.Name) == "" {
			err = fmt.Errorf("%w: %d", domain.ErrPassengerNotFound, row.ID)
			s.recordMutation(ctx, "mark_left", err)
			tracing.RecordError(span, err)
			return domain.Passenger{}, err
		}
		if row.Date == "" {
			row.Date = s.clock().Format("2006-01-02")
		}
		p, err = s.passengers.AddServed(ctx, row)
		slog.InfoContext(ctx, "recorded departed passenger missing from registry",
			slog.Int("requested_id", row.ID),
			slog.Int("passenger_id", p.ID),
		)
	}

	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		s.recordMutation(ctx, "mark_left", err)
		tracing.RecordError(span, err)
		return p, err
	}

	slog.InfoContext(ctx, "passenger marked as left",
		slog.Int("passenger_id", p.ID),
		slog.String("train_no", p.TrainNo),
	)

	s.afterMutation(ctx, "mark_left", err)
	tracing.RecordError(span, err)
	return p, err
}

// ImportFile reads filename with the matching spreadsheet reader and imports
// its rows. An unreadable file is reported once as the returned error.
func (s *Service) ImportFile(ctx context.Context, filename string, r io.Reader) (ImportResult, error) {
	rows, err := importer.ReadFile(ctx, filename, r)
	if err != nil {
		s.recordMutation(ctx, "import", err)
		slog.WarnContext(ctx, "import file unreadable",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		return ImportResult{}, err
	}
	return s.ImportRows(ctx, filename, rows)
}

// ImportRows converts and stores rows. Discarded and duplicate rows are
// counted, never fatal.
func (s *Service) ImportRows(ctx context.Context, filename string, rows []domain.ImportRow) (ImportResult, error) {
	result := ImportResult{BatchID: uuid.NewString()}

	ctx, span := tracing.StartImportSpan(ctx, result.BatchID, filename)
	defer span.End()

	now := s.clock()
	candidates := make([]domain.Passenger, 0, len(rows))
	for _, row := range rows {
		p, ok := RowToPassenger(row, now)
		if !ok {
			result.Discarded++
			continue
		}
		candidates = append(candidates, p)
	}

	added, duplicates, err := s.passengers.AddMany(ctx, candidates)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		s.recordMutation(ctx, "import", err)
		tracing.RecordImportResult(span, 0, len(rows), err)
		return result, err
	}

	result.Imported = len(added)
	result.Duplicates = len(duplicates)
	result.Passengers = added

	if s.metrics != nil {
		s.metrics.RecordImportRows(ctx, "imported", result.Imported)
		s.metrics.RecordImportRows(ctx, "discarded", result.Discarded)
		s.metrics.RecordImportRows(ctx, "duplicate", result.Duplicates)
	}

	slog.InfoContext(ctx, "passengers imported",
		slog.String("batch_id", result.BatchID),
		slog.String("filename", filename),
		slog.Int("row_count", len(rows)),
		slog.Int("imported_count", result.Imported),
		slog.Int("discarded_count", result.Discarded),
		slog.Int("duplicate_count", result.Duplicates),
	)

	s.afterMutation(ctx, "import", err)
	tracing.RecordImportResult(span, result.Imported, result.Discarded+result.Duplicates, err)
	return result, err
}

func (s *Service) UpdateTicketTime(ctx context.Context, trainNo, hhmm string) (domain.Train, error) {
	return s.trainMutation(ctx, "ticket_time", func(ctx context.Context) (domain.Train, error) {
		return s.trains.UpdateTicketTime(ctx, trainNo, hhmm)
	})
}

func (s *Service) UpdateArrivalTime(ctx context.Context, trainNo, hhmm string) (domain.Train, error) {
	return s.trainMutation(ctx, "arrival_time", func(ctx context.Context) (domain.Train, error) {
		return s.trains.UpdateArrivalTime(ctx, trainNo, hhmm)
	})
}

func (s *Service) PatchTrain(ctx context.Context, id int, patch domain.TrainPatch) (domain.Train, error) {
	return s.trainMutation(ctx, "patch_train", func(ctx context.Context) (domain.Train, error) {
		return s.trains.Update(ctx, id, patch)
	})
}

func (s *Service) ReplaceTrains(ctx context.Context, trains []domain.Train) error {
	_, err := s.trainMutation(ctx, "replace_trains", func(ctx context.Context) (domain.Train, error) {
		return domain.Train{}, s.trains.Replace(ctx, trains)
	})
	return err
}

func (s *Service) TrainDetail(ctx context.Context, trainNo string) (TrainDetail, error) {
	train, ok := s.trains.GetByNumber(trainNo)
	if !ok {
		return TrainDetail{}, fmt.Errorf("%w: %s", domain.ErrTrainNotFound, trainNo)
	}

	status := s.statuses.Status(ctx, trainNo)
	return TrainDetail{
		Train:      train,
		Status:     status,
		Label:      status.Category.Label(),
		Passengers: s.passengers.ByTrainNo(trainNo),
	}, nil
}

func (s *Service) Trains() []domain.Train {
	return s.trains.List()
}

func (s *Service) trainMutation(ctx context.Context, op string, apply func(context.Context) (domain.Train, error)) (domain.Train, error) {
	ctx, span := tracing.StartMutationSpan(ctx, op)
	defer span.End()

	train, err := apply(ctx)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		s.recordMutation(ctx, op, err)
		tracing.RecordError(span, err)
		return train, err
	}

	s.statuses.Purge()

	slog.InfoContext(ctx, "train data changed",
		slog.String("operation", op),
		slog.String("train_no", train.TrainNo),
	)

	s.afterMutation(ctx, op, err)
	tracing.RecordError(span, err)
	return train, err
}

func (s *Service) afterMutation(ctx context.Context, op string, persistErr error) {
	s.recordMutation(ctx, op, persistErr)

	if s.trigger == nil {
		return
	}
	if err := s.trigger.AfterMutation(ctx); err != nil {
		slog.WarnContext(ctx, "refresh after mutation failed",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) recordMutation(ctx context.Context, op string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrPersistence):
		outcome = "persist_failed"
	case errors.Is(err, ErrInvalidForm), errors.Is(err, domain.ErrDuplicateCardNo), errors.Is(err, domain.ErrInvalidTime),
		errors.Is(err, domain.ErrPassengerNotFound):
		outcome = "rejected"
	default:
		outcome = "failed"
	}
	s.metrics.RecordMutation(ctx, op, outcome)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Service) validateForm(form domain.PassengerForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}
