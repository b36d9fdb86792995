package window

import (
	"context"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

type countingResolver struct {
	statuses map[string]domain.TrainStatus
	calls    int
}

func (r *countingResolver) Resolve(trainNo string) domain.TrainStatus {
	r.calls++
	if s, ok := r.statuses[trainNo]; ok {
		return s
	}
	return domain.TrainStatus{TrainNo: trainNo, Category: domain.CategoryUnknown, LeadMinutes: 20}
}

func TestEvaluator_OriginatingKPrefix(t *testing.T) {
	resolver := &countingResolver{statuses: map[string]domain.TrainStatus{
		"K100": {TrainNo: "K100", Category: domain.CategoryOriginating, LeadMinutes: 30, ReferenceTime: "10:00"},
	}}
	evaluator := NewEvaluator(resolver, DefaultConfig(), nil)
	ctx := context.Background()

	eval := evaluator.Evaluate(ctx, "K100", at(9, 35), "2024-05-20")

	if eval.Status.Category != domain.CategoryOriginating {
		t.Errorf("category = %v, want originating", eval.Status.Category)
	}
	if eval.Status.LeadMinutes != 30 {
		t.Errorf("lead = %d, want 30", eval.Status.LeadMinutes)
	}
	if !eval.Imminent {
		t.Error("expected imminent")
	}
	if eval.Expired {
		t.Error("expected not expired")
	}
	if eval.DiffMinutes != 25 {
		t.Errorf("diff = %v, want 25", eval.DiffMinutes)
	}
}

func TestEvaluator_PassingEdge(t *testing.T) {
	resolver := &countingResolver{statuses: map[string]domain.TrainStatus{
		"Z5": {TrainNo: "Z5", Category: domain.CategoryPassing, LeadMinutes: 3, ReferenceTime: "14:00"},
	}}
	evaluator := NewEvaluator(resolver, DefaultConfig(), nil)
	ctx := context.Background()

	if !evaluator.IsImminent(ctx, "Z5", at(14, 4), "") {
		t.Error("14:04 should be imminent for a passing train")
	}
	if evaluator.IsImminent(ctx, "Z5", at(14, 6), "") {
		t.Error("14:06 should not be imminent for a passing train")
	}
	if !evaluator.IsExpired(ctx, "Z5", at(14, 6), "2024-05-20") {
		t.Error("14:06 should be expired")
	}
}

func TestEvaluator_MemoizesWithinMinuteBucket(t *testing.T) {
	resolver := &countingResolver{statuses: map[string]domain.TrainStatus{
		"K100": {TrainNo: "K100", Category: domain.CategoryOriginating, LeadMinutes: 30, ReferenceTime: "10:00"},
	}}
	evaluator := NewEvaluator(resolver, DefaultConfig(), nil)
	ctx := context.Background()
	now := at(9, 35)

	for i := 0; i < 50; i++ {
		evaluator.Evaluate(ctx, "K100", now.Add(time.Duration(i)*100*time.Millisecond), "2024-05-20")
	}

	if resolver.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", resolver.calls)
	}

	evaluator.Purge()
	evaluator.Evaluate(ctx, "K100", now, "2024-05-20")
	if resolver.calls != 2 {
		t.Errorf("resolver calls after purge = %d, want 2", resolver.calls)
	}
}

func TestEvaluator_UnknownTrainDegrades(t *testing.T) {
	evaluator := NewEvaluator(&countingResolver{}, DefaultConfig(), nil)
	ctx := context.Background()

	eval := evaluator.Evaluate(ctx, "NOPE", at(12, 0), "2024-05-20")

	if eval.Status.Category != domain.CategoryUnknown {
		t.Errorf("category = %v, want unknown", eval.Status.Category)
	}
	if eval.Imminent || eval.Expired {
		t.Errorf("unknown train must be neither imminent nor expired, got %+v", eval)
	}
}
