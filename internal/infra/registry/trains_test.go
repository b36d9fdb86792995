package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/infra/kvstore"
)

func seededTrains(t *testing.T, store domain.KVStore) *Trains {
	t.Helper()
	ctx := context.Background()

	reg, err := LoadTrains(ctx, store)
	if err != nil {
		t.Fatalf("LoadTrains() error = %v", err)
	}
	err = reg.Replace(ctx, []domain.Train{
		{TrainNo: "K100", Route: "西安", Route2: "北京", TicketTime: domain.TimeFraction(0.4166666667)},
		{ID: 7, TrainNo: "T231", Route: "兰州", Route2: "西安", ArrivalTime: "09:50"},
		{TrainNo: "G20", Route: "西安", Route2: "上海", TicketTime: domain.TimeText("2024-05-20T12:00:00")},
	})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	return reg
}

func TestTrains_ReplaceAssignsIDs(t *testing.T) {
	reg := seededTrains(t, kvstore.NewMemory())

	var ids []int
	for _, tr := range reg.List() {
		ids = append(ids, tr.ID)
	}
	want := []int{8, 7, 9}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestTrains_GetByNumber(t *testing.T) {
	reg := seededTrains(t, kvstore.NewMemory())

	got, ok := reg.GetByNumber("T231")
	if !ok {
		t.Fatal("GetByNumber(T231) not found")
	}
	if got.Route2 != "西安" {
		t.Errorf("Route2 = %q, want 西安", got.Route2)
	}

	if _, ok := reg.GetByNumber("Z9"); ok {
		t.Error("GetByNumber(Z9) found")
	}
}

func TestTrains_UpdateTimes(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	reg := seededTrains(t, store)

	updated, err := reg.UpdateTicketTime(ctx, "K100", "10:15")
	if err != nil {
		t.Fatalf("UpdateTicketTime() error = %v", err)
	}
	if updated.TicketTime.Raw() != "10:15" {
		t.Errorf("ticket time = %v, want 10:15", updated.TicketTime.Raw())
	}

	if _, err := reg.UpdateArrivalTime(ctx, "T231", "10:05"); err != nil {
		t.Fatalf("UpdateArrivalTime() error = %v", err)
	}

	if _, err := reg.UpdateTicketTime(ctx, "K100", "10.15"); !errors.Is(err, domain.ErrInvalidTime) {
		t.Errorf("UpdateTicketTime(bad) error = %v, want %v", err, domain.ErrInvalidTime)
	}
	if _, err := reg.UpdateArrivalTime(ctx, "Z9", "10:05"); !errors.Is(err, domain.ErrTrainNotFound) {
		t.Errorf("UpdateArrivalTime(missing) error = %v, want %v", err, domain.ErrTrainNotFound)
	}

	reloaded, err := LoadTrains(ctx, store)
	if err != nil {
		t.Fatalf("LoadTrains() error = %v", err)
	}
	got, _ := reloaded.GetByNumber("T231")
	if got.ArrivalTime != "10:05" {
		t.Errorf("reloaded arrival = %q, want 10:05", got.ArrivalTime)
	}
	k100, _ := reloaded.GetByNumber("K100")
	if k100.TicketTime.Raw() != "10:15" {
		t.Errorf("reloaded ticket time = %v, want 10:15", k100.TicketTime.Raw())
	}
}

func TestTrains_UpdatePatch(t *testing.T) {
	ctx := context.Background()
	reg := seededTrains(t, kvstore.NewMemory())

	route := "咸阳"
	updated, err := reg.Update(ctx, 7, domain.TrainPatch{Route: &route})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Route != "咸阳" || updated.ArrivalTime != "09:50" {
		t.Errorf("Update() = %+v", updated)
	}

	if _, err := reg.Update(ctx, 99, domain.TrainPatch{}); !errors.Is(err, domain.ErrTrainNotFound) {
		t.Errorf("Update(99) error = %v, want %v", err, domain.ErrTrainNotFound)
	}
}
