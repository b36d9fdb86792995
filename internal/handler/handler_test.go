package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/infra/kvstore"
	"github.com/KasumiMercury/primind-priority-board/internal/infra/registry"
	"github.com/KasumiMercury/primind-priority-board/internal/infra/sink"
	"github.com/KasumiMercury/primind-priority-board/internal/service/board"
	"github.com/KasumiMercury/primind-priority-board/internal/service/category"
	"github.com/KasumiMercury/primind-priority-board/internal/service/desk"
	"github.com/KasumiMercury/primind-priority-board/internal/service/reference"
	"github.com/KasumiMercury/primind-priority-board/internal/service/window"
)

type noopTrigger struct{}

func (noopTrigger) AfterMutation(context.Context) error { return nil }

type testServer struct {
	router    *gin.Engine
	reminders *sink.Memory
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	store := kvstore.NewMemory()

	passengers, err := registry.LoadPassengers(ctx, store)
	if err != nil {
		t.Fatalf("LoadPassengers() error = %v", err)
	}
	trains, err := registry.LoadTrains(ctx, store)
	if err != nil {
		t.Fatalf("LoadTrains() error = %v", err)
	}
	if err := trains.Replace(ctx, []domain.Train{
		{TrainNo: "K100", Route: "西安", Route2: "北京", TicketTime: domain.TimeText("10:00")},
	}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	resolver := reference.NewResolver(trains, category.NewClassifier(category.DefaultPolicy()))
	evaluator := window.NewEvaluator(resolver, window.DefaultConfig(), nil)
	engine := board.NewEngine(passengers, evaluator, time.UTC)
	deskService := desk.NewService(passengers, trains, evaluator, noopTrigger{}, nil, time.UTC)
	reminders := sink.NewMemory()

	r := gin.New()
	Register(r, NewBoardHandler(engine, reminders), NewPassengerHandler(deskService), NewTrainHandler(deskService))

	return testServer{router: r, reminders: reminders}
}

func (s testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out struct {
		Data    T      `json:"data"`
		Warning string `json:"warning"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out.Data
}

func passengerBody(cardNo string) domain.PassengerForm {
	return domain.PassengerForm{
		Date:      "2024-05-20",
		TrainNo:   "K100",
		Name:      "张三",
		CardNo:    cardNo,
		Type:      domain.PassengerTypeElderly,
		Service:   "轮椅",
		StaffName: "李四",
	}
}

func TestPassengerHandler_CreateAndList(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/passengers", passengerBody("A1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d; body %s", w.Code, http.StatusCreated, w.Body.String())
	}
	created := decode[domain.Passenger](t, w)
	if created.ID != 1 || created.IsServed {
		t.Errorf("created = %+v", created)
	}

	w = s.do(t, http.MethodGet, "/api/v1/passengers?trainNo=K100", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d", w.Code)
	}
	if list := decode[[]domain.Passenger](t, w); len(list) != 1 {
		t.Errorf("len(list) = %d, want 1", len(list))
	}
}

func TestPassengerHandler_Errors(t *testing.T) {
	s := newTestServer(t)
	if w := s.do(t, http.MethodPost, "/api/v1/passengers", passengerBody("A1")); w.Code != http.StatusCreated {
		t.Fatalf("seed status = %d", w.Code)
	}

	invalid := passengerBody("B2")
	invalid.Name = ""

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{name: "duplicate card", method: http.MethodPost, path: "/api/v1/passengers", body: passengerBody("A1"), want: http.StatusConflict},
		{name: "validation", method: http.MethodPost, path: "/api/v1/passengers", body: invalid, want: http.StatusBadRequest},
		{name: "bad id", method: http.MethodPut, path: "/api/v1/passengers/abc", body: passengerBody("A1"), want: http.StatusBadRequest},
		{name: "edit missing", method: http.MethodPut, path: "/api/v1/passengers/42", body: passengerBody("C3"), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d; body %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestPassengerHandler_Leave(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/passengers", passengerBody("A1"))

	w := s.do(t, http.MethodPost, "/api/v1/passengers/1/leave", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("leave status = %d; body %s", w.Code, w.Body.String())
	}
	if p := decode[domain.Passenger](t, w); !p.IsServed {
		t.Errorf("IsServed = false, want true")
	}

	w = s.do(t, http.MethodPost, "/api/v1/passengers/1/leave", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("second leave status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestPassengerHandler_LeaveUnknownWithoutRow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/passengers/999/leave", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("leave status = %d, want %d; body %s", w.Code, http.StatusNotFound, w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/api/v1/passengers", nil)
	if list := decode[[]domain.Passenger](t, w); len(list) != 0 {
		t.Errorf("len(list) = %d, want 0", len(list))
	}
}

func TestPassengerHandler_LeaveUnknownWithRow(t *testing.T) {
	s := newTestServer(t)

	row := map[string]any{"date": "2024-05-20", "trainNo": "K100", "name": "临时旅客"}
	w := s.do(t, http.MethodPost, "/api/v1/passengers/999/leave", row)
	if w.Code != http.StatusOK {
		t.Fatalf("leave status = %d; body %s", w.Code, w.Body.String())
	}
	if p := decode[domain.Passenger](t, w); !p.IsServed || p.ID != 1 {
		t.Errorf("recorded = %+v", p)
	}
}

func TestPassengerHandler_Import(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "batch.csv")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	csv := "日期,车次,姓名,牌号,服务内容,服务人员\n2024-05-20,K100,王五,Z9,轮椅,赵六\n,,,,,\n"
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/passengers/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("import status = %d; body %s", w.Code, w.Body.String())
	}
	result := decode[desk.ImportResult](t, w)
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
}

func TestPassengerHandler_ImportMissingFile(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/passengers/import", strings.NewReader(""))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestTrainHandler(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPut, "/api/v1/trains/K100/ticket-time", map[string]string{"time": "10:30"})
	if w.Code != http.StatusOK {
		t.Fatalf("ticket-time status = %d; body %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPut, "/api/v1/trains/K100/ticket-time", map[string]string{"time": "25:00"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid ticket-time status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = s.do(t, http.MethodPut, "/api/v1/trains/Z1/arrival-time", map[string]string{"time": "08:00"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown train status = %d, want %d", w.Code, http.StatusNotFound)
	}

	w = s.do(t, http.MethodGet, "/api/v1/trains/K100", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail status = %d", w.Code)
	}
	detail := decode[desk.TrainDetail](t, w)
	if detail.Status.ReferenceTime != "10:30" {
		t.Errorf("ReferenceTime = %q, want %q", detail.Status.ReferenceTime, "10:30")
	}

	if w := s.do(t, http.MethodGet, "/api/v1/trains/Z1", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing detail status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestTrainHandler_Replace(t *testing.T) {
	s := newTestServer(t)

	body := []map[string]any{
		{"trainNo": "T231", "route": "兰州", "route2": "西安"},
		{"trainNo": "K546", "route": "成都", "route2": "北京", "ticketTime": "12:05"},
	}
	w := s.do(t, http.MethodPut, "/api/v1/trains", body)
	if w.Code != http.StatusOK {
		t.Fatalf("replace status = %d; body %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/api/v1/trains", nil)
	trains := decode[[]domain.Train](t, w)
	if len(trains) != 2 || trains[0].TrainNo != "T231" {
		t.Errorf("trains = %+v", trains)
	}
}

func TestBoardHandler(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/v1/passengers", passengerBody("A1"))

	w := s.do(t, http.MethodGet, "/api/v1/board?at=2024-05-20T09:40:00Z", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("board status = %d", w.Code)
	}
	snap := decode[board.Snapshot](t, w)
	if len(snap.Rows) != 1 || !snap.Rows[0].Imminent {
		t.Fatalf("rows = %+v", snap.Rows)
	}
	if len(snap.Reminders) != 1 || snap.Reminders[0].Payload.MinutesRemaining != 20 {
		t.Errorf("reminders = %+v", snap.Reminders)
	}
	if snap.Counts.Open != 1 {
		t.Errorf("Counts.Open = %d, want 1", snap.Counts.Open)
	}

	if w := s.do(t, http.MethodGet, "/api/v1/board?at=yesterday", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad at status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestBoardHandler_Reminders(t *testing.T) {
	s := newTestServer(t)
	if err := s.reminders.RenderReminder(context.Background(), "reminder-K100-1", domain.ReminderPayload{TrainNo: "K100"}); err != nil {
		t.Fatalf("RenderReminder() error = %v", err)
	}

	w := s.do(t, http.MethodGet, "/api/v1/reminders", nil)
	got := decode[[]domain.Reminder](t, w)
	if len(got) != 1 || got[0].ID != "reminder-K100-1" {
		t.Errorf("reminders = %+v", got)
	}
}
