package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/service/board"
)

type ReminderLister interface {
	List() []domain.Reminder
}

type BoardHandler struct {
	engine    *board.Engine
	reminders ReminderLister
	clock     func() time.Time
}

func NewBoardHandler(engine *board.Engine, reminders ReminderLister) *BoardHandler {
	return &BoardHandler{
		engine:    engine,
		reminders: reminders,
		clock:     time.Now,
	}
}

// HandleBoard returns the ordered board. ?at=RFC3339 evaluates it at another instant.
func (h *BoardHandler) HandleBoard(c *gin.Context) {
	ctx := c.Request.Context()

	now := h.clock()
	if at := c.Query("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			badRequest(c, "invalid at time format, expected RFC3339")
			return
		}
		now = parsed
		slog.DebugContext(ctx, "using virtual time", slog.Time("virtual_now", now))
	}

	c.JSON(http.StatusOK, envelope{Data: h.engine.Snapshot(ctx, now)})
}

// HandleReminders lists what the rendering sink currently shows.
func (h *BoardHandler) HandleReminders(c *gin.Context) {
	c.JSON(http.StatusOK, envelope{Data: h.reminders.List()})
}
