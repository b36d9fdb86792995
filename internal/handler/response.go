package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/service/desk"
)

type envelope struct {
	Data    any    `json:"data,omitempty"`
	Warning string `json:"warning,omitempty"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondResult answers 2xx. A persistence failure still answers with the
// applied data and a warning, since memory is the source of truth.
func respondResult(c *gin.Context, status int, data any, err error) {
	if err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			respondError(c, err)
			return
		}
		slog.WarnContext(c.Request.Context(), "change applied but not persisted",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		c.JSON(status, envelope{Data: data, Warning: err.Error()})
		return
	}
	c.JSON(status, envelope{Data: data})
}

func respondError(c *gin.Context, err error) {
	var verr *desk.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: desk.ErrInvalidForm.Error(), Fields: verr.Fields})
	case errors.Is(err, desk.ErrInvalidForm), errors.Is(err, domain.ErrInvalidTime):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPassengerNotFound), errors.Is(err, domain.ErrTrainNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDuplicateCardNo), errors.Is(err, domain.ErrPassengerServed):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnsupportedFile):
		c.JSON(http.StatusUnsupportedMediaType, errorResponse{Error: err.Error()})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}
