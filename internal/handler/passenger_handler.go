package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/service/desk"
)

const maxImportBytes = 8 << 20

type PassengerHandler struct {
	desk *desk.Service
}

func NewPassengerHandler(deskService *desk.Service) *PassengerHandler {
	return &PassengerHandler{desk: deskService}
}

func (h *PassengerHandler) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, envelope{Data: h.desk.Passengers(c.Query("trainNo"), c.Query("date"))})
}

func (h *PassengerHandler) HandleCreate(c *gin.Context) {
	var form domain.PassengerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid passenger body")
		return
	}

	p, err := h.desk.AddPassenger(c.Request.Context(), form)
	respondResult(c, http.StatusCreated, p, err)
}

func (h *PassengerHandler) HandleUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var form domain.PassengerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid passenger body")
		return
	}

	p, err := h.desk.EditPassenger(c.Request.Context(), id, form)
	respondResult(c, http.StatusOK, p, err)
}

// HandleLeave marks a passenger as left. The optional body carries the row
// as displayed, used when the id is no longer in the registry.
func (h *PassengerHandler) HandleLeave(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var row domain.Passenger
	if err := c.ShouldBindJSON(&row); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid passenger body")
		return
	}
	row.ID = id

	p, err := h.desk.MarkLeft(c.Request.Context(), row)
	respondResult(c, http.StatusOK, p, err)
}

// HandleImport accepts a multipart upload in the "file" field.
func (h *PassengerHandler) HandleImport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "missing file field")
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, "unreadable upload")
		return
	}
	defer file.Close()

	result, err := h.desk.ImportFile(c.Request.Context(), header.Filename, file)
	respondResult(c, http.StatusOK, result, err)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		badRequest(c, "invalid passenger id")
		return 0, false
	}
	return id, true
}
